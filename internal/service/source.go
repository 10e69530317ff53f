package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/ingestion"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/provider"
)

// FrameSource produces a normalized frame on demand.
type FrameSource interface {
	Name() string
	Load(ctx context.Context) (*models.Frame, error)
}

// FileSource loads a local CSV file.
type FileSource struct {
	Path   string
	Symbol string
}

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Load(ctx context.Context) (*models.Frame, error) {
	return ingestion.Load(ctx, s.Path, s.Symbol)
}

// RemoteSource downloads daily bars through a provider.Fetcher.
//
// Fields:
//   - Start, End: inclusive date range requested from the provider.
//   - SavePath: when set, the normalized download is also written there as
//     CSV so later runs can use a FileSource.
type RemoteSource struct {
	Fetcher  provider.Fetcher
	Symbol   string
	Start    time.Time
	End      time.Time
	SavePath string
}

func (s *RemoteSource) Name() string { return s.Fetcher.Name() + ":" + s.Symbol }

func (s *RemoteSource) Load(ctx context.Context) (*models.Frame, error) {
	t, err := s.Fetcher.FetchDaily(ctx, s.Symbol, s.Start, s.End)
	if err != nil {
		return nil, &ingestion.DataLoadError{Source: s.Name(), Err: err}
	}

	frame, err := ingestion.Normalize(t)
	if err != nil {
		var dle *ingestion.DataLoadError
		if errors.As(err, &dle) {
			dle.Source = s.Name()
		}
		return nil, err
	}
	frame.Symbol = s.Symbol

	if s.SavePath != "" {
		if err := ingestion.WriteCSV(s.SavePath, frame); err != nil {
			return nil, fmt.Errorf("save download: %w", err)
		}
		logger.Component("service").Info().
			Str("path", s.SavePath).
			Int("rows", frame.Len()).
			Msg("download saved")
	}
	return frame, nil
}
