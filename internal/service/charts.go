package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/guttosm/stockcharts/internal/chart"
	"github.com/guttosm/stockcharts/internal/domain/models"
	"github.com/guttosm/stockcharts/internal/ingestion"
	"github.com/guttosm/stockcharts/internal/logger"
	"github.com/guttosm/stockcharts/internal/series"
)

// ChartService loads the configured series and turns it into chart
// artifacts. Implementations keep no state between calls.
type ChartService interface {
	Frame(ctx context.Context) (*models.Frame, error)
	Render(ctx context.Context, kind chart.Kind, frame *models.Frame, w io.Writer) error
	RenderAll(ctx context.Context) ([]models.Artifact, error)
	Indicators(ctx context.Context, window int) (*Indicators, error)
}

// Config holds what a ChartService needs besides its source.
//
// Fields:
//   - OutputDir: directory RenderAll writes into (created if missing).
//   - Prefix: artifact file name prefix.
//   - Chart: renderer options.
//   - Sample: fallback series used when the source is missing or empty.
//   - VolatilityWindow: window used by Indicators.
type Config struct {
	OutputDir        string
	Prefix           string
	Chart            chart.Options
	Sample           ingestion.SampleConfig
	VolatilityWindow int
}

// Indicators bundles a frame with its derived series, all aligned to
// Frame.Bars.
type Indicators struct {
	Frame            *models.Frame
	Window           int
	VolatilityWindow int
	MovingAverage    []float64
	DailyReturn      []float64
	Volatility       []float64
	Directions       []models.Direction
}

type chartService struct {
	source FrameSource
	cfg    Config
}

// NewChartService builds a ChartService over source.
func NewChartService(source FrameSource, cfg Config) ChartService {
	return &chartService{source: source, cfg: cfg}
}

// Frame loads the source.
//
// Behavior:
//   - ErrEmptyData and ErrInputNotFound are logged and replaced by the
//     configured sample series.
//   - Any other error is returned unchanged.
func (s *chartService) Frame(ctx context.Context) (*models.Frame, error) {
	lg := logger.Component("service")
	frame, err := s.source.Load(ctx)
	switch {
	case err == nil:
		return frame, nil
	case errors.Is(err, ingestion.ErrEmptyData), errors.Is(err, ingestion.ErrInputNotFound):
		lg.Warn().Err(err).Str("source", s.source.Name()).Msg("no input data, using generated sample data")
		return ingestion.SampleFrame(s.cfg.Sample), nil
	default:
		return nil, err
	}
}

// Render writes one chart of frame to w.
func (s *chartService) Render(ctx context.Context, kind chart.Kind, frame *models.Frame, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o := s.cfg.Chart
	switch kind {
	case chart.KindCandlestick:
		return chart.Candlestick(w, frame, o)
	case chart.KindVolume:
		return chart.VolumePanel(w, frame, o)
	case chart.KindVolatility:
		return chart.Volatility(w, frame, o)
	case chart.KindDistribution:
		return chart.ReturnDistribution(w, frame, o)
	case chart.KindInteractive:
		return chart.Interactive(w, frame, o)
	default:
		return fmt.Errorf("%w: %q", chart.ErrUnknownKind, kind)
	}
}

// RenderAll loads the frame once and writes every chart kind into the
// output directory. It stops at the first failure, removes the file it
// was writing and returns the artifacts written so far alongside the error.
func (s *chartService) RenderAll(ctx context.Context) ([]models.Artifact, error) {
	lg := logger.Component("service")
	frame, err := s.Frame(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	artifacts := make([]models.Artifact, 0, len(chart.Kinds))
	for _, kind := range chart.Kinds {
		start := time.Now()
		path := filepath.Join(s.cfg.OutputDir, kind.FileName(s.cfg.Prefix))
		if err := s.writeArtifact(ctx, kind, frame, path); err != nil {
			return artifacts, fmt.Errorf("%s: %w", kind, err)
		}
		artifacts = append(artifacts, models.Artifact{
			Kind:        string(kind),
			Path:        path,
			ContentType: kind.ContentType(),
		})
		lg.Info().
			Str("kind", string(kind)).
			Str("path", path).
			Dur("elapsed", time.Since(start)).
			Msg("chart written")
	}
	return artifacts, nil
}

func (s *chartService) writeArtifact(ctx context.Context, kind chart.Kind, frame *models.Frame, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", path, cerr))
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil {
				err = errors.Join(err, fmt.Errorf("remove partial %s: %w", path, rerr))
			}
		}
	}()
	return s.Render(ctx, kind, frame, f)
}

// Indicators loads the frame and computes its derived series with the
// given moving-average window.
func (s *chartService) Indicators(ctx context.Context, window int) (*Indicators, error) {
	frame, err := s.Frame(ctx)
	if err != nil {
		return nil, err
	}
	ma, err := series.MovingAverage(frame, window)
	if err != nil {
		return nil, err
	}
	returns, err := series.DailyReturn(frame)
	if err != nil {
		return nil, err
	}
	vol, err := series.RollingVolatility(frame, s.cfg.VolatilityWindow)
	if err != nil {
		return nil, err
	}
	return &Indicators{
		Frame:            frame,
		Window:           window,
		VolatilityWindow: s.cfg.VolatilityWindow,
		MovingAverage:    ma,
		DailyReturn:      returns,
		Volatility:       vol,
		Directions:       series.Directions(returns),
	}, nil
}
