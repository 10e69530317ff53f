package app

import (
	"fmt"

	"github.com/guttosm/stockcharts/config"
	"github.com/guttosm/stockcharts/internal/provider"
	"github.com/guttosm/stockcharts/internal/service"
)

// NewSource builds the FrameSource selected by cfg.Source.Kind.
//
// Parameters:
//   - cfg (config.Config): The application configuration.
//
// Behavior:
//   - "file": reads cfg.Source.InputFile.
//   - "tushare": downloads through the Tushare HTTP API with the configured
//     token, base URL and timeout.
//   - "yahoo": downloads through the Yahoo Finance chart API.
//   - Remote sources request [Start, End] and optionally save the download
//     to cfg.Source.SaveFetched.
//
// Returns:
//   - service.FrameSource: the source, not loaded yet.
//   - error: unknown kind or a provider that cannot be configured.
//
// Example usage:
//
//	src, err := app.NewSource(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ invalid source: %v", err)
//	}
func NewSource(cfg config.Config) (service.FrameSource, error) {
	src := cfg.Source
	var fetcher provider.Fetcher
	switch src.Kind {
	case "file":
		return &service.FileSource{Path: src.InputFile, Symbol: src.Symbol}, nil
	case "tushare":
		f, err := provider.NewTushareFetcher(provider.TushareConfig{
			BaseURL: cfg.Provider.TushareBaseURL,
			Token:   cfg.Provider.TushareToken,
			Timeout: cfg.Provider.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to configure tushare: %w", err)
		}
		fetcher = f
	case "yahoo":
		fetcher = provider.NewYahooFetcher()
	default:
		return nil, fmt.Errorf("unknown data source %q", src.Kind)
	}

	return &service.RemoteSource{
		Fetcher:  fetcher,
		Symbol:   src.Symbol,
		Start:    src.Start,
		End:      src.End,
		SavePath: src.SaveFetched,
	}, nil
}

// sourceOpener is an indirection used by NewChartService; overridden in tests to avoid real downloads.
var sourceOpener = NewSource
