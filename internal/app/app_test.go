package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/guttosm/stockcharts/config"
	"github.com/guttosm/stockcharts/internal/provider"
	"github.com/guttosm/stockcharts/internal/service"
)

func testConfig(input string) config.Config {
	return config.Config{
		Mode:   "api",
		Server: config.ServerConfig{Port: "8080"},
		Source: config.SourceConfig{
			Kind:      "file",
			InputFile: input,
			Symbol:    "601127.SH",
			Start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		Provider: config.ProviderConfig{TushareBaseURL: provider.DefaultTushareURL, Timeout: time.Second},
		Output:   config.OutputConfig{Dir: "charts", Prefix: "stock"},
		Charts: config.ChartsConfig{
			WidthInches: 4, HeightInches: 3, DPI: 40,
			MAWindows: []int{5, 20}, InteractiveMA: 10, VolatilityWindow: 20, Bins: 50,
		},
		Sample: config.SampleConfig{
			Start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:       time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			Seed:      42,
			BasePrice: 100,
		},
	}
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewSource_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
		check   func(t *testing.T, src service.FrameSource)
	}{
		{
			name: "file",
			check: func(t *testing.T, src service.FrameSource) {
				fs, ok := src.(*service.FileSource)
				if !ok || fs.Path != "in.csv" || fs.Symbol != "601127.SH" {
					t.Fatalf("unexpected source %#v", src)
				}
			},
		},
		{
			name: "tushare",
			mutate: func(c *config.Config) {
				c.Source.Kind = "tushare"
				c.Provider.TushareToken = "tok"
				c.Source.SaveFetched = "data/dl.csv"
			},
			check: func(t *testing.T, src service.FrameSource) {
				rs, ok := src.(*service.RemoteSource)
				if !ok || rs.Fetcher.Name() != "tushare" || rs.SavePath != "data/dl.csv" {
					t.Fatalf("unexpected source %#v", src)
				}
				if rs.Start.Year() != 2024 || rs.End.Month() != time.December {
					t.Fatalf("range not passed: %v %v", rs.Start, rs.End)
				}
			},
		},
		{
			name:    "tushare without token",
			mutate:  func(c *config.Config) { c.Source.Kind = "tushare" },
			wantErr: true,
		},
		{
			name:   "yahoo",
			mutate: func(c *config.Config) { c.Source.Kind = "yahoo" },
			check: func(t *testing.T, src service.FrameSource) {
				if src.Name() != "yahoo:601127.SH" {
					t.Fatalf("unexpected name %q", src.Name())
				}
			},
		},
		{
			name:    "unknown",
			mutate:  func(c *config.Config) { c.Source.Kind = "ftp" },
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig("in.csv")
			if tc.mutate != nil {
				tc.mutate(&cfg)
			}
			src, err := NewSource(cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", src)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			tc.check(t, src)
		})
	}
}

func TestServiceConfig(t *testing.T) {
	got := serviceConfig(testConfig("in.csv"))
	if got.Chart.Width != 4*vg.Inch || got.Chart.Height != 3*vg.Inch || got.Chart.DPI != 40 {
		t.Fatalf("unexpected size: %+v", got.Chart)
	}
	if got.OutputDir != "charts" || got.Prefix != "stock" || got.VolatilityWindow != 20 {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.Sample.Seed != 42 || got.Sample.Symbol != "SAMPLE" {
		t.Fatalf("unexpected sample: %+v", got.Sample)
	}
}

// TestInitializeApp_SourceFailure ensures InitializeApp returns error when the source cannot be built.
func TestInitializeApp_SourceFailure(t *testing.T) {
	old := sourceOpener
	sourceOpener = func(config.Config) (service.FrameSource, error) { return nil, errors.New("no provider") }
	t.Cleanup(func() { sourceOpener = old })

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		t.Fatalf("expected error from InitializeApp with broken source")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	input := writeCSV(t, "trade_date,open,high,low,close,vol\n"+
		"20240102,10,11,9,10.5,100\n"+
		"20240103,10.5,12,10,11,150\n"+
		"20240104,11,11.5,10,10.2,120\n")

	old := config.AppConfig
	config.AppConfig = testConfig(input)
	t.Cleanup(func() { config.AppConfig = old })

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/api/v1/series", "/api/v1/charts/candlestick"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", path, w.Code, w.Body.String())
		}
	}
}

func TestInitializeApp_NotReadyOnBrokenInput(t *testing.T) {
	input := writeCSV(t, "trade_date,close\n20240102,1\n20240102,2\n")

	old := config.AppConfig
	config.AppConfig = testConfig(input)
	t.Cleanup(func() { config.AppConfig = old })

	router, _, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz status=%d", w.Code)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/charts/volume", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("chart status=%d", w.Code)
	}
}
