package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as the run mode, the data source and chart rendering.
//
// Example ENV equivalent:
//
//	APP_MODE=render
//	SERVER_PORT=8080
//	DATA_SOURCE=file
//	INPUT_FILE=stock_601127_2025.csv
//	OUTPUT_DIR=charts
//	ARTIFACT_PREFIX=stock
//	SYMBOL=601127.SH
//	TUSHARE_TOKEN=xxxxxxxx
type Config struct {
	Mode     string         // "render" (default) or "api"
	Server   ServerConfig   // HTTP server configuration
	Source   SourceConfig   // where the daily series comes from
	Provider ProviderConfig // remote provider settings
	Output   OutputConfig   // artifact destination
	Charts   ChartsConfig   // renderer tuning
	Sample   SampleConfig   // fallback series
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// SourceConfig selects the input series.
//
// Fields:
//   - Kind: "file", "tushare" or "yahoo".
//   - InputFile: CSV path for the file source.
//   - Symbol: ticker passed to providers and used as chart label.
//   - Start, End: provider date range. End defaults to today, Start to one
//     year before End.
//   - SaveFetched: CSV path to store provider downloads; empty disables it.
type SourceConfig struct {
	Kind        string
	InputFile   string
	Symbol      string
	Start       time.Time
	End         time.Time
	SaveFetched string
}

// ProviderConfig carries the remote provider credentials and limits.
type ProviderConfig struct {
	TushareToken   string
	TushareBaseURL string
	Timeout        time.Duration
}

// OutputConfig defines where RenderAll writes.
type OutputConfig struct {
	Dir    string
	Prefix string
}

// ChartsConfig tunes the renderers.
type ChartsConfig struct {
	WidthInches      float64
	HeightInches     float64
	DPI              int
	MAWindows        []int
	InteractiveMA    int
	VolatilityWindow int
	Bins             int
}

// SampleConfig defines the generated fallback series.
type SampleConfig struct {
	Start     time.Time
	End       time.Time
	Seed      uint64
	BasePrice float64
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

const dateLayout = "2006-01-02"

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Parses dates (YYYY-MM-DD) and the MA window list ("5,20").
//   - Calls validateConfig() to ensure the result is usable.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("APP_MODE", "render")
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DATA_SOURCE", "file")
	viper.SetDefault("INPUT_FILE", "stock_601127_2025.csv")
	viper.SetDefault("SYMBOL", "601127.SH")
	viper.SetDefault("START_DATE", "")
	viper.SetDefault("END_DATE", "")
	viper.SetDefault("SAVE_FETCHED", "")

	viper.SetDefault("TUSHARE_TOKEN", "")
	viper.SetDefault("TUSHARE_BASE_URL", "http://api.tushare.pro")
	viper.SetDefault("PROVIDER_TIMEOUT", "30s")

	viper.SetDefault("OUTPUT_DIR", "charts")
	viper.SetDefault("ARTIFACT_PREFIX", "stock")

	viper.SetDefault("CHART_WIDTH_IN", 12)
	viper.SetDefault("CHART_HEIGHT_IN", 6)
	viper.SetDefault("CHART_DPI", 100)
	viper.SetDefault("MA_WINDOWS", "5,20")
	viper.SetDefault("INTERACTIVE_MA_WINDOW", 10)
	viper.SetDefault("VOLATILITY_WINDOW", 20)
	viper.SetDefault("HISTOGRAM_BINS", 50)

	viper.SetDefault("SAMPLE_START", "2024-01-01")
	viper.SetDefault("SAMPLE_END", "2024-03-31")
	viper.SetDefault("SAMPLE_SEED", 42)
	viper.SetDefault("SAMPLE_BASE_PRICE", 100)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	end := parseDate("END_DATE", time.Now().UTC().Truncate(24*time.Hour))
	start := parseDate("START_DATE", end.AddDate(-1, 0, 0))

	// Populate global config instance
	AppConfig = Config{
		Mode: strings.ToLower(viper.GetString("APP_MODE")),
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Source: SourceConfig{
			Kind:        strings.ToLower(viper.GetString("DATA_SOURCE")),
			InputFile:   viper.GetString("INPUT_FILE"),
			Symbol:      viper.GetString("SYMBOL"),
			Start:       start,
			End:         end,
			SaveFetched: viper.GetString("SAVE_FETCHED"),
		},
		Provider: ProviderConfig{
			TushareToken:   viper.GetString("TUSHARE_TOKEN"),
			TushareBaseURL: viper.GetString("TUSHARE_BASE_URL"),
			Timeout:        viper.GetDuration("PROVIDER_TIMEOUT"),
		},
		Output: OutputConfig{
			Dir:    viper.GetString("OUTPUT_DIR"),
			Prefix: viper.GetString("ARTIFACT_PREFIX"),
		},
		Charts: ChartsConfig{
			WidthInches:      viper.GetFloat64("CHART_WIDTH_IN"),
			HeightInches:     viper.GetFloat64("CHART_HEIGHT_IN"),
			DPI:              viper.GetInt("CHART_DPI"),
			MAWindows:        parseWindows(viper.GetString("MA_WINDOWS")),
			InteractiveMA:    viper.GetInt("INTERACTIVE_MA_WINDOW"),
			VolatilityWindow: viper.GetInt("VOLATILITY_WINDOW"),
			Bins:             viper.GetInt("HISTOGRAM_BINS"),
		},
		Sample: SampleConfig{
			Start:     parseDate("SAMPLE_START", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			End:       parseDate("SAMPLE_END", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)),
			Seed:      viper.GetUint64("SAMPLE_SEED"),
			BasePrice: viper.GetFloat64("SAMPLE_BASE_PRICE"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// parseDate reads a YYYY-MM-DD key. Blank values use def; malformed values
// are fatal.
func parseDate(key string, def time.Time) time.Time {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return def
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		log.Fatalf("❌ Invalid %s %q: expected YYYY-MM-DD\n", key, raw)
	}
	return t
}

// parseWindows reads a comma separated list of positive integers. Invalid
// entries become 0 and are rejected by validateConfig.
func parseWindows(raw string) []int {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			n = 0
		}
		out = append(out, n)
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing or invalid ones in a slice.
//   - If any are found, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	switch AppConfig.Mode {
	case "render", "api":
	default:
		missing = append(missing, "APP_MODE (render|api)")
	}
	if AppConfig.Mode == "api" && AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}

	switch AppConfig.Source.Kind {
	case "file":
		if AppConfig.Source.InputFile == "" {
			missing = append(missing, "INPUT_FILE")
		}
	case "tushare":
		if AppConfig.Provider.TushareToken == "" {
			missing = append(missing, "TUSHARE_TOKEN")
		}
		if AppConfig.Source.Symbol == "" {
			missing = append(missing, "SYMBOL")
		}
	case "yahoo":
		if AppConfig.Source.Symbol == "" {
			missing = append(missing, "SYMBOL")
		}
	default:
		missing = append(missing, "DATA_SOURCE (file|tushare|yahoo)")
	}
	if AppConfig.Source.End.Before(AppConfig.Source.Start) {
		missing = append(missing, "START_DATE <= END_DATE")
	}

	if AppConfig.Output.Dir == "" {
		missing = append(missing, "OUTPUT_DIR")
	}
	if AppConfig.Output.Prefix == "" {
		missing = append(missing, "ARTIFACT_PREFIX")
	}

	c := AppConfig.Charts
	if c.WidthInches <= 0 || c.HeightInches <= 0 || c.DPI <= 0 {
		missing = append(missing, "CHART_WIDTH_IN/CHART_HEIGHT_IN/CHART_DPI > 0")
	}
	for _, w := range c.MAWindows {
		if w < 1 {
			missing = append(missing, "MA_WINDOWS (positive integers)")
			break
		}
	}
	if c.InteractiveMA < 1 {
		missing = append(missing, "INTERACTIVE_MA_WINDOW >= 1")
	}
	if c.VolatilityWindow < 2 {
		missing = append(missing, "VOLATILITY_WINDOW >= 2")
	}
	if c.Bins < 1 {
		missing = append(missing, "HISTOGRAM_BINS >= 1")
	}

	if len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
