package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

var configKeys = []string{
	"APP_MODE", "SERVER_PORT", "DATA_SOURCE", "INPUT_FILE", "SYMBOL", "START_DATE", "END_DATE",
	"SAVE_FETCHED", "TUSHARE_TOKEN", "TUSHARE_BASE_URL", "PROVIDER_TIMEOUT", "OUTPUT_DIR",
	"ARTIFACT_PREFIX", "CHART_WIDTH_IN", "CHART_HEIGHT_IN", "CHART_DPI", "MA_WINDOWS",
	"INTERACTIVE_MA_WINDOW", "VOLATILITY_WINDOW", "HISTOGRAM_BINS", "SAMPLE_START",
	"SAMPLE_END", "SAMPLE_SEED", "SAMPLE_BASE_PRICE",
}

// TestLoadConfig_Defaults verifies that defaults are loaded and dates derived.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	for _, k := range configKeys {
		_ = os.Unsetenv(k)
	}

	LoadConfig()

	if AppConfig.Mode != "render" || AppConfig.Server.Port != "8080" {
		t.Fatalf("unexpected mode/port: %q %q", AppConfig.Mode, AppConfig.Server.Port)
	}
	src := AppConfig.Source
	if src.Kind != "file" || src.InputFile != "stock_601127_2025.csv" || src.Symbol != "601127.SH" {
		t.Fatalf("unexpected source defaults: %+v", src)
	}
	if !src.Start.Equal(src.End.AddDate(-1, 0, 0)) {
		t.Fatalf("start should default to one year before end: %v %v", src.Start, src.End)
	}
	if AppConfig.Output.Dir != "charts" || AppConfig.Output.Prefix != "stock" {
		t.Fatalf("unexpected output defaults: %+v", AppConfig.Output)
	}
	c := AppConfig.Charts
	if len(c.MAWindows) != 2 || c.MAWindows[0] != 5 || c.MAWindows[1] != 20 {
		t.Fatalf("unexpected MA windows: %v", c.MAWindows)
	}
	if c.InteractiveMA != 10 || c.VolatilityWindow != 20 || c.Bins != 50 || c.DPI != 100 {
		t.Fatalf("unexpected chart defaults: %+v", c)
	}
	if AppConfig.Provider.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", AppConfig.Provider.Timeout)
	}
	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !AppConfig.Sample.Start.Equal(wantStart) || AppConfig.Sample.Seed != 42 {
		t.Fatalf("unexpected sample defaults: %+v", AppConfig.Sample)
	}
}

// TestLoadConfig_EnvOverrides checks environment variables win over defaults.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_MODE", "API")
	t.Setenv("DATA_SOURCE", "tushare")
	t.Setenv("TUSHARE_TOKEN", "tok")
	t.Setenv("START_DATE", "2025-01-01")
	t.Setenv("END_DATE", "2025-06-30")
	t.Setenv("MA_WINDOWS", "3, 8,13")
	t.Setenv("PROVIDER_TIMEOUT", "5s")

	LoadConfig()

	if AppConfig.Mode != "api" || AppConfig.Source.Kind != "tushare" || AppConfig.Provider.TushareToken != "tok" {
		t.Fatalf("env not applied: %+v", AppConfig)
	}
	if AppConfig.Source.Start.Format(dateLayout) != "2025-01-01" || AppConfig.Source.End.Format(dateLayout) != "2025-06-30" {
		t.Fatalf("dates not parsed: %v %v", AppConfig.Source.Start, AppConfig.Source.End)
	}
	if got := AppConfig.Charts.MAWindows; len(got) != 3 || got[2] != 13 {
		t.Fatalf("windows not parsed: %v", got)
	}
	if AppConfig.Provider.Timeout != 5*time.Second {
		t.Fatalf("timeout not parsed: %v", AppConfig.Provider.Timeout)
	}
}

func TestParseWindows(t *testing.T) {
	got := parseWindows(" 5 ,x,,20")
	if len(got) != 3 || got[0] != 5 || got[1] != 0 || got[2] != 20 {
		t.Fatalf("unexpected: %v", got)
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		// In child process: set empty AppConfig and call validateConfig() to trigger log.Fatalf (os.Exit)
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}

// TestValidateConfig_TushareNeedsToken runs in a subprocess because the
// failure path exits.
func TestValidateConfig_TushareNeedsToken(t *testing.T) {
	if os.Getenv("RUN_TUSHARE_FATAL") == "1" {
		LoadConfig()
		t.Fatalf("LoadConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_TushareNeedsToken")
	cmd.Env = append(os.Environ(), "RUN_TUSHARE_FATAL=1", "DATA_SOURCE=tushare", "TUSHARE_TOKEN=")
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
