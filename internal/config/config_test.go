package config

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("DEFAULT_CITIES", "")
	t.Setenv("FIBER_PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s", cfg.Server.Port)
	}
	if !cfg.DemoMode() {
		t.Error("expected demo mode without an API key")
	}
	if len(cfg.Scheduler.DefaultCities) != 1 || cfg.Scheduler.DefaultCities[0] != "London" {
		t.Errorf("cities = %v", cfg.Scheduler.DefaultCities)
	}
	if cfg.Dashboard.BackendURL != "http://localhost:8080" {
		t.Errorf("backend url = %s", cfg.Dashboard.BackendURL)
	}
	if cfg.Dashboard.MaxRetries != 0 {
		t.Errorf("dashboard calls must not retry by default")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "abc")
	t.Setenv("DEFAULT_CITIES", " Prague , ,Tokyo")
	t.Setenv("FETCH_INTERVAL", "5m")
	t.Setenv("DASHBOARD_TZ", "UTC")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DemoMode() {
		t.Error("API key should disable demo mode")
	}
	if got := cfg.Scheduler.DefaultCities; len(got) != 2 || got[0] != "Prague" || got[1] != "Tokyo" {
		t.Errorf("cities = %v", got)
	}
	if cfg.Scheduler.FetchInterval != 5*time.Minute {
		t.Errorf("interval = %s", cfg.Scheduler.FetchInterval)
	}
	if loc := cfg.Location(); loc.String() != "UTC" {
		t.Errorf("location = %s", loc)
	}
}

func TestConfig_PlaceholderKeyIsDemo(t *testing.T) {
	cfg := &Config{}
	cfg.WeatherAPI.OpenWeatherAPIKey = PlaceholderAPIKey
	if !cfg.DemoMode() {
		t.Error("placeholder key should mean demo mode")
	}
}

func TestNewLogger_BadLevelFallsBack(t *testing.T) {
	logger, err := NewLogger("loud")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level to be enabled")
	}
}
