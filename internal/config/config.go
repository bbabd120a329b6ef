package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PlaceholderAPIKey is treated as "no key configured".
const PlaceholderAPIKey = "YOUR_OPENWEATHER_API_KEY"

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
	}

	WeatherAPI struct {
		OpenWeatherAPIKey string
		OpenWeatherURL    string
	}

	LLM struct {
		GeminiAPIKey string
		Model        string
		BaseURL      string
		Timeout      time.Duration
	}

	Scheduler struct {
		FetchInterval time.Duration
		DefaultCities []string
	}

	Cache struct {
		MaxSize int
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}

	RateLimit struct {
		RequestsPerSecond float64
		Burst             int
	}

	Dashboard struct {
		BackendURL     string
		DefaultCity    string
		RequestTimeout time.Duration
		MaxRetries     int
		TimeZone       string
	}
}

// DemoMode reports whether the backend should serve generated data.
func (c *Config) DemoMode() bool {
	key := c.WeatherAPI.OpenWeatherAPIKey
	return key == "" || key == PlaceholderAPIKey
}

// Location resolves Dashboard.TimeZone, falling back to the local zone.
func (c *Config) Location() *time.Location {
	if c.Dashboard.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Dashboard.TimeZone)
	if err != nil {
		zap.L().Warn("Unknown time zone, using local", zap.String("tz", c.Dashboard.TimeZone), zap.Error(err))
		return time.Local
	}
	return loc
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "60s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	// Weather API configuration
	cfg.WeatherAPI.OpenWeatherAPIKey = getEnv("OPENWEATHER_API_KEY", "")
	cfg.WeatherAPI.OpenWeatherURL = getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5")

	// Language model configuration
	cfg.LLM.GeminiAPIKey = getEnv("GEMINI_API_KEY", "")
	cfg.LLM.Model = getEnv("GEMINI_MODEL", "gemini-1.5-pro")
	cfg.LLM.BaseURL = getEnv("GEMINI_URL", "https://generativelanguage.googleapis.com/v1beta")
	cfg.LLM.Timeout = parseDuration(getEnv("GEMINI_TIMEOUT", "30s"))

	// Scheduler configuration
	cfg.Scheduler.FetchInterval = parseDuration(getEnv("FETCH_INTERVAL", "15m"))
	cfg.Scheduler.DefaultCities = splitList(getEnv("DEFAULT_CITIES", "London"))

	// Cache configuration
	cfg.Cache.MaxSize = parseInt(getEnv("MAX_CACHE_SIZE", "1000"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retry configuration
	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "2"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	// Outbound rate limit (OpenWeatherMap free tier allows 60 calls/minute)
	cfg.RateLimit.RequestsPerSecond = parseFloat(getEnv("PROVIDER_RPS", "1"))
	cfg.RateLimit.Burst = parseInt(getEnv("PROVIDER_BURST", "5"))

	// Dashboard client configuration
	cfg.Dashboard.BackendURL = getEnv("DASHBOARD_BACKEND_URL", "http://localhost:"+cfg.Server.Port)
	cfg.Dashboard.DefaultCity = getEnv("DASHBOARD_DEFAULT_CITY", "London")
	cfg.Dashboard.RequestTimeout = parseDuration(getEnv("DASHBOARD_REQUEST_TIMEOUT", "45s"))
	cfg.Dashboard.MaxRetries = parseInt(getEnv("DASHBOARD_MAX_RETRIES", "0"))
	cfg.Dashboard.TimeZone = getEnv("DASHBOARD_TZ", "")

	return cfg, nil
}

// NewLogger builds a production zap logger at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
