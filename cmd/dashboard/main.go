package main

import (
	"fmt"
	"os"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/dashboard"
	"weather-dashboard/pkg/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backendURL string
	cityFlag   string
	logLevel   string

	app    *dashboard.App
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Weather Dashboard - current conditions, forecast and a weather assistant",
	Long: `Weather Dashboard shows current conditions and a 5-day forecast for a city
and answers questions about it through the backend's assistant.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL (default from DASHBOARD_BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&cityFlag, "city", "", "city to load (default from DASHBOARD_DEFAULT_CITY)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err = config.NewLogger(logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	if backendURL == "" {
		backendURL = cfg.Dashboard.BackendURL
	}
	if cityFlag == "" {
		cityFlag = cfg.Dashboard.DefaultCity
	}

	backend := client.NewDashboardClient(backendURL, client.ClientConfig{
		Timeout:        cfg.Dashboard.RequestTimeout,
		MaxRetries:     cfg.Dashboard.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}, logger)

	app = dashboard.New(backend, cityFlag, cfg.Location(), logger)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
