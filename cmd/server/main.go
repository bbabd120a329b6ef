package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-dashboard/internal/api"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize logger
	logger, err := config.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Weather Dashboard backend")

	providerConfig := client.ClientConfig{
		Timeout:        10 * time.Second,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
		RateLimit:      cfg.RateLimit.RequestsPerSecond,
		Burst:          cfg.RateLimit.Burst,
	}

	// Weather provider, or demo data without an API key
	var provider services.Provider
	if cfg.DemoMode() {
		logger.Warn("No OpenWeatherMap API key configured, serving demo data")
	} else {
		provider = client.NewOpenWeatherClient(cfg.WeatherAPI.OpenWeatherAPIKey, cfg.WeatherAPI.OpenWeatherURL, providerConfig, logger)
		logger.Info("OpenWeatherMap client initialized")
	}

	store := services.NewWeatherStore(cfg.Cache.MaxSize, logger)
	weather := services.NewWeatherService(provider, store, logger)

	// Language model
	var generator services.Generator
	if cfg.LLM.GeminiAPIKey != "" {
		llmConfig := providerConfig
		llmConfig.Timeout = cfg.LLM.Timeout
		generator = client.NewGeminiClient(cfg.LLM.GeminiAPIKey, cfg.LLM.Model, cfg.LLM.BaseURL, llmConfig, logger)
		logger.Info("Gemini client initialized", zap.String("model", cfg.LLM.Model))
	} else {
		logger.Warn("No Gemini API key configured, /chat will report it as unavailable")
	}
	chat := services.NewChatService(generator, logger)

	// Initialize scheduler
	warmScheduler, err := scheduler.NewScheduler(
		weather,
		cfg.Scheduler.DefaultCities,
		cfg.Scheduler.FetchInterval,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize scheduler", zap.Error(err))
	}

	handler := api.NewHandler(weather, chat, warmScheduler, logger)
	app := api.NewApp(handler, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, logger)

	warmScheduler.Start()

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	warmScheduler.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
