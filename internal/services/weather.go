package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

var ErrCityRequired = errors.New("city is required")

// Provider is the upstream source of current conditions and forecasts.
type Provider interface {
	GetCurrentWeather(ctx context.Context, city string) (*client.OpenWeatherCurrentResponse, error)
	GetForecast(ctx context.Context, city string) (*client.OpenWeatherForecastResponse, error)
}

type WeatherService struct {
	provider Provider
	store    *WeatherStore
	logger   *zap.Logger
	now      func() time.Time

	mu            sync.RWMutex
	lastFetchTime time.Time
	successCount  int
	failureCount  int
}

// NewWeatherService serves generated demo data when provider is nil.
func NewWeatherService(provider Provider, store *WeatherStore, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		provider: provider,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *WeatherService) DemoMode() bool {
	return s.provider == nil
}

func (s *WeatherService) Store() *WeatherStore {
	return s.store
}

// Fetch retrieves current conditions and the forecast for city and records
// them in the store under the name the caller used.
func (s *WeatherService) Fetch(ctx context.Context, city string) (*CityWeather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	data, err := s.fetch(ctx, city)

	s.mu.Lock()
	s.lastFetchTime = s.now()
	if err != nil {
		s.failureCount++
	} else {
		s.successCount++
	}
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	s.store.Set(data)
	return data, nil
}

func (s *WeatherService) fetch(ctx context.Context, city string) (*CityWeather, error) {
	now := s.now()

	if s.DemoMode() {
		return &CityWeather{
			City:      city,
			Current:   demoCurrentWeather(city, now),
			Forecast:  demoForecast(city, now),
			DemoMode:  true,
			FetchedAt: now,
		}, nil
	}

	var (
		wg          sync.WaitGroup
		current     *client.OpenWeatherCurrentResponse
		forecast    *client.OpenWeatherForecastResponse
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.provider.GetCurrentWeather(ctx, city)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.provider.GetForecast(ctx, city)
	}()
	wg.Wait()

	if err := errors.Join(currentErr, forecastErr); err != nil {
		s.logger.Warn("Failed to fetch weather for city",
			zap.String("city", city),
			zap.Error(err))
		return nil, fmt.Errorf("fetch weather for %s: %w", city, err)
	}

	return &CityWeather{
		City:      city,
		Current:   current,
		Forecast:  forecast,
		FetchedAt: now,
	}, nil
}

// Warm fetches every city concurrently. Individual failures are logged and
// reported together; successful cities are stored regardless.
func (s *WeatherService) Warm(ctx context.Context, cities []string) error {
	var wg sync.WaitGroup
	errs := make(chan error, len(cities))

	startTime := time.Now()

	for _, city := range cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()

			if _, err := s.Fetch(ctx, city); err != nil {
				s.logger.Error("Failed to warm city",
					zap.String("city", city),
					zap.Error(err))
				errs <- err
			}
		}(city)
	}

	wg.Wait()
	close(errs)

	var failed []error
	for err := range errs {
		failed = append(failed, err)
	}

	s.logger.Info("Weather warm-up completed",
		zap.Int("cities", len(cities)),
		zap.Int("failed", len(failed)),
		zap.Duration("duration", time.Since(startTime)))

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d cities failed: %w", len(failed), len(cities), errors.Join(failed...))
	}

	return nil
}

func (s *WeatherService) GetLastFetchTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetchTime
}

func (s *WeatherService) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"demo_mode":       s.provider == nil,
		"last_fetch_time": s.lastFetchTime,
		"success_count":   s.successCount,
		"failure_count":   s.failureCount,
		"store_stats":     s.store.GetStats(),
	}
}
