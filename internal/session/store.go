package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"weather-dashboard/internal/models"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by Refresh when a newer refresh was started
// before this one completed. The response is discarded.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// FetchError reports a refresh that left the session untouched.
type FetchError struct {
	City string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch weather for %q: %v", e.City, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage is the conversational notice shown for a failed search.
func (e *FetchError) UserMessage() string {
	return fmt.Sprintf("Sorry, I couldn't find weather data for %q. Please try a different city name.", e.City)
}

type Fetcher interface {
	FetchWeather(ctx context.Context, city string) (*models.WeatherReport, error)
}

// Snapshot is a copy of the session at one point in time. Current and
// Forecast are either both set or both empty.
type Snapshot struct {
	City      string
	Current   *models.CurrentWeather
	Forecast  models.ForecastList
	DemoMode  bool
	UpdatedAt time.Time
}

// HasData reports whether a fetch has succeeded yet.
func (s Snapshot) HasData() bool {
	return s.Current != nil && s.Forecast != nil
}

// Store is the single-slot weather session. Only a successful, current
// refresh mutates it.
type Store struct {
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.RWMutex
	issued   uint64
	snapshot Snapshot
}

func NewStore(fetcher Fetcher, defaultCity string, logger *zap.Logger) *Store {
	return &Store{
		fetcher:  fetcher,
		logger:   logger,
		now:      time.Now,
		snapshot: Snapshot{City: defaultCity},
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if snap.Current != nil {
		current := *snap.Current
		snap.Current = &current
	}
	if snap.Forecast != nil {
		snap.Forecast = append(models.ForecastList(nil), snap.Forecast...)
	}
	return snap
}

// City returns the active city name.
func (s *Store) City() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.City
}

// Refresh fetches weather for city and replaces the session on success.
// Failures return a *FetchError; a response overtaken by a later Refresh
// returns ErrSuperseded. In both cases the session is unchanged.
func (s *Store) Refresh(ctx context.Context, city string) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	report, err := s.fetcher.FetchWeather(ctx, city)
	if err == nil && (report == nil || report.Current == nil || report.Forecast == nil) {
		err = errors.New("incomplete weather payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issued {
		s.logger.Debug("Discarding stale weather response",
			zap.String("city", city),
			zap.Uint64("seq", seq),
			zap.Uint64("latest", s.issued))
		return ErrSuperseded
	}

	if err != nil {
		s.logger.Warn("Weather refresh failed",
			zap.String("city", city),
			zap.Error(err))
		return &FetchError{City: city, Err: err}
	}

	s.snapshot = Snapshot{
		City:      city,
		Current:   report.Current,
		Forecast:  report.Forecast,
		DemoMode:  report.DemoMode,
		UpdatedAt: s.now(),
	}

	s.logger.Info("Weather session updated",
		zap.String("city", city),
		zap.Int("samples", len(report.Forecast)),
		zap.Bool("demo_mode", report.DemoMode))

	return nil
}
