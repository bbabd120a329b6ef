package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"weather-dashboard/internal/forecast"
	"weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

type fakeProvider struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{calls: map[string]int{}, fail: map[string]bool{}}
}

func (p *fakeProvider) GetCurrentWeather(_ context.Context, city string) (*client.OpenWeatherCurrentResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[city]++
	if p.fail[city] {
		return nil, errors.New("city not found")
	}
	return demoCurrentWeather(city, time.Unix(1722859200, 0)), nil
}

func (p *fakeProvider) GetForecast(_ context.Context, city string) (*client.OpenWeatherForecastResponse, error) {
	if p.fail[city] {
		return nil, errors.New("city not found")
	}
	return demoForecast(city, time.Unix(1722859200, 0)), nil
}

func newService(provider Provider) *WeatherService {
	store := NewWeatherStore(100, zap.NewNop())
	return NewWeatherService(provider, store, zap.NewNop())
}

func TestWeatherService_DemoMode(t *testing.T) {
	svc := newService(nil)

	data, err := svc.Fetch(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !data.DemoMode || !svc.DemoMode() {
		t.Error("expected demo data")
	}
	if data.Current.Name != "Atlantis" || data.Current.Main.Temp != 22.5 {
		t.Errorf("unexpected current %+v", data.Current)
	}
	if len(data.Forecast.List) != 40 {
		t.Fatalf("expected 40 samples, got %d", len(data.Forecast.List))
	}
	if step := data.Forecast.List[1].Dt - data.Forecast.List[0].Dt; step != 3*3600 {
		t.Errorf("expected 3h spacing, got %ds", step)
	}

	stats, err := forecast.ComputeStatistics(data.Forecast.ToModel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.MaxTemp != 24 || stats.MinTemp != 15 || stats.AvgTemp != 20 || stats.AvgHumidity != 70 {
		t.Errorf("unexpected demo statistics %+v", stats)
	}

	if _, ok := svc.Store().Get("atlantis"); !ok {
		t.Error("demo fetch should be stored")
	}
}

func TestWeatherService_FetchFailureNotStored(t *testing.T) {
	provider := newFakeProvider()
	provider.fail["Nowhere"] = true
	svc := newService(provider)

	if _, err := svc.Fetch(context.Background(), "Nowhere"); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := svc.Store().Get("Nowhere"); ok {
		t.Error("failed fetch must not be stored")
	}
	if stats := svc.GetStats(); stats["failure_count"] != 1 {
		t.Errorf("unexpected stats %v", stats)
	}
}

func TestWeatherService_BlankCity(t *testing.T) {
	svc := newService(newFakeProvider())

	if _, err := svc.Fetch(context.Background(), "  "); !errors.Is(err, ErrCityRequired) {
		t.Errorf("expected ErrCityRequired, got %v", err)
	}
}

func TestWeatherService_Warm(t *testing.T) {
	provider := newFakeProvider()
	provider.fail["Nowhere"] = true
	svc := newService(provider)

	err := svc.Warm(context.Background(), []string{"Oslo", "Rome", "Nowhere"})
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Fatalf("expected partial failure, got %v", err)
	}

	for _, city := range []string{"Oslo", "Rome"} {
		if _, ok := svc.Store().Get(city); !ok {
			t.Errorf("%s should be warmed", city)
		}
	}
	if svc.GetLastFetchTime().IsZero() {
		t.Error("last fetch time not recorded")
	}
}
