package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"weather-dashboard/internal/models"
	"go.uber.org/zap"
)

type fetchFunc func(ctx context.Context, city string) (*models.WeatherReport, error)

func (f fetchFunc) FetchWeather(ctx context.Context, city string) (*models.WeatherReport, error) {
	return f(ctx, city)
}

func reportFor(city string, temp float64) *models.WeatherReport {
	return &models.WeatherReport{
		Current: &models.CurrentWeather{LocationName: city, Temperature: temp},
		Forecast: models.ForecastList{
			{Timestamp: 1722850000, Temperature: temp, Humidity: 50},
		},
	}
}

func TestStore_RefreshSuccess(t *testing.T) {
	store := NewStore(fetchFunc(func(ctx context.Context, city string) (*models.WeatherReport, error) {
		return reportFor(city, 18), nil
	}), "London", zap.NewNop())

	if store.Snapshot().HasData() {
		t.Fatal("new store should have no data")
	}
	if store.City() != "London" {
		t.Errorf("expected default city, got %s", store.City())
	}

	if err := store.Refresh(context.Background(), "Berlin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := store.Snapshot()
	if !snap.HasData() || snap.City != "Berlin" || snap.Current.LocationName != "Berlin" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("expected update time")
	}
}

func TestStore_RefreshFailureKeepsState(t *testing.T) {
	fail := false
	store := NewStore(fetchFunc(func(ctx context.Context, city string) (*models.WeatherReport, error) {
		if fail {
			return nil, errors.New("not found")
		}
		return reportFor(city, 18), nil
	}), "London", zap.NewNop())

	if err := store.Refresh(context.Background(), "Paris"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := store.Snapshot()

	fail = true
	err := store.Refresh(context.Background(), "Atlantis")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if !strings.Contains(fetchErr.UserMessage(), "Atlantis") {
		t.Errorf("message should name the city: %s", fetchErr.UserMessage())
	}

	after := store.Snapshot()
	if after.City != before.City || after.Current.LocationName != "Paris" || len(after.Forecast) != len(before.Forecast) {
		t.Errorf("state changed after failed refresh: %+v", after)
	}
}

func TestStore_RefreshIncompletePayload(t *testing.T) {
	store := NewStore(fetchFunc(func(ctx context.Context, city string) (*models.WeatherReport, error) {
		return &models.WeatherReport{Current: &models.CurrentWeather{}}, nil
	}), "London", zap.NewNop())

	var fetchErr *FetchError
	if err := store.Refresh(context.Background(), "Rome"); !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if store.Snapshot().HasData() {
		t.Error("partial payload must not be stored")
	}
}

func TestStore_StaleResponseDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	store := NewStore(fetchFunc(func(ctx context.Context, city string) (*models.WeatherReport, error) {
		if city == "Slow" {
			close(slowStarted)
			<-releaseSlow
		}
		return reportFor(city, 10), nil
	}), "London", zap.NewNop())

	slowErr := make(chan error, 1)
	go func() {
		slowErr <- store.Refresh(context.Background(), "Slow")
	}()

	<-slowStarted
	if err := store.Refresh(context.Background(), "Fast"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(releaseSlow)

	if err := <-slowErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
	if city := store.Snapshot().City; city != "Fast" {
		t.Errorf("stale response overwrote newer one: city=%s", city)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	store := NewStore(fetchFunc(func(ctx context.Context, city string) (*models.WeatherReport, error) {
		return reportFor(city, 10), nil
	}), "London", zap.NewNop())
	store.Refresh(context.Background(), "Oslo")

	snap := store.Snapshot()
	snap.Current.Temperature = 99
	snap.Forecast[0].Temperature = 99

	again := store.Snapshot()
	if again.Current.Temperature != 10 || again.Forecast[0].Temperature != 10 {
		t.Error("snapshot mutation leaked into the store")
	}
}
