package api

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"weather-dashboard/internal/dashboard"
	"weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

func startBackend(t *testing.T, srv *testServer) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	go srv.app.Listener(ln)
	t.Cleanup(func() { srv.app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestDashboardAgainstBackend(t *testing.T) {
	srv := newTestServer(t, nil, staticGenerator{err: errors.New("model unavailable")})
	baseURL := startBackend(t, srv)

	backend := client.NewDashboardClient(baseURL, client.ClientConfig{
		Timeout:        5 * time.Second,
		Threshold:      5,
		BreakerTimeout: time.Second,
	}, zap.NewNop())
	app := dashboard.New(backend, "London", time.UTC, zap.NewNop())

	ctx := context.Background()

	msg := app.Search(ctx, "New York")
	if !strings.Contains(msg, "updated the weather data for New York") {
		t.Fatalf("search failed: %q", msg)
	}

	view := app.View()
	if view.Current.Location != "New York, GB" || view.Current.Temperature != "23" || !view.DemoMode {
		t.Errorf("unexpected view %+v", view.Current)
	}
	if len(view.Forecast) < 5 {
		t.Errorf("expected at least 5 forecast cards, got %d", len(view.Forecast))
	}

	// The model fails, /chat answers success=false and the chatbot replies
	// from the stored city.
	reply := app.Ask(ctx, "What is the current temperature?")
	if reply != "The current temperature is 23°C." {
		t.Errorf("unexpected reply %q", reply)
	}
}
