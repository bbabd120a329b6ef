package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weather-dashboard/internal/chat"
	"weather-dashboard/internal/render"
	"weather-dashboard/pkg/client"
	"go.uber.org/zap"
)

const okWeather = `{"success":true,"current":{"name":"Lisbon","sys":{"country":"PT"},"main":{"temp":26.2,"feels_like":26,"humidity":48,"pressure":1018},"wind":{"speed":5},"visibility":10000,"weather":[{"description":"clear sky","icon":"01d"}]},"forecast":{"cod":"200","list":[{"dt":1722859200,"main":{"temp":25,"humidity":50},"weather":[{"description":"clear sky","icon":"01d"}]}]}}`

type backendServer struct {
	*httptest.Server
	gate         chan struct{}
	chatStatus   int
	chatbotReply string
}

func newBackendServer(t *testing.T) *backendServer {
	b := &backendServer{chatStatus: http.StatusOK, gate: make(chan struct{})}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/weather/"):
			if strings.HasSuffix(r.URL.Path, "/Porto") {
				<-b.gate
			}
			if strings.HasSuffix(r.URL.Path, "/Lisbon") || strings.HasSuffix(r.URL.Path, "/Porto") {
				w.Write([]byte(okWeather))
				return
			}
			w.Write([]byte(`{"success": false, "error": "not found"}`))
		case r.URL.Path == "/chat":
			w.WriteHeader(b.chatStatus)
			json.NewEncoder(w).Encode(client.ChatResponse{Success: b.chatStatus == http.StatusOK, Response: "model says hi"})
		case r.URL.Path == "/api/chatbot":
			if b.chatbotReply == "" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(client.ChatResponse{Success: true, Response: b.chatbotReply})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	return b
}

func newApp(server *backendServer) *App {
	cfg := client.ClientConfig{Timeout: 2 * time.Second, Threshold: 10, BreakerTimeout: time.Second}
	backend := client.NewDashboardClient(server.URL, cfg, zap.NewNop())
	app := New(backend, "London", time.UTC, zap.NewNop())
	app.now = func() time.Time { return time.Date(2024, 8, 5, 12, 0, 0, 0, time.UTC) }
	return app
}

func TestApp_SearchSuccess(t *testing.T) {
	server := newBackendServer(t)
	defer server.Close()
	app := newApp(server)

	msg := app.Search(context.Background(), "  Lisbon ")
	if !strings.Contains(msg, "updated the weather data for Lisbon") {
		t.Errorf("unexpected message %q", msg)
	}

	view := app.View()
	if view.Current.Location != "Lisbon, PT" || view.Current.Temperature != "26" {
		t.Errorf("unexpected view %+v", view.Current)
	}
	if app.City() != "Lisbon" {
		t.Errorf("city = %s", app.City())
	}
	if !app.HasData() {
		t.Error("expected data after a successful search")
	}
}

func TestApp_SearchFailureKeepsState(t *testing.T) {
	server := newBackendServer(t)
	defer server.Close()
	app := newApp(server)

	app.Search(context.Background(), "Lisbon")
	before := app.View()

	msg := app.Search(context.Background(), "Atlantis")
	if !strings.Contains(msg, "Atlantis") {
		t.Errorf("failure message should name the city: %q", msg)
	}

	after := app.View()
	if after.Current != before.Current || app.City() != "Lisbon" {
		t.Errorf("state changed after failed search: %+v", after.Current)
	}

	last, _ := app.Transcript().Last()
	if last.Text != msg {
		t.Errorf("failure message not posted to transcript")
	}
}

func TestApp_SearchBlankIsNoop(t *testing.T) {
	server := newBackendServer(t)
	defer server.Close()
	app := newApp(server)

	if msg := app.Search(context.Background(), "   "); msg != "" {
		t.Errorf("expected no message, got %q", msg)
	}
	if len(app.Transcript().Entries()) != 0 {
		t.Error("blank search should not touch the transcript")
	}
	if app.HasData() {
		t.Error("no search has succeeded yet")
	}
}

func TestApp_LoadingPlaceholders(t *testing.T) {
	server := newBackendServer(t)
	defer server.Close()
	app := newApp(server)
	app.Search(context.Background(), "Lisbon")

	done := make(chan struct{})
	go func() {
		app.Search(context.Background(), "Porto")
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for !app.View().Loading {
		select {
		case <-deadline:
			t.Fatal("view never entered loading state")
		case <-time.After(5 * time.Millisecond):
		}
	}

	view := app.View()
	if view.Current.Temperature != render.Placeholder || view.Current.Visibility != render.Placeholder {
		t.Errorf("expected placeholders while loading, got %+v", view.Current)
	}

	close(server.gate)
	<-done
	if app.View().Loading {
		t.Error("loading should clear after the search completes")
	}
}

func TestApp_AskFallsBackToChatbot(t *testing.T) {
	server := newBackendServer(t)
	defer server.Close()
	server.chatStatus = http.StatusInternalServerError
	server.chatbotReply = "72% humidity"
	app := newApp(server)

	reply := app.Ask(context.Background(), "humidity?")
	if reply != "72% humidity" {
		t.Errorf("unexpected reply %q", reply)
	}

	entries := app.Transcript().Entries()
	if len(entries) != 2 || entries[1].Role != chat.RoleBot || entries[1].Pending {
		t.Errorf("unexpected transcript %+v", entries)
	}
}

func TestApp_AskBothFail(t *testing.T) {
	server := newBackendServer(t)
	defer server.Close()
	server.chatStatus = http.StatusInternalServerError
	app := newApp(server)

	if reply := app.Ask(context.Background(), "hello"); reply != chat.HelpMessage {
		t.Errorf("unexpected reply %q", reply)
	}
	if n := len(app.Transcript().Entries()); n != 2 {
		t.Errorf("expected one user and one bot entry, got %d", n)
	}
}
