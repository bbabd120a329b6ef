package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"weather-dashboard/internal/chat"
	"weather-dashboard/internal/render"
	"weather-dashboard/internal/session"
	"go.uber.org/zap"
)

// Backend is everything the dashboard needs from the server.
type Backend interface {
	session.Fetcher
	chat.Backend
}

// App ties the weather session, the renderer and the chat panel together.
type App struct {
	store      *session.Store
	transcript *chat.Transcript
	bridge     *chat.Bridge
	loc        *time.Location
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.Mutex
	inFlight int
}

func New(backend Backend, defaultCity string, loc *time.Location, logger *zap.Logger) *App {
	if loc == nil {
		loc = time.Local
	}
	store := session.NewStore(backend, defaultCity, logger)
	transcript := chat.NewTranscript()

	return &App{
		store:      store,
		transcript: transcript,
		bridge:     chat.NewBridge(backend, store, transcript, loc, logger),
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Search loads weather for the city typed by the user and returns the
// message posted to the chat panel. Blank input does nothing.
func (a *App) Search(ctx context.Context, input string) string {
	city := strings.TrimSpace(input)
	if city == "" {
		return ""
	}

	a.setLoading(1)
	err := a.store.Refresh(ctx, city)
	a.setLoading(-1)

	var message string
	var fetchErr *session.FetchError
	switch {
	case err == nil:
		message = fmt.Sprintf("I've updated the weather data for %s. Ask me anything about the current conditions or forecast!", city)
	case errors.As(err, &fetchErr):
		message = fetchErr.UserMessage()
	case errors.Is(err, session.ErrSuperseded):
		// The newer search reports its own outcome.
		return ""
	default:
		a.logger.Error("Unexpected refresh error", zap.String("city", city), zap.Error(err))
		message = (&session.FetchError{City: city, Err: err}).UserMessage()
	}

	a.transcript.AddBot(message)
	return message
}

// Ask forwards a chat question and returns the assistant's reply.
func (a *App) Ask(ctx context.Context, input string) string {
	return a.bridge.Ask(ctx, input)
}

// View returns the current dashboard projection, with placeholders while a
// search is in flight.
func (a *App) View() render.View {
	view := render.Project(a.store.Snapshot(), a.now(), a.loc)

	a.mu.Lock()
	loading := a.inFlight > 0
	a.mu.Unlock()

	if loading {
		view = render.Loading(view)
	}
	return view
}

func (a *App) Transcript() *chat.Transcript {
	return a.transcript
}

// HasData reports whether any search has succeeded yet.
func (a *App) HasData() bool {
	return a.store.Snapshot().HasData()
}

// City returns the active city.
func (a *App) City() string {
	return a.store.City()
}

func (a *App) setLoading(delta int) {
	a.mu.Lock()
	a.inFlight += delta
	a.mu.Unlock()
}
