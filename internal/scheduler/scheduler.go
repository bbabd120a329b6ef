package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Warmer fetches weather for a set of cities.
type Warmer interface {
	Warm(ctx context.Context, cities []string) error
}

type Scheduler struct {
	warmer     Warmer
	logger     *zap.Logger
	cron       *cron.Cron
	entryID    cron.EntryID
	interval   time.Duration
	runTimeout time.Duration

	mu      sync.Mutex
	cities  []string
	running bool
	lastRun time.Time
	lastErr error
	runs    sync.WaitGroup
}

func NewScheduler(warmer Warmer, cities []string, interval time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid fetch interval %s", interval)
	}

	s := &Scheduler{
		warmer:     warmer,
		logger:     logger,
		interval:   interval,
		runTimeout: 60 * time.Second,
		cities:     cities,
	}

	cronLogger := zapCronLogger{logger.Sugar()}
	s.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	id, err := s.cron.AddFunc("@every "+interval.String(), s.runFetch)
	if err != nil {
		return nil, fmt.Errorf("schedule warm-up: %w", err)
	}
	s.entryID = id

	return s, nil
}

// Start runs one warm-up immediately and then every interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.cron.Start()

	s.logger.Info("Scheduler started",
		zap.Duration("interval", s.interval),
		zap.Time("next_run", s.cron.Entry(s.entryID).Next))

	s.ForceRun()
}

func (s *Scheduler) runFetch() {
	s.mu.Lock()
	cities := append([]string(nil), s.cities...)
	s.mu.Unlock()

	if len(cities) == 0 {
		return
	}

	startTime := time.Now()
	s.logger.Info("Starting scheduled weather fetch",
		zap.Time("start_time", startTime),
		zap.Strings("cities", cities))

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	err := s.warmer.Warm(ctx, cities)

	s.mu.Lock()
	s.lastRun = startTime
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Scheduled weather fetch failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
		return
	}

	s.logger.Info("Scheduled weather fetch completed",
		zap.Duration("duration", time.Since(startTime)))
}

// Stop halts the schedule and waits for running fetches to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	s.runs.Wait()
}

func (s *Scheduler) ForceRun() {
	s.logger.Info("Manually triggering weather fetch")
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		s.runFetch()
	}()
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":  s.running,
		"interval": s.interval.String(),
		"last_run": s.lastRun,
		"cities":   s.cities,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}
	return status
}

func (s *Scheduler) UpdateCities(cities []string) {
	s.mu.Lock()
	s.cities = cities
	s.mu.Unlock()

	s.logger.Info("Scheduler cities updated", zap.Strings("cities", cities))
}

// zapCronLogger routes cron's own logging through zap.
type zapCronLogger struct {
	sugar *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
