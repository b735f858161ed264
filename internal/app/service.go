// Package service provides the dashboard service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/sensorboard/internal/domain/dashboard"
	"github.com/okian/sensorboard/pkg/logger"
)

// ErrStart is returned when the service refuses to start.
var ErrStart = errors.New("service start failed")

// Service hands out dashboard payloads. It holds no per-request state; the
// mutex only guards the start/stop lifecycle.
type Service struct {
	mu sync.RWMutex

	started   bool
	startedAt time.Time

	logger logger.Logger
	now    func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, used for the startedAt stamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger: logger.NewNop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start checks the payloads once and marks the service ready. A payload
// with a broken shape would render empty charts, so it is refused here.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting dashboard service...")

	if err := dashboard.Charts().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}
	if err := dashboard.ValidateLogs(dashboard.Logs()); err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("sensors", dashboard.SensorCount),
		logger.Int("logEntries", dashboard.LogCount),
	)
	return nil
}

// Stop marks the service stopped. Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Started reports whether Start succeeded and Stop has not been called since.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// StartedAt returns when the service last started; zero if it never did.
func (s *Service) StartedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startedAt
}

// Charts returns a fresh copy of the chart payload.
func (s *Service) Charts(ctx context.Context) dashboard.ChartsPayload {
	s.logger.Debug(ctx, "serving charts payload")
	return dashboard.Charts()
}

// Logs returns a fresh copy of the activity log.
func (s *Service) Logs(ctx context.Context) []dashboard.LogEntry {
	s.logger.Debug(ctx, "serving activity log")
	return dashboard.Logs()
}
