package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

//go:generate moq -out prober_mock.go . Prober

// Default probing parameters
const (
	DefaultInterval = 15 * time.Second
	DefaultTimeout  = 5 * time.Second
)

// ErrAlreadyRunning is returned by Start on a running monitor
var ErrAlreadyRunning = errors.New("monitor already running")

// Prober checks whether the remote is reachable
type Prober interface {
	Ping(ctx context.Context) error
}

// Monitor periodically probes the remote and feeds the result into a Signal.
// It is a cancellable task with an explicit Start/Stop lifecycle.
type Monitor struct {
	prober   Prober
	signal   *Signal
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
	timeout  time.Duration
	mu       sync.Mutex
}

// MonitorOption configures a Monitor
type MonitorOption func(*Monitor)

// WithInterval sets the time between probes
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithTimeout sets the deadline of a single probe
func WithTimeout(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// NewMonitor creates a stopped monitor
func NewMonitor(prober Prober, signal *Signal, logger *slog.Logger, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		prober:   prober,
		signal:   signal,
		logger:   logger,
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start probes once immediately and then every interval until Stop is called
// or ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.run(ctx, m.done)

	m.logger.Info("Connectivity monitor started", "interval", m.interval)
	return nil
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Stop cancels probing and waits for the running probe to finish. Stopping a
// stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	m.logger.Info("Connectivity monitor stopped")
}

// Check runs one probe and updates the signal. Returns the resulting state.
func (m *Monitor) Check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.prober.Ping(probeCtx)
	if ctx.Err() != nil {
		// Остановлены во время проверки, состояние не меняем
		return m.signal.IsOnline()
	}

	online := err == nil
	if m.signal.Set(online) {
		if online {
			m.logger.Info("Remote is reachable")
		} else {
			m.logger.Warn("Remote is unreachable", "error", err)
		}
	}
	return online
}
