// Package daemon runs the claim loop: one cycle at start, then the scheduler
// until the context is cancelled or the loop fails.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/warpdl/autoclaim/internal/scheduler"
	"github.com/warpdl/autoclaim/pkg/logger"
)

// Sentinel errors for the daemon runner.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running daemon.
	ErrAlreadyRunning = errors.New("daemon is already running")

	// ErrNotRunning is returned when Shutdown() is called on a stopped daemon.
	ErrNotRunning = errors.New("daemon is not running")

	// ErrShutdownTimeout is returned when shutdown exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timed out")

	// ErrAbnormalTermination wraps a panic that escaped the poll loop.
	ErrAbnormalTermination = errors.New("program terminated abnormally")
)

// Cycler runs claim cycles. *claim.Engine implements it.
type Cycler interface {
	Cycle(ctx context.Context) bool
	EnsureArmed() scheduler.Timer
}

// Loop is the poll loop. *scheduler.Scheduler implements it.
type Loop interface {
	Run(ctx context.Context) error
	Until() (time.Duration, bool)
}

// DefaultShutdownTimeout bounds both the wait for the loop to stop and the
// shutdown function.
const DefaultShutdownTimeout = 5 * time.Second

// Config holds the configuration for the daemon runner.
type Config struct {
	// ShutdownTimeout is the maximum time to wait for ShutdownFunc.
	// A zero value means no timeout.
	ShutdownTimeout time.Duration
}

// Dependencies holds the collaborators of the runner.
type Dependencies struct {
	Engine Cycler
	Loop   Loop

	// Logger receives lifecycle lines. If nil, nothing is logged.
	Logger logger.Logger

	// ShutdownFunc is called during shutdown to clean up resources.
	// If nil, no cleanup function is called.
	ShutdownFunc func() error
}

// Runner manages the daemon lifecycle.
type Runner struct {
	config  *Config
	deps    *Dependencies
	running bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a new daemon runner. A nil config means no shutdown timeout.
func New(config *Config, deps *Dependencies) *Runner {
	if config == nil {
		config = &Config{}
	}
	if deps == nil {
		deps = &Dependencies{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	return &Runner{config: config, deps: deps}
}

// Start performs the initial claim cycle, makes sure a timer is armed and
// then blocks in the poll loop until ctx is cancelled or Shutdown is called.
// It returns ctx.Err() on cancellation and ErrAbnormalTermination when the
// loop panics.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	if r.deps.Engine == nil || r.deps.Loop == nil {
		r.mu.Unlock()
		return errors.New("daemon: engine and loop are required")
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	r.running = true
	r.mu.Unlock()
	defer r.cleanupOnStop()

	log := r.deps.Logger
	log.Info("Auto Claim program started")
	log.Info("Performing initial claim operation")
	r.deps.Engine.Cycle(ctx)
	r.deps.Engine.EnsureArmed()
	log.Info("Next claim will be performed in %s", r.NextRun())

	return r.loop(ctx)
}

func (r *Runner) loop(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.deps.Logger.Error("Program terminated abnormally: %v", p)
			err = fmt.Errorf("%w: %v", ErrAbnormalTermination, p)
		}
	}()
	err = r.deps.Loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		r.deps.Logger.Info("Program interrupted by user")
	}
	return err
}

// NextRun describes the time until the pending timer fires.
func (r *Runner) NextRun() string {
	d, ok := r.deps.Loop.Until()
	if !ok {
		return "unknown"
	}
	return FormatUntil(d)
}

// FormatUntil renders d as "H hours M minutes S seconds". Negative values
// render as zero.
func FormatUntil(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%d hours %d minutes %d seconds", secs/3600, secs%3600/60, secs%60)
}

func (r *Runner) cleanupOnStop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.done != nil {
		close(r.done)
		r.done = nil
	}
}

// Shutdown stops the poll loop, waits for Start to return and then runs
// ShutdownFunc, so the last lifecycle lines are logged before cleanup.
// Returns ErrNotRunning if the daemon is not running.
// Returns ErrShutdownTimeout if the loop or the shutdown function exceeds the
// configured timeout.
func (r *Runner) Shutdown() error {
	done, err := r.stop()
	if err != nil {
		return err
	}
	if err := r.wait(done); err != nil {
		return err
	}
	return r.executeShutdownFunc()
}

// stop cancels the loop and returns the channel closed when Start returns.
func (r *Runner) stop() (<-chan struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return nil, ErrNotRunning
	}
	r.cancel()
	return r.done, nil
}

func (r *Runner) wait(done <-chan struct{}) error {
	if r.config.ShutdownTimeout <= 0 {
		<-done
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(r.config.ShutdownTimeout):
		return ErrShutdownTimeout
	}
}

func (r *Runner) executeShutdownFunc() error {
	if r.deps.ShutdownFunc == nil {
		return nil
	}
	if r.config.ShutdownTimeout > 0 {
		return executeWithTimeout(r.deps.ShutdownFunc, r.config.ShutdownTimeout)
	}
	return r.deps.ShutdownFunc()
}

func executeWithTimeout(fn func() error, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}
