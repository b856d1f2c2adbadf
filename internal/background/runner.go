// Package background provides a bounded in-process executor for
// fire-and-forget work that must not run on a request's path.
package background

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// ErrShutdownTimeout is returned by Shutdown when queued tasks did not drain in time.
var ErrShutdownTimeout = errors.New("background: shutdown timed out")

// Config holds Runner configuration.
type Config struct {
	// Workers is the number of goroutines draining the queue.
	Workers int
	// QueueSize bounds the number of pending tasks. Submit drops tasks beyond it.
	QueueSize int
	// MaxAttempts is the number of times a failing task is tried.
	MaxAttempts int
	// Backoff is multiplied by the attempt number between retries.
	Backoff time.Duration
	// TaskTimeout bounds a single attempt.
	TaskTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		QueueSize:   256,
		MaxAttempts: 3,
		Backoff:     200 * time.Millisecond,
		TaskTimeout: 30 * time.Second,
	}
}

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Runner executes submitted tasks on a fixed pool of workers.
type Runner struct {
	cfg    Config
	logger *slog.Logger
	queue  chan task

	mu     sync.RWMutex
	closed bool

	wg       sync.WaitGroup
	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a Runner. Call Start before submitting work.
func New(cfg Config, logger *slog.Logger) *Runner {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = def.TaskTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		queue:  make(chan task, cfg.QueueSize),
		stop:   make(chan struct{}),
	}
}

// Start launches the worker goroutines.
func (r *Runner) Start() {
	for i := 0; i < r.cfg.Workers; i++ {
		r.wg.Add(1)
		go r.work()
	}
}

// Submit enqueues fn without blocking. It returns false when the queue is full
// or the runner is shutting down; the task is dropped in that case.
func (r *Runner) Submit(name string, fn func(ctx context.Context) error) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.drop(name, "runner closed")
		return false
	}

	select {
	case r.queue <- task{name: name, fn: fn}:
		return true
	default:
		r.drop(name, "queue full")
		return false
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish.
// If ctx expires first, in-flight retries are abandoned.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.stopOnce.Do(func() { close(r.stop) })
		return ErrShutdownTimeout
	}
}

func (r *Runner) work() {
	defer r.wg.Done()
	for t := range r.queue {
		r.run(t)
	}
}

func (r *Runner) run(t task) {
	var err error
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		err = r.attempt(t)
		if err == nil {
			metrics.BackgroundTasksTotal.WithLabelValues(t.name, metrics.ResultSuccess).Inc()
			return
		}

		r.logger.Warn("background task attempt failed",
			"task", t.name,
			"attempt", attempt,
			"error", err,
		)

		if attempt == r.cfg.MaxAttempts {
			break
		}
		select {
		case <-time.After(r.cfg.Backoff * time.Duration(attempt)):
		case <-r.stop:
			r.logger.Error("background task abandoned on shutdown", "task", t.name)
			metrics.BackgroundTasksTotal.WithLabelValues(t.name, metrics.ResultError).Inc()
			return
		}
	}

	metrics.BackgroundTasksTotal.WithLabelValues(t.name, metrics.ResultError).Inc()
	r.logger.Error("background task failed",
		"task", t.name,
		"attempts", r.cfg.MaxAttempts,
		"error", err,
	)
}

// attempt runs fn on a fresh context so that it outlives the submitting request.
func (r *Runner) attempt(t task) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.TaskTimeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("background task panicked", "task", t.name, "panic", p)
			err = errors.New("background: task panicked")
		}
	}()

	return t.fn(ctx)
}

func (r *Runner) drop(name, reason string) {
	metrics.BackgroundTasksTotal.WithLabelValues(name, metrics.ResultDropped).Inc()
	r.logger.Error("background task dropped",
		"task", name,
		"reason", reason,
	)
}
