// Package saga runs a multi-step protocol with compensating actions.
//
// Steps run strictly in declaration order. When a step fails, the compensations
// of every step that already succeeded run in reverse order and the step's error
// is returned; compensation failures are logged and never replace it. Once all
// steps succeed the saga is committed: after-commit actions run synchronously on
// a best-effort basis, then deferred actions are handed to a Submitter so they
// run off the caller's path.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
)

// ErrNoSubmitter is returned by Run when deferred actions are declared without a Submitter.
var ErrNoSubmitter = errors.New("saga: deferred actions require a submitter")

// Func is a unit of work within a saga.
type Func func(ctx context.Context) error

// Submitter accepts fire-and-forget work. Submit must not block.
type Submitter interface {
	Submit(name string, fn func(ctx context.Context) error) bool
}

type step struct {
	name       string
	do         Func
	compensate Func
}

type action struct {
	name string
	fn   Func
}

// Saga is a single-use sequence of steps. It is not safe for concurrent use.
type Saga struct {
	name      string
	logger    *slog.Logger
	submitter Submitter

	steps       []step
	afterCommit []action
	deferred    []action
}

// New creates an empty saga. A nil logger uses slog.Default.
func New(name string, logger *slog.Logger) *Saga {
	if logger == nil {
		logger = slog.Default()
	}
	return &Saga{name: name, logger: logger}
}

// WithSubmitter sets the executor for deferred actions.
func (s *Saga) WithSubmitter(sub Submitter) *Saga {
	s.submitter = sub
	return s
}

// Step appends a step. compensate may be nil when the step has nothing to undo.
func (s *Saga) Step(name string, do, compensate Func) *Saga {
	s.steps = append(s.steps, step{name: name, do: do, compensate: compensate})
	return s
}

// AfterCommit appends a best-effort action run synchronously after every step succeeded.
func (s *Saga) AfterCommit(name string, fn Func) *Saga {
	s.afterCommit = append(s.afterCommit, action{name: name, fn: fn})
	return s
}

// Defer appends an action submitted asynchronously after the after-commit actions.
func (s *Saga) Defer(name string, fn Func) *Saga {
	s.deferred = append(s.deferred, action{name: name, fn: fn})
	return s
}

// Run executes the saga. Compensations and after-commit actions run on a context
// detached from ctx's cancellation: once started, a protocol runs to completion
// or to its compensation.
func (s *Saga) Run(ctx context.Context) error {
	if len(s.deferred) > 0 && s.submitter == nil {
		return ErrNoSubmitter
	}

	for i, st := range s.steps {
		if err := st.do(ctx); err != nil {
			s.compensate(context.WithoutCancel(ctx), s.steps[:i])
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}

	detached := context.WithoutCancel(ctx)
	for _, a := range s.afterCommit {
		if err := a.fn(detached); err != nil {
			metrics.SagaActionsTotal.WithLabelValues(s.name, a.name, metrics.ResultError).Inc()
			s.logger.Warn("after-commit action failed",
				"saga", s.name,
				"action", a.name,
				"error", err,
			)
			continue
		}
		metrics.SagaActionsTotal.WithLabelValues(s.name, a.name, metrics.ResultSuccess).Inc()
	}

	for _, a := range s.deferred {
		if !s.submitter.Submit(s.name+"."+a.name, a.fn) {
			metrics.SagaActionsTotal.WithLabelValues(s.name, a.name, metrics.ResultDropped).Inc()
			s.logger.Error("deferred action was not accepted",
				"saga", s.name,
				"action", a.name,
			)
		}
	}

	return nil
}

// compensate undoes completed steps in reverse order.
func (s *Saga) compensate(ctx context.Context, completed []step) {
	for i := len(completed) - 1; i >= 0; i-- {
		st := completed[i]
		if st.compensate == nil {
			continue
		}
		if err := st.compensate(ctx); err != nil {
			metrics.SagaCompensationsTotal.WithLabelValues(s.name, st.name, metrics.ResultError).Inc()
			s.logger.Error("compensation failed",
				"saga", s.name,
				"step", st.name,
				"error", err,
			)
			continue
		}
		metrics.SagaCompensationsTotal.WithLabelValues(s.name, st.name, metrics.ResultSuccess).Inc()
	}
}
