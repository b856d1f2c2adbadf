package saga

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(name string, err error) Func {
	return func(ctx context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
		return err
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// inlineSubmitter runs submitted work immediately and records acceptance order.
type inlineSubmitter struct {
	rec    *recorder
	reject bool
}

func (s *inlineSubmitter) Submit(name string, fn func(ctx context.Context) error) bool {
	if s.reject {
		return false
	}
	s.rec.record("submit:"+name, nil)(context.Background())
	_ = fn(context.Background())
	return true
}

func TestSaga_RunsStepsInOrder(t *testing.T) {
	rec := &recorder{}
	sub := &inlineSubmitter{rec: rec}

	err := New("test", nil).
		WithSubmitter(sub).
		Step("a", rec.record("a", nil), rec.record("undo-a", nil)).
		Step("b", rec.record("b", nil), nil).
		AfterCommit("after", rec.record("after", nil)).
		Defer("later", rec.record("later", nil)).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "after", "submit:test.later", "later"}, rec.snapshot())
}

func TestSaga_CompensatesCompletedStepsInReverse(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("boom")

	err := New("test", nil).
		Step("a", rec.record("a", nil), rec.record("undo-a", nil)).
		Step("b", rec.record("b", nil), rec.record("undo-b", nil)).
		Step("c", rec.record("c", boom), rec.record("undo-c", nil)).
		AfterCommit("after", rec.record("after", nil)).
		Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "c")
	assert.Equal(t, []string{"a", "b", "c", "undo-b", "undo-a"}, rec.snapshot())
}

func TestSaga_CompensationFailureKeepsOriginalError(t *testing.T) {
	rec := &recorder{}
	original := errors.New("create failed")
	undoErr := errors.New("delete failed")

	err := New("test", nil).
		Step("a", rec.record("a", nil), rec.record("undo-a", nil)).
		Step("b", rec.record("b", nil), rec.record("undo-b", undoErr)).
		Step("c", rec.record("c", original), nil).
		Run(context.Background())

	assert.ErrorIs(t, err, original)
	assert.NotErrorIs(t, err, undoErr)
	assert.Equal(t, []string{"a", "b", "c", "undo-b", "undo-a"}, rec.snapshot())
}

func TestSaga_AfterCommitFailureIsNotEscalated(t *testing.T) {
	rec := &recorder{}

	err := New("test", nil).
		Step("a", rec.record("a", nil), rec.record("undo-a", nil)).
		AfterCommit("first", rec.record("first", errors.New("leak"))).
		AfterCommit("second", rec.record("second", nil)).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "first", "second"}, rec.snapshot())
}

func TestSaga_DeferredNotSubmittedOnFailure(t *testing.T) {
	rec := &recorder{}
	sub := &inlineSubmitter{rec: rec}

	err := New("test", nil).
		WithSubmitter(sub).
		Step("a", rec.record("a", errors.New("nope")), nil).
		Defer("later", rec.record("later", nil)).
		Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"a"}, rec.snapshot())
}

func TestSaga_RejectedDeferredDoesNotFailCommittedSaga(t *testing.T) {
	rec := &recorder{}

	err := New("test", nil).
		WithSubmitter(&inlineSubmitter{rec: rec, reject: true}).
		Step("a", rec.record("a", nil), nil).
		Defer("later", rec.record("later", nil)).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, rec.snapshot())
}

func TestSaga_DeferredRequiresSubmitter(t *testing.T) {
	rec := &recorder{}

	err := New("test", nil).
		Step("a", rec.record("a", nil), nil).
		Defer("later", rec.record("later", nil)).
		Run(context.Background())

	assert.ErrorIs(t, err, ErrNoSubmitter)
	assert.Empty(t, rec.snapshot())
}

func TestSaga_CompensationIgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var compensateCtxErr error

	err := New("test", nil).
		Step("a", func(ctx context.Context) error { return nil }, func(ctx context.Context) error {
			compensateCtxErr = ctx.Err()
			return nil
		}).
		Step("b", func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		}, nil).
		Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, compensateCtxErr)
}
