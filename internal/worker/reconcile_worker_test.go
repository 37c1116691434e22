package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingReconciler struct {
	calls atomic.Int32
	err   error
}

func (r *countingReconciler) Reconcile(context.Context, int) (int, error) {
	r.calls.Add(1)
	return 1, r.err
}

func TestReconcileWorkerTicks(t *testing.T) {
	rec := &countingReconciler{}
	w := NewReconcileWorker(rec, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return rec.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestReconcileWorkerDisabled(t *testing.T) {
	rec := &countingReconciler{}
	w := NewReconcileWorker(rec, 0)

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled worker must return immediately")
	}
	assert.Zero(t, rec.calls.Load())
}

func TestReconcileWorkerSurvivesErrors(t *testing.T) {
	rec := &countingReconciler{err: errors.New("db down")}
	w := NewReconcileWorker(rec, time.Hour)

	w.runOnce(context.Background())
	w.runOnce(context.Background())
	assert.Equal(t, int32(2), rec.calls.Load())
}
