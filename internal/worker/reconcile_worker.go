package worker

import (
	"context"
	"log/slog"
	"time"
)

type reconciler interface {
	Reconcile(ctx context.Context, limit int) (int, error)
}

// ReconcileWorker periodically re-dispatches orders left Pendente without a
// remote fabrication id.
type ReconcileWorker struct {
	orders    reconciler
	interval  time.Duration
	batchSize int
}

func NewReconcileWorker(orders reconciler, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		orders:    orders,
		interval:  interval,
		batchSize: 20,
	}
}

// Start blocks until ctx is done. A non-positive interval disables the worker.
func (w *ReconcileWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		slog.Info("reconcile worker disabled")
		return
	}

	slog.Info("starting reconcile worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("reconcile worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReconcileWorker) runOnce(ctx context.Context) {
	linked, err := w.orders.Reconcile(ctx, w.batchSize)
	if err != nil {
		slog.Error("reconcile batch failed", "error", err)
		return
	}
	if linked > 0 {
		slog.Info("reconciled orders", "linked", linked)
	}
}
