package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kharcha/internal/amqp"
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/sheets"
)

// ExpenseLister reads the whole collection.
type ExpenseLister interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
}

// SyncWorker keeps a sheets.Mirror in step with the store. Every sync is a
// full re-read followed by a wholesale replace, so events only say "something
// changed" and a lost event is repaired by the next one or the periodic resync.
type SyncWorker struct {
	lister ExpenseLister
	mirror sheets.Mirror
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	listedAt time.Time
}

func NewSyncWorker(lister ExpenseLister, mirror sheets.Mirror, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	return &SyncWorker{
		lister: lister,
		mirror: mirror,
		logger: logger.WithComponent(log.ComponentWorker),
		now:    time.Now,
	}
}

// Sync mirrors the current collection. Concurrent calls run one at a time.
func (w *SyncWorker) Sync(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.syncLocked(ctx)
}

func (w *SyncWorker) syncLocked(ctx context.Context) error {
	started := w.now()
	expenses, err := w.lister.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}
	if err := w.mirror.ReplaceAll(ctx, expenses); err != nil {
		return fmt.Errorf("mirror expenses: %w", err)
	}
	w.listedAt = started

	w.logger.InfoContext(ctx, "Mirror synced",
		log.FieldOperation, log.OpSync,
		log.FieldCount, len(expenses),
		"total", core.Total(expenses).String(),
		log.FieldDuration, w.now().Sub(started).Milliseconds())
	return nil
}

// HandleEvent is the amqp.Handler for change events. An event older than the
// last successful read is already reflected in the mirror and is skipped.
// A failed sync is returned so the message is requeued.
func (w *SyncWorker) HandleEvent(ctx context.Context, evt *amqp.ExpenseEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.logger.InfoContext(ctx, "Processing expense event",
		log.FieldEventType, string(evt.Type),
		log.FieldExpenseID, evt.ID)

	if !w.listedAt.IsZero() && evt.Timestamp.Before(w.listedAt) {
		w.logger.DebugContext(ctx, "Event already mirrored", log.FieldExpenseID, evt.ID)
		return nil
	}
	return w.syncLocked(ctx)
}

// RunPeriodic resyncs every interval until ctx is done. Failures are logged
// and retried on the next tick.
func (w *SyncWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.InfoContext(ctx, "Periodic resync started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Periodic resync stopped")
			return nil
		case <-ticker.C:
			if err := w.Sync(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Periodic resync failed", log.FieldError, err)
			}
		}
	}
}

// Handler adapts the worker to the AMQP consumer.
func (w *SyncWorker) Handler() amqp.Handler {
	return w.HandleEvent
}
