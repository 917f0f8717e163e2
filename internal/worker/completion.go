package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// OrderCompleter exposes the subset of application functionality required by
// the worker.
type OrderCompleter interface {
	PendingOrderIDs(ctx context.Context, limit int) ([]uuid.UUID, error)
	CompleteOrders(ctx context.Context, ids []uuid.UUID, completedAt time.Time) (int64, error)
}

const stopPollPeriod = 100 * time.Millisecond

// CompletionWorker advances pending orders to completed in bounded batches on
// a fixed schedule. Ticks never overlap within a process; each tick drains the
// whole pending backlog before going idle.
type CompletionWorker struct {
	facade    OrderCompleter
	interval  time.Duration
	batchSize int
	stopGrace time.Duration
	logger    *slog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	inFlight atomic.Bool
}

// NewCompletionWorker constructs the completion worker.
func NewCompletionWorker(facade OrderCompleter, interval time.Duration, batchSize int, stopGrace time.Duration, logger *slog.Logger) *CompletionWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if stopGrace <= 0 {
		stopGrace = 10 * time.Second
	}
	return &CompletionWorker{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		stopGrace: stopGrace,
		logger:    logger,
	}
}

// Start launches the recurring completion schedule: one tick immediately,
// then one per interval. Calling Start on a running worker is a no-op.
func (w *CompletionWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(ctx, loopCtx)

	w.logger.Info("completion worker started",
		slog.Duration("interval", w.interval),
		slog.Int("batch_size", w.batchSize),
	)
}

// Stop cancels the schedule immediately, then waits for an in-flight tick up
// to the stop grace ceiling. If the tick is still busy at the deadline, Stop
// returns anyway rather than blocking shutdown.
func (w *CompletionWorker) Stop() {
	w.mu.Lock()
	if w.cancel == nil {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.cancel = nil
	done := w.done
	w.mu.Unlock()

	<-done

	deadline := time.Now().Add(w.stopGrace)
	for w.inFlight.Load() {
		if time.Now().After(deadline) {
			w.logger.Warn("completion worker still busy during shutdown; exiting anyway")
			return
		}
		time.Sleep(stopPollPeriod)
	}
	w.logger.Info("completion worker stopped")
}

// loop schedules ticks. tickCtx outlives loopCtx so that Stop cancels
// scheduling without aborting an in-flight tick mid-batch.
func (w *CompletionWorker) loop(tickCtx, loopCtx context.Context) {
	defer close(w.done)

	w.spawnTick(tickCtx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			return
		case <-ticker.C:
			w.spawnTick(tickCtx)
		}
	}
}

// spawnTick runs one tick unless the previous one is still executing, in
// which case this tick is skipped entirely.
func (w *CompletionWorker) spawnTick(ctx context.Context) {
	if !w.inFlight.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer w.inFlight.Store(false)
		if err := w.drainPending(ctx); err != nil {
			w.logger.Error("completion tick failed", slog.String("error", err.Error()))
		}
	}()
}

// drainPending repeatedly completes the oldest pending orders in bounded
// batches until the backlog is empty. Every order in a batch receives the
// same completion timestamp.
func (w *CompletionWorker) drainPending(ctx context.Context) error {
	for {
		ids, err := w.facade.PendingOrderIDs(ctx, w.batchSize)
		if err != nil {
			return fmt.Errorf("fetch pending orders: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		now := time.Now().UTC()
		completed, err := w.facade.CompleteOrders(ctx, ids, now)
		if err != nil {
			return fmt.Errorf("complete orders: %w", err)
		}

		w.logger.Info("completed pending orders",
			slog.Int("fetched", len(ids)),
			slog.Int64("completed", completed),
		)
	}
}
