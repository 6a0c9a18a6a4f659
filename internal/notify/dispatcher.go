package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"NYCU-SDC/photo-survey-backend/internal/survey"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultWorkers   = 2
	DefaultQueueSize = 64
	DefaultTimeout   = 10 * time.Second
)

type Notifier interface {
	Notify(ctx context.Context, summary survey.Summary) error
}

// Dispatcher relays submission summaries to a Notifier from a fixed pool of
// workers. Callers never wait on the notifier and never see its errors.
type Dispatcher struct {
	logger   *zap.Logger
	tracer   trace.Tracer
	notifier Notifier
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan survey.Summary
	wg     sync.WaitGroup
}

// NewDispatcher starts the workers right away. Non-positive arguments fall
// back to the package defaults.
func NewDispatcher(logger *zap.Logger, notifier Notifier, workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	d := &Dispatcher{
		logger:   logger,
		tracer:   otel.Tracer("notify/dispatcher"),
		notifier: notifier,
		timeout:  timeout,
		queue:    make(chan survey.Summary, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}

	return d
}

// Dispatch queues a summary. It returns false when the queue is full or the
// dispatcher is shutting down; the summary is dropped in that case.
func (d *Dispatcher) Dispatch(summary survey.Summary) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Dispatcher is shut down, dropping notification", zap.String("variant", summary.Variant.String()))
		return false
	}

	select {
	case d.queue <- summary:
		return true
	default:
		d.logger.Warn("Notification queue is full, dropping notification", zap.String("variant", summary.Variant.String()), zap.Int("capacity", cap(d.queue)))
		return false
	}
}

// Shutdown stops accepting summaries and waits for the queued ones until ctx
// expires.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notification queue not drained: %w", ctx.Err())
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()

	logger := d.logger.With(zap.Int("worker", id))
	for summary := range d.queue {
		d.deliver(logger, summary)
	}
}

func (d *Dispatcher) deliver(logger *zap.Logger, summary survey.Summary) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	traceCtx, span := d.tracer.Start(ctx, "Deliver")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Notifier panicked", zap.Any("panic", r), zap.String("variant", summary.Variant.String()))
		}
	}()

	err := d.notifier.Notify(traceCtx, summary)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to send notification", zap.String("variant", summary.Variant.String()), zap.Error(err))
		return
	}

	logger.Debug("Notification sent", zap.String("variant", summary.Variant.String()))
}
