// Package dispatch runs version-signing tasks asynchronously with
// at-least-once delivery semantics.
package dispatch

import (
	"context"
	"sync"

	"github.com/cenkalti/backoff/v4"

	"github.com/ochairo/waxseal/internal/domain/interfaces"
)

// Task is the unit of work the dispatcher delivers: signing every
// artifact of one version
type Task interface {
	SignVersion(ctx context.Context, versionID string) error
}

// Dispatcher hands version-signing work to background goroutines. A
// failed delivery is redelivered with capped exponential backoff up to
// MaxRedeliveries times; the pipeline itself never retries, so this is
// the only retry layer.
type Dispatcher struct {
	task   Task
	logger interfaces.Logger
	wg     sync.WaitGroup

	maxRedeliveries uint64
	newBackOff      func() backoff.BackOff
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(task Task, logger interfaces.Logger, maxRedeliveries uint64) *Dispatcher {
	return &Dispatcher{
		task:            task,
		logger:          logger,
		maxRedeliveries: maxRedeliveries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// Enqueue schedules one version-signing task. It returns immediately;
// the task runs in the background and is redelivered on failure.
func (d *Dispatcher) Enqueue(ctx context.Context, versionID string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		policy := backoff.WithContext(
			backoff.WithMaxRetries(d.newBackOff(), d.maxRedeliveries), ctx)

		err := backoff.Retry(func() error {
			return d.task.SignVersion(ctx, versionID)
		}, policy)
		if err != nil {
			d.logger.Error("version signing task exhausted redeliveries",
				interfaces.F("version", versionID),
				interfaces.F("error", err))
		}
	}()
}

// Wait blocks until every enqueued task has finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
