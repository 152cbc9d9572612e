package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ochairo/waxseal/internal/domain/entities"
	"github.com/ochairo/waxseal/internal/domain/interfaces"
)

// countingTask fails a configured number of deliveries before succeeding
type countingTask struct {
	mu        sync.Mutex
	failures  int
	delivered map[string]int
}

func newCountingTask(failures int) *countingTask {
	return &countingTask{failures: failures, delivered: make(map[string]int)}
}

func (c *countingTask) SignVersion(_ context.Context, versionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivered[versionID]++
	if c.delivered[versionID] <= c.failures {
		return entities.NewSigningError("posting to add-on signing failed", errors.New("connection refused"))
	}
	return nil
}

func (c *countingTask) deliveries(versionID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delivered[versionID]
}

func newTestDispatcher(task Task, maxRedeliveries uint64) *Dispatcher {
	d := NewDispatcher(task, &interfaces.NoOpLogger{}, maxRedeliveries)
	d.newBackOff = func() backoff.BackOff {
		return backoff.NewConstantBackOff(time.Millisecond)
	}
	return d
}

// TestDispatcher_RedeliversUntilSuccess tests at-least-once redelivery
func TestDispatcher_RedeliversUntilSuccess(t *testing.T) {
	task := newCountingTask(2)
	d := newTestDispatcher(task, 5)

	d.Enqueue(context.Background(), "my-addon-1.0")
	d.Wait()

	if got := task.deliveries("my-addon-1.0"); got != 3 {
		t.Errorf("deliveries = %d, want 3 (two failures then success)", got)
	}
}

// TestDispatcher_ExhaustsRedeliveries tests the redelivery cap
func TestDispatcher_ExhaustsRedeliveries(t *testing.T) {
	task := newCountingTask(100)
	d := newTestDispatcher(task, 2)

	d.Enqueue(context.Background(), "my-addon-1.0")
	d.Wait()

	// Initial delivery plus two redeliveries
	if got := task.deliveries("my-addon-1.0"); got != 3 {
		t.Errorf("deliveries = %d, want 3", got)
	}
}

// TestDispatcher_IndependentTasks tests that versions are dispatched as
// independent units of work
func TestDispatcher_IndependentTasks(t *testing.T) {
	task := newCountingTask(0)
	d := newTestDispatcher(task, 1)

	d.Enqueue(context.Background(), "addon-a-1.0")
	d.Enqueue(context.Background(), "addon-b-2.0")
	d.Wait()

	if task.deliveries("addon-a-1.0") != 1 || task.deliveries("addon-b-2.0") != 1 {
		t.Error("each enqueued version should be delivered exactly once on success")
	}
}
