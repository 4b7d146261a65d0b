package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	dbgen "github.com/bazaarlabs/backend-bazaar/internal/db/gen"
	"github.com/bazaarlabs/backend-bazaar/internal/events"
)

// TaskEnqueuer is the minimal asynq client surface the notifier needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer translates emitted domain events into email delivery tasks.
// It implements events.Notifier.
type Enqueuer struct {
	Client   TaskEnqueuer
	MaxRetry int
	Queue    string
}

// Notify enqueues an email task for topics that warrant one. Events with no
// recipient address are skipped silently; guest checkouts have none.
func (e Enqueuer) Notify(ctx context.Context, event dbgen.DomainEvent) error {
	if e.Client == nil {
		return nil
	}

	var build func(OrderEmailPayload) (*asynq.Task, error)
	switch event.Topic {
	case events.TopicOrderCreated:
		build = NewOrderConfirmationTask
	case events.TopicOrderCanceled:
		build = NewOrderCanceledTask
	default:
		return nil
	}

	var payload OrderEmailPayload
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return fmt.Errorf("notify: decode %s payload: %w", event.Topic, err)
		}
	}
	if payload.Email == "" {
		return nil
	}

	task, err := build(payload)
	if err != nil {
		return err
	}
	opts := []asynq.Option{}
	if e.Queue != "" {
		opts = append(opts, asynq.Queue(e.Queue))
	}
	if e.MaxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(e.MaxRetry))
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("notify: enqueue %s: %w", task.Type(), err)
	}
	return nil
}
