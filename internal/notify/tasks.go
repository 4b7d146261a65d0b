// Package notify delivers transactional emails for order lifecycle events.
//
// Events emitted by the API process are turned into asynq tasks so delivery
// retries and failures never block or fail an order commit. The worker binary
// consumes the tasks and renders the actual messages.
package notify

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmation is enqueued after an order is committed.
	TaskOrderConfirmation = "email:order_confirmation"
	// TaskOrderCanceled is enqueued when a customer cancels an order.
	TaskOrderCanceled = "email:order_canceled"
)

// OrderEmailPayload carries everything the worker needs to render an order
// email without going back to the database.
type OrderEmailPayload struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Email       string `json:"email"`
	GrandTotal  string `json:"grandTotal,omitempty"`
}

// NewOrderConfirmationTask builds the confirmation task. The task ID is
// derived from the order so a retried commit cannot enqueue a duplicate.
func NewOrderConfirmationTask(p OrderEmailPayload) (*asynq.Task, error) {
	return newOrderTask(TaskOrderConfirmation, p)
}

// NewOrderCanceledTask builds the cancellation notice task.
func NewOrderCanceledTask(p OrderEmailPayload) (*asynq.Task, error) {
	return newOrderTask(TaskOrderCanceled, p)
}

func newOrderTask(kind string, p OrderEmailPayload) (*asynq.Task, error) {
	if p.OrderID == "" {
		return nil, fmt.Errorf("notify: order id is required for %s", kind)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(kind, raw, asynq.TaskID(fmt.Sprintf("%s:%s", kind, p.OrderID))), nil
}
