package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/bazaarlabs/backend-bazaar/internal/common"
)

// EmailWorker renders and sends order emails from queued tasks.
type EmailWorker struct {
	Mail common.EmailSender
	From string
	Log  zerolog.Logger
}

// Register attaches the worker's handlers to an asynq mux.
func (w *EmailWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskOrderConfirmation, w.HandleOrderConfirmation)
	mux.HandleFunc(TaskOrderCanceled, w.HandleOrderCanceled)
}

// HandleOrderConfirmation processes an order confirmation task.
func (w *EmailWorker) HandleOrderConfirmation(ctx context.Context, task *asynq.Task) error {
	return w.send(ctx, task, confirmationSubject, confirmationBody)
}

// HandleOrderCanceled processes a cancellation notice task.
func (w *EmailWorker) HandleOrderCanceled(ctx context.Context, task *asynq.Task) error {
	return w.send(ctx, task, canceledSubject, canceledBody)
}

func (w *EmailWorker) send(_ context.Context, task *asynq.Task, subject func(OrderEmailPayload) string, body func(OrderEmailPayload) string) error {
	if w.Mail == nil {
		return errors.New("notify: email sender not configured")
	}
	var payload OrderEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A payload that cannot decode will never decode; drop it instead
		// of burning retries.
		w.Log.Error().Err(err).Str("task", task.Type()).Msg("discarding malformed email task")
		return fmt.Errorf("notify: decode task payload: %w", asynq.SkipRetry)
	}
	if payload.Email == "" {
		return nil
	}
	if err := w.Mail.Send(payload.Email, subject(payload), body(payload)); err != nil {
		return fmt.Errorf("notify: send %s: %w", task.Type(), err)
	}
	w.Log.Info().
		Str("task", task.Type()).
		Str("orderNumber", payload.OrderNumber).
		Msg("order email sent")
	return nil
}

func confirmationSubject(p OrderEmailPayload) string {
	return fmt.Sprintf("Order %s confirmed", p.OrderNumber)
}

func confirmationBody(p OrderEmailPayload) string {
	body := fmt.Sprintf("<p>Thanks for your order!</p><p>Order number: <strong>%s</strong></p>", p.OrderNumber)
	if p.GrandTotal != "" {
		body += fmt.Sprintf("<p>Amount payable: ₹%s</p>", p.GrandTotal)
	}
	return body
}

func canceledSubject(p OrderEmailPayload) string {
	return fmt.Sprintf("Order %s canceled", p.OrderNumber)
}

func canceledBody(p OrderEmailPayload) string {
	return fmt.Sprintf("<p>Your order <strong>%s</strong> has been canceled.</p><p>Any payment made will be refunded to the original method.</p>", p.OrderNumber)
}
