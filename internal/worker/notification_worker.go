package worker

import (
	"context"
	"fmt"
	"log/slog"

	"spendwise/internal/amqp"
	"spendwise/internal/core"
)

// NotificationStore persists payment due notifications.
type NotificationStore interface {
	CreateNotification(ctx context.Context, cardID, message string, dueDate core.Date) error
}

// NotificationWorker turns payment due messages into stored notifications
// the API can serve.
type NotificationWorker struct {
	store NotificationStore
}

func NewNotificationWorker(store NotificationStore) *NotificationWorker {
	return &NotificationWorker{store: store}
}

// HandlePaymentDue processes a single payment due message from AMQP.
func (w *NotificationWorker) HandlePaymentDue(ctx context.Context, msg *amqp.PaymentDueMessage) error {
	dueDate, err := core.ParseDate(msg.DueDate)
	if err != nil {
		return fmt.Errorf("parse due date %q: %w", msg.DueDate, err)
	}

	message := fmt.Sprintf("Payment for %s (%s) is due on %s", msg.CardName, msg.BankName, msg.DueDate)
	if err := w.store.CreateNotification(ctx, msg.CardID, message, dueDate); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	slog.InfoContext(ctx, "Payment due notification stored",
		"card_id", msg.CardID,
		"due_date", msg.DueDate)

	return nil
}
