package notify

import (
	"context"
	"log/slog"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/logging"
	"shop-service/internal/metrics"
)

const sendTimeout = 5 * time.Second

// Notifier fans an order event out to the side channels. Every failure is
// logged and counted, never returned: notification outcomes must not change
// the result of the checkout that triggered them.
type Notifier interface {
	OrderCreated(ctx context.Context, order *domain.Order, customer domain.Identity)
	PaymentConfirmed(ctx context.Context, order *domain.Order, customer domain.Identity)
}

type notifier struct {
	chat   ChatTransport // nil when Slack is unconfigured
	mailer Mailer        // nil when SMTP is unconfigured
	log    *slog.Logger
}

func NewNotifier(chat ChatTransport, mailer Mailer) Notifier {
	return &notifier{
		chat:   chat,
		mailer: mailer,
		log:    logging.New("notify"),
	}
}

func (n *notifier) OrderCreated(ctx context.Context, order *domain.Order, customer domain.Identity) {
	n.sendChat(ctx, BuildOrderCreated(order, customer), order.ID)

	if n.mailer == nil || customer.Email == "" {
		return
	}
	mctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := n.mailer.SendOrderConfirmation(mctx, order, customer); err != nil {
		n.log.Error("order confirmation email failed", "order_id", order.ID, "error", err)
		metrics.RecordAbsorbedFault("email")
		return
	}
	n.log.Info("order confirmation email sent", "order_id", order.ID)
}

func (n *notifier) PaymentConfirmed(ctx context.Context, order *domain.Order, customer domain.Identity) {
	n.sendChat(ctx, BuildPaymentConfirmed(order, customer), order.ID)
}

func (n *notifier) sendChat(ctx context.Context, msg Message, orderID uint64) {
	if n.chat == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := n.chat.Send(ctx, msg); err != nil {
		n.log.Error("chat notification failed", "order_id", orderID, "error", err)
		metrics.RecordAbsorbedFault("chat")
		return
	}
	n.log.Info("chat notification sent", "order_id", orderID)
}
