package services

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"shop-service/internal/cache"
	"shop-service/internal/domain"
	"shop-service/internal/infra/payment"
	"shop-service/internal/infra/rabbitmq"
	"shop-service/internal/logging"
	"shop-service/internal/metrics"
	"shop-service/internal/notify"
	"shop-service/internal/repository"

	"github.com/shopspring/decimal"
)

const gatewayTimeout = 10 * time.Second

var minorUnitFactor = decimal.NewFromInt(100)

type OrderService struct {
	repo      repository.OrderRepository
	gateway   payment.Gateway             // nil: offline mode, orders stay pending
	currency  string
	notifier  notify.Notifier
	publisher rabbitmq.PublisherInterface // nil: events skipped
	lock      cache.CheckoutLock          // nil: no per-user serialization
	log       *slog.Logger
}

func NewOrderService(repo repository.OrderRepository, gateway payment.Gateway, currency string, notifier notify.Notifier, publisher rabbitmq.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      repo,
		gateway:   gateway,
		currency:  currency,
		notifier:  notifier,
		publisher: publisher,
		log:       logging.New("orders"),
	}
}

func (s *OrderService) SetCheckoutLock(lock cache.CheckoutLock) {
	s.lock = lock
}

// CreateOrder converts the caller's cart into an order, attempts a payment
// intent, and fans out best-effort notifications. The order's fate is decided
// entirely by the cart conversion and the gateway call; notification and event
// failures are absorbed.
func (s *OrderService) CreateOrder(ctx context.Context, user domain.Identity, shippingAddress string) (*domain.Order, error) {
	addr := strings.TrimSpace(shippingAddress)
	if addr == "" {
		return nil, domain.ErrBlankShippingAddress
	}

	if s.lock != nil {
		ok, err := s.lock.TryLock(ctx, user.UserID)
		switch {
		case err != nil:
			// The lock is advisory; a redis outage must not block checkout.
			s.log.Warn("checkout lock unavailable", "user_id", user.UserID, "error", err)
		case !ok:
			return nil, domain.ErrCheckoutInProgress
		default:
			defer func() {
				if err := s.lock.Unlock(context.Background(), user.UserID); err != nil {
					s.log.Warn("checkout unlock failed", "user_id", user.UserID, "error", err)
				}
			}()
		}
	}

	order, err := s.repo.CreateFromCart(ctx, user.UserID, addr)
	if err != nil {
		return nil, err
	}
	s.log.Info("order created", "order_id", order.ID, "user_id", user.UserID,
		"total", order.TotalAmount.StringFixed(2), "items", order.ItemsCount())

	if s.gateway == nil {
		s.log.Info("payment gateway not configured, order left pending", "order_id", order.ID)
		s.publishEvent(ctx, "order.created", order)
		return order, nil
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	intent, err := s.gateway.CreateIntent(gctx, minorUnits(order.TotalAmount), s.currency, map[string]string{
		"order_id": strconv.FormatUint(order.ID, 10),
	})
	if err != nil {
		if payment.IsAuthError(err) {
			// Configuration problem, not a payment failure: keep the order
			// pending so dev environments without valid keys still work.
			s.log.Error("gateway authentication failed, order left pending",
				"order_id", order.ID, "error", err)
			metrics.RecordAbsorbedFault("gateway_auth")
			s.publishEvent(ctx, "order.created", order)
			return order, nil
		}
		if uerr := s.repo.UpdateStatus(ctx, order, domain.StatusCancelled); uerr != nil {
			s.log.Error("failed to cancel order after gateway fault",
				"order_id", order.ID, "error", uerr)
		}
		// Consumers only ever hear about this order in its final state.
		s.publishEvent(ctx, "order.cancelled", order)
		return nil, &domain.PaymentError{OrderID: order.ID, Err: err}
	}

	if err := s.repo.SetPaymentReference(ctx, order, intent.ID); err != nil {
		return nil, err
	}
	order.Status = domain.StatusPending

	s.publishEvent(ctx, "order.created", order)
	s.notifier.OrderCreated(ctx, order, user)

	return order, nil
}

// ConfirmPayment re-queries the gateway for the order's intent and moves the
// order to processing when payment succeeded. Confirming an already-processing
// order is a no-op success; it does not re-notify.
func (s *OrderService) ConfirmPayment(ctx context.Context, user domain.Identity, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, user.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	if order.Status == domain.StatusProcessing {
		return order, nil
	}

	if s.gateway == nil || order.PaymentIntentID == "" {
		return nil, domain.ErrPaymentNotCompleted
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	intent, err := s.gateway.RetrieveIntent(gctx, order.PaymentIntentID)
	if err != nil {
		return nil, &domain.PaymentError{OrderID: order.ID, Err: err}
	}
	if intent.Status != payment.StatusSucceeded {
		return nil, domain.ErrPaymentNotCompleted
	}

	if err := s.repo.UpdateStatus(ctx, order, domain.StatusProcessing); err != nil {
		return nil, err
	}
	s.log.Info("payment confirmed", "order_id", order.ID, "intent_id", intent.ID)

	s.notifier.PaymentConfirmed(ctx, order, user)
	s.publishEvent(ctx, "order.payment_confirmed", order)

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, user domain.Identity, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, user.UserID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, user domain.Identity) ([]domain.Order, error) {
	return s.repo.FindByUser(ctx, user.UserID)
}

// ClientSecret fetches the intent's client secret for the create response.
// Failures degrade to an empty secret; the order itself is already committed.
func (s *OrderService) ClientSecret(ctx context.Context, order *domain.Order) string {
	if s.gateway == nil || order.PaymentIntentID == "" {
		return ""
	}

	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	intent, err := s.gateway.RetrieveIntent(gctx, order.PaymentIntentID)
	if err != nil {
		s.log.Error("failed to retrieve client secret", "order_id", order.ID, "error", err)
		return ""
	}
	return intent.ClientSecret
}

func (s *OrderService) publishEvent(ctx context.Context, pattern string, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, pattern, map[string]any{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount.StringFixed(2),
		"status":       order.Status,
	})
	if err != nil {
		s.log.Error("failed to publish order event", "pattern", pattern,
			"order_id", order.ID, "error", err)
		metrics.RecordAbsorbedFault("events")
	}
}

func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitFactor).Round(0).IntPart()
}
