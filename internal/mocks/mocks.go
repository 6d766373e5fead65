package mocks

import (
	"context"

	"shop-service/internal/domain"
	"shop-service/internal/infra/payment"
	"shop-service/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateFromCart(ctx context.Context, userID uint64, shippingAddress string) (*domain.Order, error) {
	args := m.Called(ctx, userID, shippingAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUser(ctx context.Context, id, userID uint64) (*domain.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *domain.Order, status domain.OrderStatus) error {
	args := m.Called(ctx, order, status)
	if args.Error(0) == nil {
		order.Status = status
	}
	return args.Error(0)
}

func (m *MockOrderRepository) SetPaymentReference(ctx context.Context, order *domain.Order, ref string) error {
	args := m.Called(ctx, order, ref)
	if args.Error(0) == nil {
		order.PaymentIntentID = ref
	}
	return args.Error(0)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID uint64) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) Upsert(ctx context.Context, userID, productID uint64, quantity uint32) (*domain.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, userID, itemID uint64, quantity uint32) (*domain.CartItem, error) {
	args := m.Called(ctx, userID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, itemID uint64) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, userID, id uint64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByIDForUser(ctx context.Context, id, userID uint64) (*domain.Review, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userID uint64) ([]domain.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	args := m.Called(ctx, amountMinorUnits, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

func (m *MockGateway) RetrieveIntent(ctx context.Context, id string) (*payment.Intent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrderCreated(ctx context.Context, order *domain.Order, customer domain.Identity) {
	m.Called(ctx, order, customer)
}

func (m *MockNotifier) PaymentConfirmed(ctx context.Context, order *domain.Order, customer domain.Identity) {
	m.Called(ctx, order, customer)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

type MockCheckoutLock struct {
	mock.Mock
}

func (m *MockCheckoutLock) TryLock(ctx context.Context, userID uint64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCheckoutLock) Unlock(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockChatTransport struct {
	mock.Mock
}

func (m *MockChatTransport) Send(ctx context.Context, msg notify.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOrderConfirmation(ctx context.Context, order *domain.Order, customer domain.Identity) error {
	args := m.Called(ctx, order, customer)
	return args.Error(0)
}
