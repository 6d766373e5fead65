package services

import (
	"context"
	"testing"

	"shop-service/internal/cache"
	"shop-service/internal/domain"
	"shop-service/internal/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testProduct(id uint64, price string) *domain.Product {
	return &domain.Product{
		ID:             id,
		Name:           "Test Product",
		Price:          decimal.RequireFromString(price),
		InventoryCount: 5,
	}
}

func newCartService(cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository) *CartService {
	return NewCartService(cartRepo, cache.NewProductCache(productRepo, nil))
}

func TestCartService_Add(t *testing.T) {
	user := testIdentity()

	t.Run("adds an existing product", func(t *testing.T) {
		cartRepo := new(mocks.MockCartRepository)
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(1, "10.00"), nil)
		cartRepo.On("Upsert", mock.Anything, user.UserID, uint64(1), uint32(2)).
			Return(&domain.CartItem{ID: 1, UserID: user.UserID, ProductID: 1, Quantity: 2, Product: testProduct(1, "10.00")}, nil)

		item, err := newCartService(cartRepo, productRepo).Add(context.Background(), user, 1, 2)
		assert.NoError(t, err)
		assert.Equal(t, uint32(2), item.Quantity)
		cartRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown products", func(t *testing.T) {
		cartRepo := new(mocks.MockCartRepository)
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)

		item, err := newCartService(cartRepo, productRepo).Add(context.Background(), user, 99, 1)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Nil(t, item)
		cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		cartRepo := new(mocks.MockCartRepository)
		productRepo := new(mocks.MockProductRepository)

		item, err := newCartService(cartRepo, productRepo).Add(context.Background(), user, 1, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		assert.Nil(t, item)
	})
}

func TestCartService_Totals(t *testing.T) {
	user := testIdentity()

	cartRepo := new(mocks.MockCartRepository)
	productRepo := new(mocks.MockProductRepository)
	cartRepo.On("ListByUser", mock.Anything, user.UserID).Return([]domain.CartItem{
		{ID: 1, UserID: user.UserID, ProductID: 1, Quantity: 2, Product: testProduct(1, "10.00")},
		{ID: 2, UserID: user.UserID, ProductID: 2, Quantity: 1, Product: testProduct(2, "5.00")},
	}, nil)

	totals, err := newCartService(cartRepo, productRepo).Totals(context.Background(), user)
	assert.NoError(t, err)
	assert.True(t, totals.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"expected 25.00, got %s", totals.TotalAmount)
	assert.Equal(t, uint32(3), totals.TotalItems)
	assert.Equal(t, 2, totals.ItemCount)
}

func TestCartService_Totals_EmptyCart(t *testing.T) {
	user := testIdentity()

	cartRepo := new(mocks.MockCartRepository)
	cartRepo.On("ListByUser", mock.Anything, user.UserID).Return([]domain.CartItem{}, nil)

	totals, err := newCartService(cartRepo, new(mocks.MockProductRepository)).Totals(context.Background(), user)
	assert.NoError(t, err)
	assert.True(t, totals.TotalAmount.IsZero())
	assert.Equal(t, uint32(0), totals.TotalItems)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	user := testIdentity()

	t.Run("updates the line", func(t *testing.T) {
		cartRepo := new(mocks.MockCartRepository)
		cartRepo.On("UpdateQuantity", mock.Anything, user.UserID, uint64(1), uint32(5)).
			Return(&domain.CartItem{ID: 1, UserID: user.UserID, ProductID: 1, Quantity: 5}, nil)

		item, err := newCartService(cartRepo, new(mocks.MockProductRepository)).
			UpdateQuantity(context.Background(), user, 1, 5)
		assert.NoError(t, err)
		assert.Equal(t, uint32(5), item.Quantity)
	})

	t.Run("missing line", func(t *testing.T) {
		cartRepo := new(mocks.MockCartRepository)
		cartRepo.On("UpdateQuantity", mock.Anything, user.UserID, uint64(9), uint32(5)).
			Return(nil, domain.ErrCartItemNotFound)

		item, err := newCartService(cartRepo, new(mocks.MockProductRepository)).
			UpdateQuantity(context.Background(), user, 9, 5)
		assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
		assert.Nil(t, item)
	})
}
