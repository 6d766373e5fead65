package services

import (
	"context"
	"testing"

	"shop-service/internal/domain"
	"shop-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_CreateReview(t *testing.T) {
	user := testIdentity()

	t.Run("creates a trimmed review", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		reviewRepo := new(mocks.MockReviewRepository)
		productRepo.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(1, "10.00"), nil)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

		review, err := NewCatalogService(productRepo, reviewRepo).
			CreateReview(context.Background(), user, 1, 4, "  Great  ", "  Works well.  ")
		assert.NoError(t, err)
		assert.Equal(t, "Great", review.Title)
		assert.Equal(t, "Works well.", review.Comment)
		assert.Equal(t, uint8(4), review.Rating)
		assert.Equal(t, user.UserID, review.UserID)
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		service := NewCatalogService(new(mocks.MockProductRepository), new(mocks.MockReviewRepository))

		_, err := service.CreateReview(context.Background(), user, 1, 0, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidRating)

		_, err = service.CreateReview(context.Background(), user, 1, 6, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidRating)
	})

	t.Run("rejects a second review for the same product", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		reviewRepo := new(mocks.MockReviewRepository)
		productRepo.On("FindByID", mock.Anything, uint64(1)).Return(testProduct(1, "10.00"), nil)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(domain.ErrDuplicateReview)

		_, err := NewCatalogService(productRepo, reviewRepo).
			CreateReview(context.Background(), user, 1, 4, "", "")
		assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	})
}

func TestCatalogService_UpdateReview(t *testing.T) {
	user := testIdentity()

	t.Run("only the owner's review is reachable", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		reviewRepo.On("FindByIDForUser", mock.Anything, uint64(3), user.UserID).Return(nil, nil)

		_, err := NewCatalogService(new(mocks.MockProductRepository), reviewRepo).
			UpdateReview(context.Background(), user, 3, 5, "", "")
		assert.ErrorIs(t, err, domain.ErrReviewNotFound)
	})

	t.Run("updates fields", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		existing := &domain.Review{ID: 3, UserID: user.UserID, ProductID: 1, Rating: 2}
		reviewRepo.On("FindByIDForUser", mock.Anything, uint64(3), user.UserID).Return(existing, nil)
		reviewRepo.On("Update", mock.Anything, existing).Return(nil)

		review, err := NewCatalogService(new(mocks.MockProductRepository), reviewRepo).
			UpdateReview(context.Background(), user, 3, 5, "Better now", "Firmware fixed it")
		assert.NoError(t, err)
		assert.Equal(t, uint8(5), review.Rating)
		assert.Equal(t, "Better now", review.Title)
	})
}

func TestCatalogService_GetProduct(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint64(404)).Return(nil, nil)

		_, err := NewCatalogService(productRepo, new(mocks.MockReviewRepository)).
			GetProduct(context.Background(), 404)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("computed fields", func(t *testing.T) {
		p := testProduct(1, "10.00")
		p.Reviews = []domain.Review{{Rating: 4}, {Rating: 2}}
		productRepo := new(mocks.MockProductRepository)
		productRepo.On("FindByID", mock.Anything, uint64(1)).Return(p, nil)

		got, err := NewCatalogService(productRepo, new(mocks.MockReviewRepository)).
			GetProduct(context.Background(), 1)
		assert.NoError(t, err)
		assert.True(t, got.InStock())
		assert.InDelta(t, 3.0, got.AverageRating(), 0.001)
	})
}
