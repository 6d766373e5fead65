package mysql

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListByUser(ctx context.Context, userID uint64) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cartRepo) Upsert(ctx context.Context, userID, productID uint64, quantity uint32) (*domain.CartItem, error) {
	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", quantity)}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the merged quantity and the product.
	var out domain.CartItem
	err = r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, userID, itemID uint64, quantity uint32) (*domain.CartItem, error) {
	res := r.db.WithContext(ctx).Model(&domain.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	var out domain.CartItem
	err := r.db.WithContext(ctx).Preload("Product").First(&out, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *cartRepo) Remove(ctx context.Context, userID, itemID uint64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepo) Clear(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
}
