package mysql

import (
	"context"
	"errors"
	"fmt"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateFromCart(ctx context.Context, userID uint64, shippingAddress string) (*domain.Order, error) {
	var order *domain.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []domain.CartItem
		if err := tx.Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(lines))
		for _, line := range lines {
			if line.Product == nil {
				return fmt.Errorf("cart line %d references missing product %d", line.ID, line.ProductID)
			}
			// Unit price is frozen here; later product price changes must not
			// touch historical items.
			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.Product.Price,
			})
			total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		o := &domain.Order{
			UserID:          userID,
			TotalAmount:     total,
			Status:          domain.StatusPending,
			ShippingAddress: shippingAddress,
			Items:           items,
		}
		if err := tx.Create(o).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) FindByIDForUser(ctx context.Context, id, userID uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, order *domain.Order, status domain.OrderStatus) error {
	if err := r.db.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return err
	}
	order.Status = status
	return nil
}

func (r *orderRepo) SetPaymentReference(ctx context.Context, order *domain.Order, ref string) error {
	res := r.db.WithContext(ctx).Model(order).
		Where("payment_intent_id = '' OR payment_intent_id IS NULL").
		Update("payment_intent_id", ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d already has a payment reference", order.ID)
	}
	order.PaymentIntentID = ref
	return nil
}
