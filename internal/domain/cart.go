package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a transient per-user line awaiting checkout. The price is read
// from the live product; it is only frozen once the line converts to an OrderItem.
type CartItem struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product;index"`
	ProductID uint64    `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  uint32    `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c CartItem) TotalPrice() decimal.Decimal {
	if c.Product == nil {
		return decimal.Zero
	}
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartTotals is the summary the cart endpoints expose.
type CartTotals struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  uint32          `json:"total_items"`
	ItemCount   int             `json:"item_count"`
}
