package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint64          `json:"user_id" gorm:"not null;index"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"not null;type:decimal(10,2)"`
	Status          OrderStatus     `json:"status" gorm:"type:enum('pending','processing','cancelled');default:'pending'"`
	PaymentIntentID string          `json:"payment_intent_id,omitempty" gorm:"type:varchar(255)"`
	ShippingAddress string          `json:"shipping_address" gorm:"type:text;not null"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

type OrderItem struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"order_id" gorm:"not null;index"`
	ProductID uint64          `json:"product_id" gorm:"not null;index"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  uint32          `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"not null;type:decimal(10,2)"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TotalPrice is quantity * unit_price, with the unit price frozen at order time.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (o *Order) ItemsCount() int {
	return len(o.Items)
}
