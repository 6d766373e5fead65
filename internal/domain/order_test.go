package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItem_TotalPrice(t *testing.T) {
	item := OrderItem{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")}
	assert.Equal(t, "20.00", item.TotalPrice().StringFixed(2))

	item = OrderItem{Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")}
	assert.Equal(t, "5.00", item.TotalPrice().StringFixed(2))
}

// The order total is the sum of item totals frozen at creation time.
func TestOrder_TotalMatchesItems(t *testing.T) {
	order := Order{
		TotalAmount: decimal.RequireFromString("25.00"),
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	}

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.TotalPrice())
	}
	assert.True(t, order.TotalAmount.Equal(sum))
	assert.Equal(t, 2, order.ItemsCount())
}

func TestCartItem_TotalPrice(t *testing.T) {
	item := CartItem{
		Quantity: 3,
		Product:  &Product{Price: decimal.RequireFromString("4.50")},
	}
	assert.Equal(t, "13.50", item.TotalPrice().StringFixed(2))

	// A missing product must not panic; the repository preloads it normally.
	assert.True(t, CartItem{Quantity: 3}.TotalPrice().IsZero())
}

func TestProduct_AverageRating(t *testing.T) {
	p := Product{}
	assert.Zero(t, p.AverageRating())

	p.Reviews = []Review{{Rating: 5}, {Rating: 4}, {Rating: 3}}
	assert.InDelta(t, 4.0, p.AverageRating(), 0.001)
}

func TestProduct_InStock(t *testing.T) {
	assert.False(t, (&Product{}).InStock())
	assert.True(t, (&Product{InventoryCount: 1}).InStock())
}
