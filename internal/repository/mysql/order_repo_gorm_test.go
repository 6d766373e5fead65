package mysql

import (
	"context"
	"testing"

	"shop-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The domain models carry MySQL column types, so the sqlite schema is created
// by hand. Only names have to line up for gorm to work against it.
const testSchema = `
CREATE TABLE products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT,
	price NUMERIC NOT NULL,
	inventory_count INTEGER NOT NULL DEFAULT 0,
	image_url TEXT,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE cart_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME,
	UNIQUE (user_id, product_id)
);
CREATE TABLE orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	total_amount NUMERIC NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	payment_intent_id TEXT,
	shipping_address TEXT NOT NULL,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	unit_price NUMERIC NOT NULL,
	created_at DATETIME
);
`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Each pooled connection gets its own :memory: database; pin to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(testSchema).Error)
	return db
}

func seedCart(t *testing.T, db *gorm.DB, userID uint64) {
	t.Helper()

	products := []domain.Product{
		{Name: "Mug", Price: decimal.RequireFromString("10.00"), InventoryCount: 5},
		{Name: "Coaster", Price: decimal.RequireFromString("5.00"), InventoryCount: 3},
	}
	require.NoError(t, db.Create(&products).Error)

	lines := []domain.CartItem{
		{UserID: userID, ProductID: products[0].ID, Quantity: 2},
		{UserID: userID, ProductID: products[1].ID, Quantity: 1},
	}
	require.NoError(t, db.Create(&lines).Error)
}

func TestOrderRepo_CreateFromCart(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedCart(t, db, 7)

	// Another user's cart must survive the conversion untouched.
	other := domain.CartItem{UserID: 8, ProductID: 1, Quantity: 4}
	require.NoError(t, db.Create(&other).Error)

	order, err := repo.CreateFromCart(context.Background(), 7, "1 Main St")
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotZero(t, order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"got total %s", order.TotalAmount)
	require.Len(t, order.Items, 2)

	var remaining int64
	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", 7).Count(&remaining).Error)
	assert.Zero(t, remaining, "originating cart must be empty afterward")

	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", 8).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}

func TestOrderRepo_CreateFromCart_FreezesUnitPrices(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedCart(t, db, 7)

	order, err := repo.CreateFromCart(context.Background(), 7, "1 Main St")
	require.NoError(t, err)

	// Raising the catalog price must not rewrite history.
	require.NoError(t, db.Model(&domain.Product{}).
		Where("name = ?", "Mug").
		Update("price", decimal.RequireFromString("99.00")).Error)

	reread, err := repo.FindByIDForUser(context.Background(), order.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, reread)
	require.Len(t, reread.Items, 2)
	for _, item := range reread.Items {
		assert.False(t, item.UnitPrice.Equal(decimal.RequireFromString("99.00")))
	}
	assert.True(t, reread.TotalAmount.Equal(decimal.RequireFromString("25.00")))
}

func TestOrderRepo_CreateFromCart_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	order, err := repo.CreateFromCart(context.Background(), 7, "1 Main St")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Nil(t, order)

	var orders int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestOrderRepo_CreateFromCart_RollsBackOnBadLine(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedCart(t, db, 7)

	// A line pointing at a product that no longer exists fails the conversion.
	bad := domain.CartItem{UserID: 7, ProductID: 999, Quantity: 1}
	require.NoError(t, db.Create(&bad).Error)

	order, err := repo.CreateFromCart(context.Background(), 7, "1 Main St")
	assert.Error(t, err)
	assert.Nil(t, order)

	var orders, lines int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", 7).Count(&lines).Error)
	assert.Zero(t, orders, "failed conversion must persist nothing")
	assert.EqualValues(t, 3, lines, "failed conversion must leave the cart intact")
}

func TestOrderRepo_FindByIDForUser_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedCart(t, db, 7)

	order, err := repo.CreateFromCart(context.Background(), 7, "1 Main St")
	require.NoError(t, err)

	found, err := repo.FindByIDForUser(context.Background(), order.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.ID, found.ID)

	foreign, err := repo.FindByIDForUser(context.Background(), order.ID, 8)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestOrderRepo_SetPaymentReference_WriteOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	seedCart(t, db, 7)

	order, err := repo.CreateFromCart(context.Background(), 7, "1 Main St")
	require.NoError(t, err)

	require.NoError(t, repo.SetPaymentReference(context.Background(), order, "pi_123"))
	assert.Equal(t, "pi_123", order.PaymentIntentID)

	err = repo.SetPaymentReference(context.Background(), order, "pi_456")
	assert.Error(t, err)

	reread, err := repo.FindByIDForUser(context.Background(), order.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", reread.PaymentIntentID)
}
