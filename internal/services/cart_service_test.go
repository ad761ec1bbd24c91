// internal/services/cart_service_test.go
package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// Removing a product must issue a real DELETE for the line row. A soft delete
// would leave a tombstone occupying the (cart_id, product_id) unique slot, and
// the follow-up re-add would take the insert branch straight into a
// constraint violation.
func TestRemoveItemThenReAddSameProduct(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCartService(db)

	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()
	itemID := uuid.New()

	cartRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "user_id", "total_price"}).
			AddRow(cartID.String(), userID.String(), 0.0)
	}

	// RemoveItem: lock cart, hard-delete the line, recompute the total.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE user_id =(.+)FOR UPDATE`).
		WillReturnRows(cartRow())
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items" WHERE cart_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "carts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE id =`).
		WillReturnRows(cartRow())
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	cart, err := svc.RemoveItem(userID, productID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Re-adding the same product finds no surviving line and inserts a
	// fresh one.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(productID.String(), 25.0))
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE user_id =(.+)FOR UPDATE`).
		WillReturnRows(cartRow())
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(itemID.String()))
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items" WHERE cart_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"}).
			AddRow(itemID.String(), cartID.String(), productID.String(), 2))
	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(productID.String(), 25.0))
	mock.ExpectExec(`UPDATE "carts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total_price"}).
			AddRow(cartID.String(), userID.String(), 50.0))
	mock.ExpectQuery(`SELECT (.+) FROM "cart_items" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "quantity"}).
			AddRow(itemID.String(), cartID.String(), productID.String(), 2))
	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(productID.String(), 25.0))

	cart, err = svc.AddItem(userID, &AddItemRequest{ProductID: productID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, productID, cart.Items[0].ProductID)
	assert.Equal(t, 50.0, cart.TotalPrice)

	require.NoError(t, mock.ExpectationsWereMet())
}

// Clear drops every line outright and zeroes the cart in one statement pair.
func TestClearHardDeletesAllLines(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewCartService(db)

	userID := uuid.New()
	cartID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE user_id =(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
			AddRow(cartID.String(), userID.String()))
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE "carts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Clear(userID))
	require.NoError(t, mock.ExpectationsWereMet())
}
