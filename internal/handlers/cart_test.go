// internal/handlers/cart_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopora/backend/internal/services"
	"github.com/shopora/backend/internal/utils"
)

// Clearing the cart answers 200 with the success envelope, not 204.
func TestClearCartReturnsSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	userID := uuid.New()
	cartID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "carts" WHERE user_id =(.+)FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
			AddRow(cartID.String(), userID.String()))
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "carts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	handler := NewCartHandler(services.NewCartService(db))

	router := gin.New()
	router.DELETE("/cart/clear", func(c *gin.Context) {
		c.Set("user_id", userID.String())
	}, handler.ClearCart)

	req, _ := http.NewRequest(http.MethodDelete, "/cart/clear", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NoError(t, mock.ExpectationsWereMet())
}
