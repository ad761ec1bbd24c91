// internal/services/review_service_test.go
package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/shopora/backend/internal/models"
)

// Deleting a review must remove the row outright so the (product_id, user_id)
// unique slot frees up and the user can review the product again. It also
// rewrites the product's aggregate fields from whatever reviews survive.
func TestDeleteReviewHardDeletesRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewReviewService(db)

	reviewID := uuid.New()
	userID := uuid.New()
	productID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "reviews" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "user_id", "rating"}).
			AddRow(reviewID.String(), productID.String(), userID.String(), 4))
	mock.ExpectExec(`DELETE FROM "reviews" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "reviews" WHERE product_id =`).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}))
	mock.ExpectExec(`UPDATE "products" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteReview(reviewID, userID, models.RoleUser))
	require.NoError(t, mock.ExpectationsWereMet())
}
