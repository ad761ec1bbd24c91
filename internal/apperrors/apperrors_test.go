// internal/apperrors/apperrors_test.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	err := NotFound("product")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "product")

	err = CouponExpired()
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "COUPON_EXPIRED", err.Code)

	err = BadRequest("stock %d too low", 3)
	assert.Equal(t, "stock 3 too low", err.Message)
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	base := Forbidden("no access")
	wrapped := fmt.Errorf("checking order: %w", base)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.Status)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
