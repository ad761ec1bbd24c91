// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/shopora/backend/internal/models"
)

// RequestValidationTestSuite exercises the request-parsing paths that reject
// before any service or database work happens.
type RequestValidationTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *RequestValidationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	cartHandler := NewCartHandler(nil)
	orderHandler := NewOrderHandler(nil)
	reviewHandler := NewReviewHandler(nil)

	identity := func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Set("role", string(models.RoleUser))
	}

	s.router.POST("/cart", identity, cartHandler.AddItem)
	s.router.PUT("/cart/:productId", identity, cartHandler.UpdateItem)
	s.router.POST("/orders", identity, orderHandler.CreateOrder)
	s.router.POST("/anon/cart", cartHandler.AddItem)
	s.router.POST("/anon/reviews", reviewHandler.CreateReview)
}

func (s *RequestValidationTestSuite) post(path string, body []byte) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RequestValidationTestSuite) TestUnauthenticatedRequestsRejected() {
	w := s.post("/anon/cart", []byte(`{"product_id":"x","quantity":1}`))
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.post("/anon/reviews", []byte(`{}`))
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *RequestValidationTestSuite) TestMalformedJSONRejected() {
	w := s.post("/cart", []byte(`{not json`))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(s.T(), resp["success"].(bool))
}

func (s *RequestValidationTestSuite) TestInvalidProductIDRejected() {
	req, _ := http.NewRequest("PUT", "/cart/not-a-uuid", bytes.NewBufferString(`{"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RequestValidationTestSuite) TestOrderBodyMustBeJSON() {
	w := s.post("/orders", []byte(`"just a string"`))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func TestRequestValidationTestSuite(t *testing.T) {
	suite.Run(t, new(RequestValidationTestSuite))
}
