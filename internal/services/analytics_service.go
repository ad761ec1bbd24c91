// internal/services/analytics_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/models"
)

type AnalyticsService struct {
	db *gorm.DB
}

type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitsSold int64     `json:"units_sold"`
	Revenue   float64   `json:"revenue"`
}

type TopCustomer struct {
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name"`
	Email      string    `json:"email"`
	OrderCount int64     `json:"order_count"`
	TotalSpent float64   `json:"total_spent"`
}

type MonthlySales struct {
	Month        string  `json:"month"`
	OrderCount   int64   `json:"order_count"`
	Revenue      float64 `json:"revenue"`
	AverageOrder float64 `json:"average_order"`
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// TopProducts ranks products by units sold across paid orders.
func (s *AnalyticsService) TopProducts(limit int) ([]TopProduct, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var results []TopProduct
	err := s.db.Model(&models.OrderItem{}).
		Select("order_items.product_id, order_items.name, SUM(order_items.quantity) AS units_sold, SUM(order_items.unit_price * order_items.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.is_paid = ?", true).
		Group("order_items.product_id, order_items.name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}
	return results, nil
}

// TopCustomers ranks buyers by total spend across paid orders.
func (s *AnalyticsService) TopCustomers(limit int) ([]TopCustomer, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var results []TopCustomer
	err := s.db.Model(&models.Order{}).
		Select("orders.user_id, users.user_name, users.email, COUNT(orders.id) AS order_count, SUM(orders.total_price) AS total_spent").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.is_paid = ?", true).
		Group("orders.user_id, users.user_name, users.email").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute top customers: %w", err)
	}
	return results, nil
}

// SalesStats aggregates paid orders per calendar month.
func (s *AnalyticsService) SalesStats() ([]MonthlySales, error) {
	var results []MonthlySales
	err := s.db.Model(&models.Order{}).
		Select("to_char(date_trunc('month', orders.created_at), 'YYYY-MM') AS month, COUNT(orders.id) AS order_count, SUM(orders.total_price) AS revenue, AVG(orders.total_price) AS average_order").
		Where("orders.is_paid = ?", true).
		Group("month").
		Order("month DESC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute sales stats: %w", err)
	}
	return results, nil
}
