// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/config"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/pricing"
	"github.com/shopora/backend/internal/utils"
)

type OrderService struct {
	db              *gorm.DB
	config          *config.Config
	cartService     *CartService
	shippingService *ShippingService
	paymentService  *PaymentService
	notifications   *NotificationService
}

type ShippingAddressRequest struct {
	AddressLine1 string `json:"address_line1" validate:"required,min=2,max=200"`
	AddressLine2 string `json:"address_line2" validate:"max=200"`
	Phone        string `json:"phone" validate:"max=30"`
	Country      string `json:"country" validate:"required,min=2,max=100"`
	City         string `json:"city" validate:"required,min=2,max=100"`
}

type CreateOrderRequest struct {
	PaymentMethod   string                  `json:"payment_method" validate:"required,oneof=card cash_on_delivery"`
	ShippingAddress *ShippingAddressRequest `json:"shipping_address" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type PayOrderRequest struct {
	PaymentReference string `json:"payment_reference"`
}

// CreateOrderResult pairs the persisted order with the pre-tax items price the
// checkout endpoint reports alongside it.
type CreateOrderResult struct {
	Order     *models.Order `json:"order"`
	BasePrice float64       `json:"base_price"`
}

func NewOrderService(
	db *gorm.DB,
	config *config.Config,
	cartService *CartService,
	shippingService *ShippingService,
	paymentService *PaymentService,
	notifications *NotificationService,
) *OrderService {
	return &OrderService{
		db:              db,
		config:          config,
		cartService:     cartService,
		shippingService: shippingService,
		paymentService:  paymentService,
		notifications:   notifications,
	}
}

// CreateOrder snapshots the cart into an order. Item names and unit prices are
// frozen at checkout from the live product rows, so later catalog edits never
// rewrite order history. The cart itself is left untouched.
func (s *OrderService) CreateOrder(userID uuid.UUID, req *CreateOrderRequest) (*CreateOrderResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid order payload", utils.GetValidationErrors(err))
	}

	result := &CreateOrderResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartService.lockCart(tx, userID)
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		if len(items) == 0 {
			return apperrors.BadRequest("cart is empty")
		}

		shippingPrice, err := s.shippingService.PriceFor(tx, req.ShippingAddress.City)
		if err != nil {
			return err
		}

		var itemsPrice float64
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("product")
				}
				return fmt.Errorf("database error: %w", err)
			}
			if product.Stock < item.Quantity {
				return apperrors.BadRequest("insufficient stock for product %s", product.Name)
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
			})
			itemsPrice += product.Price * float64(item.Quantity)
		}
		itemsPrice = pricing.Round2(itemsPrice)

		taxPrice, totalPrice := pricing.OrderTotals(itemsPrice, shippingPrice, s.config.Pricing.TaxRate)

		order := &models.Order{
			UserID: userID,
			Items:  orderItems,
			ShippingAddress: models.OrderAddress{
				AddressLine1: req.ShippingAddress.AddressLine1,
				AddressLine2: req.ShippingAddress.AddressLine2,
				Phone:        req.ShippingAddress.Phone,
				Country:      req.ShippingAddress.Country,
				City:         req.ShippingAddress.City,
			},
			PaymentMethod: req.PaymentMethod,
			TaxPrice:      taxPrice,
			ShippingPrice: shippingPrice,
			TotalPrice:    totalPrice,
			OrderStatus:   models.OrderStatusPending,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range orderItems {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.BadRequest("insufficient stock for product %s", item.Name)
			}
		}

		result.Order = order
		result.BasePrice = itemsPrice
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		go s.notifications.SendOrderConfirmation(userID, result.Order)
	}
	return result, nil
}

func (s *OrderService) GetAllOrders(params utils.PaginationParams) (*utils.PaginationResult, error) {
	var orders []models.Order
	var total int64

	query := s.db.Model(&models.Order{})
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "total_price", "order_status"})
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Items").Preload("User").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	result := utils.CreatePaginationResult(orders, total, params)
	return &result, nil
}

func (s *OrderService) GetMyOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).
		Preload("Items").Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// GetOrder enforces ownership: regular users only see their own orders.
func (s *OrderService) GetOrder(orderID, requesterID uuid.UUID, requesterRole models.UserRole) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Items.Product").Preload("User").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, apperrors.Forbidden("you do not have access to this order")
	}
	return &order, nil
}

func (s *OrderService) UpdateStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if !req.Status.Valid() {
		return nil, apperrors.BadRequest("invalid order status: %s", req.Status)
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order")
			}
			return fmt.Errorf("database error: %w", err)
		}

		order.ApplyStatus(req.Status, time.Now())
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// PayOrder marks the order paid. When a payment reference is supplied and
// Stripe is configured, the intent is verified against Stripe first.
func (s *OrderService) PayOrder(orderID, requesterID uuid.UUID, requesterRole models.UserRole, req *PayOrderRequest) (*models.Order, error) {
	order, err := s.GetOrder(orderID, requesterID, requesterRole)
	if err != nil {
		return nil, err
	}

	if order.IsPaid {
		return order, nil
	}

	if req.PaymentReference != "" && s.config.Payment.StripeSecretKey != "" {
		if err := s.paymentService.VerifyPayment(req.PaymentReference); err != nil {
			return nil, err
		}
	}

	order.MarkPaid(time.Now(), req.PaymentReference)
	if err := s.db.Save(order).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(orderID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, "id = ?", orderID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("order")
		}
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", orderID).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		return nil
	})
}
