// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateProductRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=255"`
	Description string    `json:"description" validate:"required,min=10"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Tags        []string  `json:"tags" validate:"max=20,dive,min=1,max=50"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string    `json:"description" validate:"omitempty,min=10"`
	Price       *float64   `json:"price" validate:"omitempty,gt=0"`
	Stock       *int       `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Tags        []string   `json:"tags" validate:"max=20,dive,min=1,max=50"`
}

// ProductFilters narrows the public catalog listing.
type ProductFilters struct {
	CategoryID *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	Tags       []string
}

func NewProductService(db *gorm.DB, storageService *StorageService) *ProductService {
	return &ProductService{db: db, storageService: storageService}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid product payload", utils.GetValidationErrors(err))
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Tags:        pq.StringArray(req.Tags),
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// GetProducts serves the public catalog: filters, full-text search, sort and
// pagination in a single query pair.
func (s *ProductService) GetProducts(params utils.PaginationParams, filters ProductFilters) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{})

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if len(filters.Tags) > 0 {
		query = query.Where("tags && ?", pq.StringArray(filters.Tags))
	}
	if params.Search != "" {
		query = query.Where(
			"to_tsvector('english', name || ' ' || description) @@ plainto_tsquery('english', ?)",
			params.Search,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "price", "name", "average_rating"})
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Preload("Category").Preload("Images").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.CreatePaginationResult(products, total, params)
	return &result, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").Preload("Images").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid product payload", utils.GetValidationErrors(err))
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = utils.Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("category")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}
	return s.GetProduct(id)
}

// ReplaceImages swaps the product's image set. Old objects are removed from
// storage after the new rows commit; storage failures only warn since the
// database is already consistent.
func (s *ProductService) ReplaceImages(productID uuid.UUID, files []*multipart.FileHeader) (*models.Product, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	options := s.storageService.GetDefaultUploadOptions("products")
	uploaded := make([]models.ProductImage, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}
		image, uploadErr := s.storageService.UploadImage(file, header, options)
		file.Close()
		if uploadErr != nil {
			return nil, uploadErr
		}
		uploaded = append(uploaded, models.ProductImage{
			ProductID: productID,
			Image:     *image,
		})
	}

	oldImages := product.Images
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductImage{}, "product_id = ?", productID).Error; err != nil {
			return fmt.Errorf("failed to remove old images: %w", err)
		}
		if len(uploaded) > 0 {
			if err := tx.Create(&uploaded).Error; err != nil {
				return fmt.Errorf("failed to save images: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, old := range oldImages {
		if err := s.storageService.DeleteImage(old.Key); err != nil {
			logrus.WithError(err).WithField("key", old.Key).Warn("failed to delete replaced product image")
		}
	}
	return s.GetProduct(productID)
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductImage{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, image := range product.Images {
		if err := s.storageService.DeleteImage(image.Key); err != nil {
			logrus.WithError(err).WithField("key", image.Key).Warn("failed to delete product image object")
		}
	}
	return nil
}
