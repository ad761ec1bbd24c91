// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/utils"
)

type CategoryService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

func NewCategoryService(db *gorm.DB, storageService *StorageService) *CategoryService {
	return &CategoryService{db: db, storageService: storageService}
}

func (s *CategoryService) CreateCategory(req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid category payload", utils.GetValidationErrors(err))
	}

	var existing models.Category
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("category name already exists")
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) UpdateCategory(id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid category payload", utils.GetValidationErrors(err))
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
	}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) SetImage(id uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	options := s.storageService.GetDefaultUploadOptions("categories")
	image, err := s.storageService.UploadImage(file, header, options)
	if err != nil {
		return nil, err
	}

	oldKey := category.Image.Key
	if err := s.db.Model(category).Updates(map[string]interface{}{
		"image_key": image.Key,
		"image_url": image.URL,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update category image: %w", err)
	}

	if oldKey != "" {
		if err := s.storageService.DeleteImage(oldKey); err != nil {
			logrus.WithError(err).WithField("key", oldKey).Warn("failed to delete replaced category image")
		}
	}

	category.Image = *image
	return category, nil
}

// DeleteCategory refuses to orphan products.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if productCount > 0 {
		return apperrors.Conflict("category still has products")
	}

	if err := s.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if category.Image.Key != "" {
		if err := s.storageService.DeleteImage(category.Image.Key); err != nil {
			logrus.WithError(err).WithField("key", category.Image.Key).Warn("failed to delete category image object")
		}
	}
	return nil
}
