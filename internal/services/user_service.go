// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/utils"
)

type UserService struct {
	db             *gorm.DB
	storageService *StorageService
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	UserName  *string `json:"user_name" validate:"omitempty,username"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}

type AdminUpdateUserRequest struct {
	FirstName *string          `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string          `json:"last_name" validate:"omitempty,min=2,max=100"`
	Role      *models.UserRole `json:"role" validate:"omitempty,oneof=user admin"`
}

type AddressRequest struct {
	AddressLine1 string `json:"address_line1" validate:"required,min=2,max=255"`
	AddressLine2 string `json:"address_line2" validate:"max=255"`
	Phone        string `json:"phone" validate:"max=50"`
	Country      string `json:"country" validate:"required,min=2,max=100"`
	City         string `json:"city" validate:"required,min=2,max=100"`
}

func NewUserService(db *gorm.DB, storageService *StorageService) *UserService {
	return &UserService{db: db, storageService: storageService}
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Addresses").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetAllUsers(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.User{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("email ILIKE ? OR user_name ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "email", "user_name"})
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	result := utils.CreatePaginationResult(users, total, params)
	return &result, nil
}

func (s *UserService) UpdateProfile(id uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid profile payload", utils.GetValidationErrors(err))
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.UserName != nil && *req.UserName != user.UserName {
		var existing models.User
		if err := s.db.Where("user_name = ? AND id != ?", *req.UserName, id).
			First(&existing).Error; err == nil {
			return nil, apperrors.Conflict("username already in use")
		}
		updates["user_name"] = *req.UserName
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.GetUser(id)
}

func (s *UserService) UpdatePassword(id uuid.UUID, req *UpdatePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.Validation("invalid payload", utils.GetValidationErrors(err))
	}

	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"password_hash":       user.PasswordHash,
		"password_changed_at": now,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *UserService) SetAvatar(id uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	options := s.storageService.GetDefaultUploadOptions("avatars")
	image, err := s.storageService.UploadImage(file, header, options)
	if err != nil {
		return nil, err
	}

	oldKey := user.Avatar.Key
	if err := s.db.Model(user).Updates(map[string]interface{}{
		"avatar_key": image.Key,
		"avatar_url": image.URL,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	if oldKey != "" {
		if err := s.storageService.DeleteImage(oldKey); err != nil {
			logrus.WithError(err).WithField("key", oldKey).Warn("failed to delete replaced avatar")
		}
	}

	user.Avatar = *image
	return user, nil
}

func (s *UserService) AdminUpdateUser(id uuid.UUID, req *AdminUpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid payload", utils.GetValidationErrors(err))
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return s.GetUser(id)
}

// DeleteUser removes the account and its dependent rows; orders are kept for
// bookkeeping.
func (s *UserService) DeleteUser(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("user")
		}
		if err := tx.Delete(&models.Address{}, "user_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete addresses: %w", err)
		}
		if err := tx.Delete(&models.Cart{}, "user_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete cart: %w", err)
		}
		return nil
	})
}

// Addresses

func (s *UserService) ListAddresses(userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch addresses: %w", err)
	}
	return addresses, nil
}

func (s *UserService) CreateAddress(userID uuid.UUID, req *AddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid address payload", utils.GetValidationErrors(err))
	}

	address := &models.Address{
		UserID:       userID,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Phone:        req.Phone,
		Country:      req.Country,
		City:         req.City,
	}
	if err := s.db.Create(address).Error; err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *UserService) UpdateAddress(userID, addressID uuid.UUID, req *AddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid address payload", utils.GetValidationErrors(err))
	}

	var address models.Address
	if err := s.db.Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("address")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"address_line1": req.AddressLine1,
		"address_line2": req.AddressLine2,
		"phone":         req.Phone,
		"country":       req.Country,
		"city":          req.City,
	}
	if err := s.db.Model(&address).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return &address, nil
}

func (s *UserService) DeleteAddress(userID, addressID uuid.UUID) error {
	res := s.db.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("address")
	}
	return nil
}
