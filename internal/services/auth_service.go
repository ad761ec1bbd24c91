// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopora/backend/internal/apperrors"
	"github.com/shopora/backend/internal/config"
	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/utils"
)

type AuthService struct {
	db            *gorm.DB
	config        *config.Config
	notifications *NotificationService
}

type SignupRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	UserName  string `json:"user_name" validate:"required,username"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strong_password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,strong_password"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

func NewAuthService(db *gorm.DB, config *config.Config, notifications *NotificationService) *AuthService {
	return &AuthService{db: db, config: config, notifications: notifications}
}

func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid signup payload", utils.GetValidationErrors(err))
	}

	var existing models.User
	if err := s.db.Where("email = ? OR user_name = ?", req.Email, req.UserName).
		First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("email or username already in use")
	}

	verificationToken, err := utils.GenerateVerificationToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	verificationExpiry := time.Now().Add(24 * time.Hour)

	user := &models.User{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		UserName:              req.UserName,
		Email:                 req.Email,
		Role:                  models.RoleUser,
		VerificationToken:     utils.HashToken(verificationToken),
		VerificationExpiresAt: &verificationExpiry,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.notifications != nil {
		go func() {
			if err := s.notifications.SendWelcomeEmail(user, verificationToken); err != nil {
				logrus.WithError(err).WithField("user_id", user.ID).Warn("welcome email failed")
			}
		}()
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid login payload", utils.GetValidationErrors(err))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	now := time.Now()
	if err := s.db.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to record login time")
	}
	user.LastLoginAt = &now

	return s.issueTokens(&user)
}

func (s *AuthService) RefreshToken(req *RefreshTokenRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid refresh payload", utils.GetValidationErrors(err))
	}

	userIDStr, err := utils.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userIDStr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return s.issueTokens(&user)
}

// VerifyEmail consumes a verification token. Tokens are stored hashed, so the
// raw token from the link is hashed before lookup.
func (s *AuthService) VerifyEmail(token string) error {
	hashed := utils.HashToken(token)

	var user models.User
	if err := s.db.Where("verification_token = ? AND verification_expires_at > ?",
		hashed, time.Now()).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BadRequest("verification token is invalid or has expired")
		}
		return fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"is_verified":             true,
		"verification_token":      "",
		"verification_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}
	return nil
}

// ForgotPassword always reports success so the endpoint does not leak which
// emails exist.
func (s *AuthService) ForgotPassword(req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.Validation("invalid payload", utils.GetValidationErrors(err))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	resetToken, err := utils.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().Add(10 * time.Minute)

	updates := map[string]interface{}{
		"reset_password_token":      utils.HashToken(resetToken),
		"reset_password_expires_at": expiry,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.notifications != nil {
		go func() {
			if err := s.notifications.SendPasswordResetEmail(&user, resetToken); err != nil {
				logrus.WithError(err).WithField("user_id", user.ID).Warn("password reset email failed")
			}
		}()
	}
	return nil
}

func (s *AuthService) ResetPassword(token string, req *ResetPasswordRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("invalid payload", utils.GetValidationErrors(err))
	}

	hashed := utils.HashToken(token)
	var user models.User
	if err := s.db.Where("reset_password_token = ? AND reset_password_expires_at > ?",
		hashed, time.Now()).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BadRequest("reset token is invalid or has expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"password_hash":             user.PasswordHash,
		"password_changed_at":       now,
		"reset_password_token":      "",
		"reset_password_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	return s.issueTokens(&user)
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.UserName, string(user.Role), s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.config.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
