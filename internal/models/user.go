// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	FirstName    string   `json:"first_name" gorm:"size:100;not null"`
	LastName     string   `json:"last_name" gorm:"size:100;not null"`
	UserName     string   `json:"user_name" gorm:"index;size:50;not null"`
	Email        string   `json:"email" gorm:"index;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);default:'user'"`
	Avatar       Image    `json:"avatar" gorm:"embedded;embeddedPrefix:avatar_"`

	IsVerified             bool       `json:"is_verified" gorm:"default:false"`
	LastLoginAt            *time.Time `json:"last_login_at"`
	PasswordChangedAt      *time.Time `json:"-"`
	VerificationToken      string     `json:"-" gorm:"size:255;index"`
	VerificationExpiresAt  *time.Time `json:"-"`
	ResetPasswordToken     string     `json:"-" gorm:"size:255;index"`
	ResetPasswordExpiresAt *time.Time `json:"-"`

	// Relationships
	Addresses []Address `json:"addresses,omitempty" gorm:"foreignKey:UserID"`
	Orders    []Order   `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Reviews   []Review  `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

// Address is a shipping destination sub-record of a user.
type Address struct {
	BaseModel
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	AddressLine1 string    `json:"address_line1" gorm:"size:255;not null"`
	AddressLine2 string    `json:"address_line2" gorm:"size:255"`
	Phone        string    `json:"phone" gorm:"size:50"`
	Country      string    `json:"country" gorm:"size:100;not null"`
	City         string    `json:"city" gorm:"size:100;not null"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
