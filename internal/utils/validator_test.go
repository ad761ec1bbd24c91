// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type credentials struct {
	UserName string `validate:"required,username"`
	Password string `validate:"required,strong_password"`
}

func TestStrongPasswordValidation(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid password", "Str0ngPass!", true},
		{"too short", "Ab1!", false},
		{"missing upper", "str0ngpass!", false},
		{"missing number", "StrongPass!", false},
		{"missing special", "Str0ngPass1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&credentials{UserName: "valid_user", Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUsernameValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"alphanumeric", "ada_lovelace42", true},
		{"too short", "ab", false},
		{"spaces", "ada lovelace", false},
		{"punctuation", "ada!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&credentials{UserName: tt.username, Password: "Str0ngPass!"})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&credentials{})
	assert.Error(t, err)

	details := GetValidationErrors(err)
	assert.Len(t, details, 2)
	assert.Equal(t, "username", details[0].Field)
	assert.Equal(t, "required", details[0].Tag)
	assert.NotEmpty(t, details[0].Message)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("token-one")
	b := HashToken("token-one")
	c := HashToken("token-two")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
