// internal/models/user_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPasswordHashing(t *testing.T) {
	user := &User{}
	err := user.SetPassword("Str0ngPass!")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "Str0ngPass!", user.PasswordHash)

	assert.NoError(t, user.CheckPassword("Str0ngPass!"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestUserFullName(t *testing.T) {
	user := &User{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", user.FullName())
}
