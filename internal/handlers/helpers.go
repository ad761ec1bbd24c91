// internal/handlers/helpers.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopora/backend/internal/models"
	"github.com/shopora/backend/internal/utils"
)

// overridable clock for handler tests
var timeNow = time.Now

// currentUserID pulls the authenticated user's id from the request context.
// Writes the 401 response itself when the claim is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "invalid user identity")
		return uuid.Nil, false
	}
	return userID, true
}

func currentRole(c *gin.Context) models.UserRole {
	roleStr, _ := utils.GetUserRoleFromContext(c)
	return models.UserRole(roleStr)
}

// pathID parses a uuid path parameter, writing the 400 response on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
