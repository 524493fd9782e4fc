package controllers

import (
	"grocerystore/models"
	"grocerystore/utils"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user from the context. On failure the
// response has already been written.
func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.BadRequest(c, "Invalid user in context", nil)
		return models.User{}, false
	}
	return user, true
}
