package handlers

import (
	"deadyet/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUser pulls the identity set by the auth middleware. It writes the
// 401 response itself when the context is missing or malformed.
func currentUser(c *gin.Context) (primitive.ObjectID, string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, "", false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, "", false
	}

	username := c.GetString("username")

	return userID, username, true
}
