package routes

import (
	"deadyet/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes sets up routes for emergency contact management
func SetupContactRoutes(r *gin.RouterGroup, contactHandler *handlers.ContactHandler, auth gin.HandlerFunc) {
	contacts := r.Group("/contacts")
	contacts.Use(auth)
	{
		contacts.GET("/", contactHandler.ListContacts)
		contacts.POST("/", contactHandler.AddContact)
		contacts.DELETE("/:id", contactHandler.RemoveContact)
	}
}
