package routes

import (
	"deadyet/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupCheckInRoutes sets up routes for check-in functionality
func SetupCheckInRoutes(r *gin.RouterGroup, checkInHandler *handlers.CheckInHandler, auth gin.HandlerFunc) {
	checkins := r.Group("/checkins")
	checkins.Use(auth)
	{
		checkins.POST("/", checkInHandler.CheckIn)
		checkins.GET("/", checkInHandler.GetHistory)
		checkins.GET("/status", checkInHandler.GetStatus)
	}
}
