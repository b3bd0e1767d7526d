package routes

import (
	"deadyet/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAlertRoutes sets up routes for alert dispatch and the sweep trigger
func SetupAlertRoutes(r *gin.RouterGroup, alertHandler *handlers.AlertHandler, auth, cronAuth gin.HandlerFunc) {
	alerts := r.Group("/alerts")
	{
		// Ad-hoc dispatch for testing delivery configuration
		alerts.POST("/test", auth, alertHandler.SendTestAlert)

		// Scheduler-facing surface
		alerts.POST("/sweep", cronAuth, alertHandler.TriggerSweep)
		alerts.GET("/overview", cronAuth, alertHandler.GetOverview)
	}
}
