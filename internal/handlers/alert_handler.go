package handlers

import (
	"deadyet/internal/models"
	"deadyet/internal/services"
	"deadyet/internal/utils"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertService services.AlertService
	sweepService services.SweepService
}

func NewAlertHandler(alertService services.AlertService, sweepService services.SweepService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		sweepService: sweepService,
	}
}

// SendTestAlert dispatches an ad-hoc alert to a caller-supplied contact list
func (h *AlertHandler) SendTestAlert(c *gin.Context) {
	var request models.ManualAlertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if len(request.Contacts) == 0 {
		utils.BadRequestResponse(c, "No contacts provided")
		return
	}

	report, err := h.alertService.Dispatch(c.Request.Context(), request.UserName, request.LastCheckIn, request.Contacts)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Alert dispatch finished", report)
}

// TriggerSweep runs the missed-check-in sweep; invoked by the scheduler
func (h *AlertHandler) TriggerSweep(c *gin.Context) {
	report, err := h.sweepService.Run(c.Request.Context())
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Sweep completed", report)
}

// GetOverview reports every user's check-in status, worst first
func (h *AlertHandler) GetOverview(c *gin.Context) {
	report, err := h.sweepService.Overview(c.Request.Context())
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Status overview retrieved", report)
}
