package handlers

import (
	"strconv"

	"deadyet/internal/models"
	"deadyet/internal/services"
	"deadyet/internal/utils"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	checkInService services.CheckInService
}

func NewCheckInHandler(checkInService services.CheckInService) *CheckInHandler {
	return &CheckInHandler{
		checkInService: checkInService,
	}
}

// CheckIn records a check-in for the authenticated user
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	record, profile, err := h.checkInService.CheckIn(c.Request.Context(), userID, username)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Check-in recorded", gin.H{
		"record":  record,
		"profile": profile,
	})
}

// GetHistory returns the user's recent check-in records
func (h *CheckInHandler) GetHistory(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	limit := models.HistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.BadRequestResponse(c, "Invalid limit: "+raw)
			return
		}
		limit = parsed
	}

	records, err := h.checkInService.History(c.Request.Context(), userID, limit)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Check-in history retrieved", gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetStatus returns the user's profile with its status derived at read time
func (h *CheckInHandler) GetStatus(c *gin.Context) {
	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.checkInService.Profile(c.Request.Context(), userID, username)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Status retrieved", profile)
}
