package handlers

import (
	"deadyet/internal/models"
	"deadyet/internal/services"
	"deadyet/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// ListContacts returns the user's emergency contacts
func (h *ContactHandler) ListContacts(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Emergency contacts retrieved", gin.H{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// AddContact registers a new emergency contact
func (h *ContactHandler) AddContact(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var request models.AddContactRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	contact, err := h.contactService.Add(c.Request.Context(), userID, &request)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Emergency contact added", contact)
}

// RemoveContact deletes an emergency contact owned by the user
func (h *ContactHandler) RemoveContact(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	contactID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.Remove(c.Request.Context(), userID, contactID); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.NoContentResponse(c)
}
