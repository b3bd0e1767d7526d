package services

import (
	"context"
	"fmt"

	"deadyet/internal/models"
	"deadyet/internal/repositories/interfaces"
	"deadyet/internal/utils"
	"deadyet/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error)
	Add(ctx context.Context, userID primitive.ObjectID, request *models.AddContactRequest) (*models.EmergencyContact, error)
	Remove(ctx context.Context, userID, contactID primitive.ObjectID) error
}

type contactService struct {
	contacts interfaces.ContactRepository
	logger   *logger.Logger
}

func NewContactService(contacts interfaces.ContactRepository, logger *logger.Logger) ContactService {
	return &contactService{
		contacts: contacts,
		logger:   logger,
	}
}

func (s *contactService) List(ctx context.Context, userID primitive.ObjectID) ([]*models.EmergencyContact, error) {
	contacts, err := s.contacts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	return contacts, nil
}

func (s *contactService) Add(ctx context.Context, userID primitive.ObjectID, request *models.AddContactRequest) (*models.EmergencyContact, error) {
	email := utils.NormalizeEmail(request.Email)
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("malformed email %q: %w", request.Email, utils.ErrInvalidInput)
	}

	contact := &models.EmergencyContact{
		UserID: userID,
		Name:   request.Name,
		Email:  email,
		Phone:  request.Phone,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamUnavailable, err)
	}

	s.logger.WithUserID(userID).WithField("contact_id", contact.ID.Hex()).Info("Emergency contact added")

	return contact, nil
}

func (s *contactService) Remove(ctx context.Context, userID, contactID primitive.ObjectID) error {
	if err := s.contacts.Delete(ctx, userID, contactID); err != nil {
		return err
	}

	s.logger.WithUserID(userID).WithField("contact_id", contactID.Hex()).Info("Emergency contact removed")

	return nil
}
