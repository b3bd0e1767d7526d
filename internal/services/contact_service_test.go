package services

import (
	"context"
	"testing"

	"deadyet/internal/models"
	"deadyet/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddContactNormalizesEmail(t *testing.T) {
	repo := newFakeContactRepo()
	service := NewContactService(repo, testLogger())
	userID := primitive.NewObjectID()

	contact, err := service.Add(context.Background(), userID, &models.AddContactRequest{
		Name:  "Bob",
		Email: "  Bob@Example.COM ",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", contact.Email)
	assert.False(t, contact.ID.IsZero())

	contacts, err := service.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
}

func TestAddContactRejectsMalformedEmail(t *testing.T) {
	service := NewContactService(newFakeContactRepo(), testLogger())

	for _, email := range []string{"", "not-an-email", "missing@domain", "@example.com"} {
		_, err := service.Add(context.Background(), primitive.NewObjectID(), &models.AddContactRequest{
			Name:  "Bob",
			Email: email,
		})
		assert.ErrorIs(t, err, utils.ErrInvalidInput, "email %q", email)
	}
}

func TestRemoveContact(t *testing.T) {
	repo := newFakeContactRepo()
	service := NewContactService(repo, testLogger())
	userID := primitive.NewObjectID()

	contact, err := service.Add(context.Background(), userID, &models.AddContactRequest{
		Name:  "Bob",
		Email: "bob@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, service.Remove(context.Background(), userID, contact.ID))

	contacts, err := service.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestRemoveContactOwnedBySomeoneElse(t *testing.T) {
	repo := newFakeContactRepo()
	service := NewContactService(repo, testLogger())
	owner := primitive.NewObjectID()

	contact, err := service.Add(context.Background(), owner, &models.AddContactRequest{
		Name:  "Bob",
		Email: "bob@example.com",
	})
	require.NoError(t, err)

	err = service.Remove(context.Background(), primitive.NewObjectID(), contact.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
