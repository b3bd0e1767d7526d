package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"deadyet/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthRequired(secret), func(c *gin.Context) {
		userID := c.MustGet("user_id").(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{
			"user_id":  userID.Hex(),
			"username": c.GetString("username"),
		})
	})
	return router
}

func TestAuthRequired(t *testing.T) {
	secret := "test-secret"
	router := authTestRouter(secret)
	userID := primitive.NewObjectID()

	token, err := utils.GenerateToken(userID, "alice", secret)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		expected   int
	}{
		{name: "valid token", authHeader: "Bearer " + token, expected: http.StatusOK},
		{name: "missing header", authHeader: "", expected: http.StatusUnauthorized},
		{name: "not a bearer token", authHeader: token, expected: http.StatusUnauthorized},
		{name: "tampered token", authHeader: "Bearer " + token + "x", expected: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expected, recorder.Code)
			if tt.expected == http.StatusOK {
				assert.Contains(t, recorder.Body.String(), userID.Hex())
				assert.Contains(t, recorder.Body.String(), "alice")
			}
		})
	}
}

func TestCronAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/sweep", CronAuthRequired("cron-secret"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name     string
		secret   string
		expected int
	}{
		{name: "correct secret", secret: "cron-secret", expected: http.StatusOK},
		{name: "wrong secret", secret: "guess", expected: http.StatusForbidden},
		{name: "missing secret", secret: "", expected: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/sweep", nil)
			if tt.secret != "" {
				request.Header.Set("X-Cron-Secret", tt.secret)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expected, recorder.Code)
		})
	}
}

func TestCronAuthRequiredUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/sweep", CronAuthRequired(""), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// An empty configured secret locks the endpoint instead of opening it.
	request := httptest.NewRequest(http.MethodPost, "/sweep", nil)
	request.Header.Set("X-Cron-Secret", "")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
