package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"deadyet/internal/models"
	"deadyet/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAlertService struct {
	lastUserName string
	lastContacts []models.AlertContact
	report       *models.DispatchReport
	err          error
}

func (s *stubAlertService) Dispatch(ctx context.Context, userName, lastCheckIn string, contacts []models.AlertContact) (*models.DispatchReport, error) {
	s.lastUserName = userName
	s.lastContacts = contacts
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type stubSweepService struct {
	sweepReport    *models.SweepReport
	overviewReport *models.OverviewReport
	err            error
}

func (s *stubSweepService) Run(ctx context.Context) (*models.SweepReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sweepReport, nil
}

func (s *stubSweepService) Overview(ctx context.Context) (*models.OverviewReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.overviewReport, nil
}

func alertTestRouter(alerts *stubAlertService, sweeps *stubSweepService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAlertHandler(alerts, sweeps)

	router := gin.New()
	router.POST("/alerts/test", handler.SendTestAlert)
	router.POST("/alerts/sweep", handler.TriggerSweep)
	router.GET("/alerts/overview", handler.GetOverview)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestSendTestAlert(t *testing.T) {
	alerts := &stubAlertService{report: &models.DispatchReport{
		Sent: 1,
		Contacts: []models.ContactResult{
			{Name: "Bob", Email: "bob@example.com", Sent: true, ReceiptID: "re_123"},
		},
	}}
	router := alertTestRouter(alerts, &stubSweepService{})

	recorder := postJSON(t, router, "/alerts/test", models.ManualAlertRequest{
		Contacts: []models.AlertContact{{Name: "Bob", Email: "bob@example.com"}},
		UserName: "alice",
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "alice", alerts.lastUserName)
	require.Len(t, alerts.lastContacts, 1)
	assert.Contains(t, recorder.Body.String(), "re_123")
}

func TestSendTestAlertEmptyContacts(t *testing.T) {
	alerts := &stubAlertService{}
	router := alertTestRouter(alerts, &stubSweepService{})

	recorder := postJSON(t, router, "/alerts/test", models.ManualAlertRequest{UserName: "alice"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "No contacts provided")
	assert.Nil(t, alerts.lastContacts)
}

func TestSendTestAlertMalformedBody(t *testing.T) {
	router := alertTestRouter(&stubAlertService{}, &stubSweepService{})

	request := httptest.NewRequest(http.MethodPost, "/alerts/test", bytes.NewReader([]byte("{not json")))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTriggerSweep(t *testing.T) {
	sweeps := &stubSweepService{sweepReport: &models.SweepReport{
		UsersScanned:  2,
		UsersNotified: 1,
		UsersSkipped:  1,
	}}
	router := alertTestRouter(&stubAlertService{}, sweeps)

	recorder := postJSON(t, router, "/alerts/sweep", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, utils.StatusSuccess, response.Status)
}

func TestTriggerSweepUpstreamDown(t *testing.T) {
	sweeps := &stubSweepService{err: utils.ErrUpstreamUnavailable}
	router := alertTestRouter(&stubAlertService{}, sweeps)

	recorder := postJSON(t, router, "/alerts/sweep", nil)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestGetOverview(t *testing.T) {
	sweeps := &stubSweepService{overviewReport: &models.OverviewReport{
		Summary: models.OverviewSummary{Total: 1, Danger: 1},
		Users: []models.UserStatusInfo{
			{Username: "alice", Status: models.StatusDanger},
		},
	}}
	router := alertTestRouter(&stubAlertService{}, sweeps)

	request := httptest.NewRequest(http.MethodGet, "/alerts/overview", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"danger"`)
}
