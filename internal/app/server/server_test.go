package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/packdesk/shipstation-client/internal/app/auth"
	"github.com/packdesk/shipstation-client/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	notifications []models.WebhookNotification
}

func (r *recordingService) HandleNotification(notification models.WebhookNotification) error {
	r.notifications = append(r.notifications, notification)
	return nil
}

func postNotification(t *testing.T, router http.Handler, authHeader string, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, "/webhooks/notify", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestWebhookRouter_AuthorizedNotification(t *testing.T) {
	credentials := auth.NewCredentials("fake-key", "fake-secret")
	webhookService := &recordingService{}
	router := WebhookRouter(credentials, webhookService)

	body := `{"resource_url": "https://ssapi.shipstation.com/orders?importBatch=1abc", "resource_type": "ORDER_NOTIFY"}`
	recorder := postNotification(t, router, credentials.Header(), body)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	require.Len(t, webhookService.notifications, 1)
	assert.Equal(t, "ORDER_NOTIFY", webhookService.notifications[0].ResourceType)
	assert.Equal(t, "https://ssapi.shipstation.com/orders?importBatch=1abc", webhookService.notifications[0].ResourceURL)
}

func TestWebhookRouter_RejectsBadCredentials(t *testing.T) {
	credentials := auth.NewCredentials("fake-key", "fake-secret")
	webhookService := &recordingService{}
	router := WebhookRouter(credentials, webhookService)

	wrong := auth.NewCredentials("fake-key", "other-secret")
	recorder := postNotification(t, router, wrong.Header(), `{"resource_url": "x"}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, webhookService.notifications)
}

func TestWebhookRouter_RejectsMissingAuthorization(t *testing.T) {
	credentials := auth.NewCredentials("fake-key", "fake-secret")
	webhookService := &recordingService{}
	router := WebhookRouter(credentials, webhookService)

	recorder := postNotification(t, router, "", `{"resource_url": "x"}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, webhookService.notifications)
}

func TestWebhookRouter_RejectsMalformedPayload(t *testing.T) {
	credentials := auth.NewCredentials("fake-key", "fake-secret")
	webhookService := &recordingService{}
	router := WebhookRouter(credentials, webhookService)

	recorder := postNotification(t, router, credentials.Header(), `{not json`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, webhookService.notifications)
}

func TestWebhookRouter_RejectsWrongContentType(t *testing.T) {
	credentials := auth.NewCredentials("fake-key", "fake-secret")
	webhookService := &recordingService{}
	router := WebhookRouter(credentials, webhookService)

	request := httptest.NewRequest(http.MethodPost, "/webhooks/notify", strings.NewReader("resource_url=x"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Authorization", credentials.Header())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, webhookService.notifications)
}
