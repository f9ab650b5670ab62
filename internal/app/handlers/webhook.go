package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/packdesk/shipstation-client/internal/app/logger"
	"github.com/packdesk/shipstation-client/internal/app/models"
	"github.com/packdesk/shipstation-client/internal/app/service"
)

type WebhookNotificationHandler struct {
	webhookService service.WebhookServiceInterface
}

func NewWebhookNotificationHandler(webhookService service.WebhookServiceInterface) *WebhookNotificationHandler {
	return &WebhookNotificationHandler{webhookService: webhookService}
}

func (h WebhookNotificationHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if contentType := request.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
		logger.Log.Infoln("Inappropriate content type passed")
		http.Error(writer, "Only application/json content type is allowed", http.StatusBadRequest)
		return
	}
	var notification models.WebhookNotification
	if err := json.NewDecoder(request.Body).Decode(&notification); err != nil {
		logger.Log.Warnf("Couldn't decode the notification payload: %v", err)
		http.Error(writer, "Couldn't decode the notification payload", http.StatusBadRequest)
		return
	}
	if err := h.webhookService.HandleNotification(notification); err != nil {
		// The upstream redelivers on non-2xx; a resolution failure is
		// logged but still acknowledged.
		logger.Log.Warnf("Couldn't handle the notification: %v", err)
	}
	writer.WriteHeader(http.StatusNoContent)
}
