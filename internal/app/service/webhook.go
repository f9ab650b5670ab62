package service

import (
	"errors"
	"net/url"

	"github.com/packdesk/shipstation-client/internal/app/client"
	"github.com/packdesk/shipstation-client/internal/app/logger"
	"github.com/packdesk/shipstation-client/internal/app/models"
)

var ErrEmptyResourceURL = errors.New("notification carries no resource_url")

// NotificationConsumer receives the orders resolved from a webhook
// notification.
type NotificationConsumer func(notification models.WebhookNotification, orders models.OrderResponse)

type WebhookServiceInterface interface {
	HandleNotification(notification models.WebhookNotification) error
}

// WebhookService resolves inbound notifications: the notification only
// carries a resource_url, so the referenced order batch is fetched back
// through the API client before being handed to the consumer.
type WebhookService struct {
	client   client.ClientInterface
	consumer NotificationConsumer
}

func NewWebhookService(apiClient client.ClientInterface, consumer NotificationConsumer) *WebhookService {
	return &WebhookService{client: apiClient, consumer: consumer}
}

func (w WebhookService) HandleNotification(notification models.WebhookNotification) error {
	if notification.ResourceURL == "" {
		logger.Log.Error("Webhook notification carries no resource_url")
		return ErrEmptyResourceURL
	}
	resource, err := url.Parse(notification.ResourceURL)
	if err != nil {
		logger.Log.Errorf("Could not parse resource_url %s: %v", notification.ResourceURL, err)
		return err
	}
	params := map[string]string{}
	for key, values := range resource.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	orders, err := w.client.GetAllOrders(params)
	if err != nil {
		logger.Log.Warnf("Could not resolve %s notification: %v", notification.ResourceType, err)
		return err
	}
	logger.Log.Infof("Webhook %s resolved to %d orders", notification.ResourceType, orders.Count())
	if w.consumer != nil {
		w.consumer(notification, orders)
	}
	return nil
}
