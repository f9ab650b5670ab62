package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/packdesk/shipstation-client/internal/app/auth"
	"github.com/packdesk/shipstation-client/internal/app/client"
	"github.com/packdesk/shipstation-client/internal/app/handlers"
	"github.com/packdesk/shipstation-client/internal/app/logger"
	"github.com/packdesk/shipstation-client/internal/app/middlewares"
	"github.com/packdesk/shipstation-client/internal/app/service"
)

func WebhookRouter(credentials auth.Credentials, webhookService service.WebhookServiceInterface) chi.Router {
	var notificationHandler = handlers.NewWebhookNotificationHandler(webhookService)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.ValidationMiddleware)
	router.Use(middleware.Recoverer)

	router.Route("/webhooks", func(r chi.Router) {
		guardedGroup := r.Group(nil)
		guardedGroup.Use(middlewares.BasicAuth(credentials))
		guardedGroup.Post("/notify", notificationHandler.ServeHTTP)
	})
	return router
}

func Run(addr string, apiClient *client.Client, consumer service.NotificationConsumer) error {
	logger.Log.Infof("Initiating webhook listener at %s", addr)
	webhookService := service.NewWebhookService(apiClient, consumer)
	logger.Log.Info("Listener initiation completed, starting to serve")
	return http.ListenAndServe(addr, WebhookRouter(apiClient.Credentials(), webhookService))
}
