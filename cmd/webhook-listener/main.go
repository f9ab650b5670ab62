package main

import (
	"github.com/packdesk/shipstation-client/internal/app/client"
	"github.com/packdesk/shipstation-client/internal/app/config"
	"github.com/packdesk/shipstation-client/internal/app/logger"
	"github.com/packdesk/shipstation-client/internal/app/server"
)

func main() {
	if err := config.ParseFlags(); err != nil {
		logger.Log.Fatalf("Error parsing configuration: %v", err)
	}
	if err := logger.Initialize(config.Settings.LogLevel); err != nil {
		logger.Log.Fatalf("Error initializing logger: %v", err)
	}
	if config.Settings.APIKey == "" || config.Settings.APISecret == "" {
		logger.Log.Fatal("API key and secret must be provided")
	}
	apiClient := client.New(&config.Settings)
	if err := server.Run(config.Settings.Address, apiClient, nil); err != nil {
		logger.Log.Fatalf("Webhook listener stopped: %v", err)
	}
}
