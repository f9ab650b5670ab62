package models

// WebhookNotification is the payload the API POSTs to a subscribed target
// URL. The resource_url points at the batch of resources that triggered the
// event and is fetched back through the API client.
type WebhookNotification struct {
	ResourceURL  string `json:"resource_url"`
	ResourceType string `json:"resource_type"`
}
