package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/packdesk/shipstation-client/internal/app/auth"
	"github.com/packdesk/shipstation-client/internal/app/config"
	"github.com/packdesk/shipstation-client/internal/app/logger"
	"github.com/packdesk/shipstation-client/internal/app/models"
	"github.com/packdesk/shipstation-client/internal/app/ratelimit"
	"github.com/packdesk/shipstation-client/internal/app/routes"
)

const (
	DefaultWebhookEvent  = "ORDER_NOTIFY"
	DefaultWaitingStatus = "awaiting_shipment"
)

var ErrRateLimitExceeded = errors.New("api request limit reached")
var ErrUpstreamRejected = errors.New("api rejected the request")
var ErrMalformedResponse = errors.New("api response is missing expected fields")
var ErrOrderNotFound = errors.New("order could not be fetched")
var ErrOrderNotUpdatable = errors.New("order status does not allow updates")

// updatableOrderStatuses are the only statuses the update endpoint accepts.
var updatableOrderStatuses = []string{
	"awaiting_payment",
	"awaiting_shipment",
	"on_hold",
}

// serverManagedOrderKeys are rejected by the order update endpoint and must
// be stripped from a fetched order before resubmitting it.
var serverManagedOrderKeys = map[string]bool{
	"createDate":                true,
	"modifyDate":                true,
	"customerId":                true,
	"orderTotal":                true,
	"holdUntilDate":             true,
	"userId":                    true,
	"externallyFulfilled":       true,
	"externallyFulfilledBy":     true,
	"externallyFulfilledById":   true,
	"externallyFulfilledByName": true,
	"labelMessages":             true,
}

type ClientInterface interface {
	GetStores(showInactive bool) ([]map[string]any, error)
	GetOrder(id string) (models.OrderResponse, error)
	GetAllOrders(params map[string]string) (models.OrderResponse, error)
	GetOrdersByNumber(number string) (models.OrderResponse, error)
	GetOrderIDsByNumber(number string) ([]string, error)
	GetWaitingOrders(status string) (models.OrderResponse, error)
	CreateWebhook(targetURL string, event string, storeID string, friendlyName string) error
	ListWebhooks() ([]map[string]any, error)
	DeleteWebhook(id string) error
	UpdateOrderNotes(id string, internalNote string, customNote string, customNote2 string, customNote3 string) error
	HoldOrder(id string, holdUntilDate string) error
}

// Client talks to the order management API. One outbound request per
// operation, no retries; failures degrade to empty results with a logged
// cause and a sentinel error. The embedded rate limit tracker is not
// synchronized, so concurrent callers must serialize access.
type Client struct {
	config      *config.Config
	http        *resty.Client
	credentials auth.Credentials
	routes      routes.Builder
	limits      *ratelimit.Tracker
}

func New(cfg *config.Config) *Client {
	credentials := auth.NewCredentials(cfg.APIKey, cfg.APISecret)
	httpClient := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Authorization", credentials.Header())
	return &Client{
		config:      cfg,
		http:        httpClient,
		credentials: credentials,
		routes:      routes.NewBuilder(cfg.Host),
		limits:      ratelimit.NewTracker(),
	}
}

func (c *Client) Credentials() auth.Credentials {
	return c.credentials
}

func (c *Client) Limits() *ratelimit.Tracker {
	return c.limits
}

func (c *Client) atMax() bool {
	if c.limits.AtMax() {
		logger.Log.Errorf("API limit reached, try again after %d seconds", c.limits.ResetSeconds())
		return true
	}
	return false
}

func (c *Client) refreshLimits(response *resty.Response) {
	if err := c.limits.UpdateFromHeaders(response.Header()); err != nil {
		logger.Log.Warnf("Could not update rate limit counters: %v", err)
	}
}

// decodeJSON unmarshals with json.Number so numeric order ids keep their
// exact textual form through a fetch-transform-resubmit cycle.
func decodeJSON(body []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	return decoder.Decode(target)
}

func toRecords(items []any) []models.OrderRecord {
	records := make([]models.OrderRecord, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		records = append(records, models.OrderRecord(record))
	}
	return records
}

func (c *Client) GetStores(showInactive bool) ([]map[string]any, error) {
	url := c.routes.BuildURL("stores", "")
	response, err := c.http.R().
		SetQueryParam("showInactive", strconv.FormatBool(showInactive)).
		Get(url)
	if err != nil {
		logger.Log.Errorf("Error calling %s: %v", url, err)
		return []map[string]any{}, err
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to get stores: %d -- %s", response.StatusCode(), response.String())
		return []map[string]any{}, ErrUpstreamRejected
	}
	c.refreshLimits(response)
	var stores []map[string]any
	if decodeErr := decodeJSON(response.Body(), &stores); decodeErr != nil {
		logger.Log.Errorf("Could not decode stores response: %v", decodeErr)
		return []map[string]any{}, ErrMalformedResponse
	}
	return stores, nil
}

func (c *Client) GetOrder(id string) (models.OrderResponse, error) {
	url := c.routes.BuildURL("orders", id)
	response, err := c.http.R().Get(url)
	if err != nil {
		logger.Log.Errorf("Error calling %s: %v", url, err)
		return models.NewOrderResponse(nil), err
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to get order %s: %d -- %s", id, response.StatusCode(), response.String())
		return models.NewOrderResponse(nil), ErrUpstreamRejected
	}
	c.refreshLimits(response)
	var record models.OrderRecord
	if decodeErr := decodeJSON(response.Body(), &record); decodeErr != nil {
		logger.Log.Errorf("Could not decode order %s: %v", id, decodeErr)
		return models.NewOrderResponse(nil), ErrMalformedResponse
	}
	return models.NewOrderResponse([]models.OrderRecord{record}), nil
}

func (c *Client) GetAllOrders(params map[string]string) (models.OrderResponse, error) {
	url := c.routes.BuildURL("orders", "")
	response, err := c.http.R().SetQueryParams(params).Get(url)
	if err != nil {
		logger.Log.Errorf("Error calling %s: %v", url, err)
		return models.NewOrderResponse(nil), err
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to get orders: %d -- %s", response.StatusCode(), response.String())
		return models.NewOrderResponse(nil), ErrUpstreamRejected
	}
	c.refreshLimits(response)
	var body map[string]any
	if decodeErr := decodeJSON(response.Body(), &body); decodeErr != nil {
		logger.Log.Errorf("Could not decode orders response: %v", decodeErr)
		return models.NewOrderResponse(nil), ErrMalformedResponse
	}
	items, ok := body["orders"].([]any)
	if !ok {
		logger.Log.Error("Orders response carries no orders array")
		return models.NewOrderResponse(nil), ErrMalformedResponse
	}
	records := toRecords(items)
	if records == nil && len(items) > 0 {
		logger.Log.Error("Orders response carries non-object entries in the orders array")
		return models.NewOrderResponse(nil), ErrMalformedResponse
	}
	return models.NewOrderResponse(records), nil
}

func (c *Client) GetOrdersByNumber(number string) (models.OrderResponse, error) {
	orders, err := c.GetAllOrders(map[string]string{"orderNumber": number})
	if err != nil {
		logger.Log.Errorf("Failed to get orders with order number %s", number)
		return orders, err
	}
	return orders, nil
}

func (c *Client) GetOrderIDsByNumber(number string) ([]string, error) {
	orders, err := c.GetAllOrders(map[string]string{"orderNumber": number})
	if err != nil {
		logger.Log.Errorf("Failed to get orders with order number %s", number)
		return []string{}, err
	}
	if orders.Count() >= 2 {
		logger.Log.Warnf("Ambiguous number of orders for order number %s", number)
	}
	return orders.OrderIDs(), nil
}

func (c *Client) GetWaitingOrders(status string) (models.OrderResponse, error) {
	if status == "" {
		status = DefaultWaitingStatus
	}
	orders, err := c.GetAllOrders(map[string]string{"orderStatus": status})
	if err != nil {
		logger.Log.Errorf("Unable to get orders with %s status", status)
		return orders, err
	}
	return orders, nil
}

func (c *Client) CreateWebhook(targetURL string, event string, storeID string, friendlyName string) error {
	if c.atMax() {
		return ErrRateLimitExceeded
	}
	if event == "" {
		event = DefaultWebhookEvent
	}
	body := map[string]any{"target_url": targetURL, "event": event}
	if storeID != "" {
		body["store_id"] = storeID
	}
	if friendlyName != "" {
		body["friendly_name"] = friendlyName
	}
	url := c.routes.BuildURL("webhook_subscribe", "")
	response, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		logger.Log.Errorf("Error calling %s: %v", url, err)
		return err
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to create webhook: %d -- %s", response.StatusCode(), response.String())
		return ErrUpstreamRejected
	}
	c.refreshLimits(response)
	logger.Log.Infof("Webhook created: %s", response.String())
	return nil
}

func (c *Client) ListWebhooks() ([]map[string]any, error) {
	if c.atMax() {
		return []map[string]any{}, ErrRateLimitExceeded
	}
	url := c.routes.BuildURL("webhooks", "")
	response, err := c.http.R().Get(url)
	if err != nil {
		logger.Log.Errorf("Error calling %s: %v", url, err)
		return []map[string]any{}, err
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to list webhooks: %d -- %s", response.StatusCode(), response.String())
		return []map[string]any{}, ErrUpstreamRejected
	}
	c.refreshLimits(response)
	var body struct {
		Webhooks []map[string]any `json:"webhooks"`
	}
	if decodeErr := decodeJSON(response.Body(), &body); decodeErr != nil || body.Webhooks == nil {
		logger.Log.Error("Webhooks response carries no webhooks array")
		return []map[string]any{}, ErrMalformedResponse
	}
	return body.Webhooks, nil
}

func (c *Client) DeleteWebhook(id string) error {
	if c.atMax() {
		return ErrRateLimitExceeded
	}
	url := c.routes.BuildURL("webhook_delete", id)
	response, err := c.http.R().Delete(url)
	if err != nil {
		logger.Log.Errorf("Error calling %s: %v", url, err)
		return err
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to delete webhook %s: %d -- %s", id, response.StatusCode(), response.String())
		return ErrUpstreamRejected
	}
	c.refreshLimits(response)
	return nil
}

func isOrderUpdatable(record models.OrderRecord) bool {
	status, ok := record["orderStatus"].(string)
	if !ok {
		return false
	}
	for _, allowed := range updatableOrderStatuses {
		if status == allowed {
			return true
		}
	}
	return false
}

func stripServerManagedKeys(record models.OrderRecord) models.OrderRecord {
	stripped := make(models.OrderRecord, len(record))
	for key, value := range record {
		if !serverManagedOrderKeys[key] {
			stripped[key] = value
		}
	}
	return stripped
}

func setCustomNote(body models.OrderRecord, key string, note string) {
	if note == "" {
		return
	}
	options, ok := body["advancedOptions"].(map[string]any)
	if !ok {
		options = map[string]any{}
		body["advancedOptions"] = options
	}
	options[key] = note
}

func (c *Client) preUpdateOrderChecks(orders models.OrderResponse) error {
	if orders.IsEmpty() {
		logger.Log.Error("Unable to update order: order could not be fetched")
		return ErrOrderNotFound
	}
	if c.atMax() {
		return ErrRateLimitExceeded
	}
	for _, id := range orders.OrderIDs() {
		record := orders.Order(id)
		if !isOrderUpdatable(record) {
			logger.Log.Errorf("Order %v is not updatable in %v status",
				record["orderNumber"], record["orderStatus"])
			return ErrOrderNotUpdatable
		}
	}
	return nil
}

// UpdateOrderNotes rewrites the note fields of an order. The update endpoint
// only accepts whole-document replacement, so the order is fetched,
// validated, stripped of server-managed keys, and resubmitted in full.
// A timed-out call leaves the remote order unmodified.
func (c *Client) UpdateOrderNotes(id string, internalNote string, customNote string, customNote2 string, customNote3 string) error {
	orders, err := c.GetOrder(id)
	if err != nil || orders.IsEmpty() {
		logger.Log.Errorf("Unable to get order %s for update", id)
		return ErrOrderNotFound
	}
	if checkErr := c.preUpdateOrderChecks(orders); checkErr != nil {
		return checkErr
	}
	body := stripServerManagedKeys(orders.Order(orders.OrderIDs()[0]))
	body["internalNotes"] = internalNote
	setCustomNote(body, "customField", customNote)
	setCustomNote(body, "customField2", customNote2)
	setCustomNote(body, "customField3", customNote3)

	url := c.routes.BuildURL("order_update", "")
	response, postErr := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if postErr != nil {
		logger.Log.Errorf("Error calling %s: %v", url, postErr)
		return postErr
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to update order %s: %d -- %s", id, response.StatusCode(), response.String())
		return ErrUpstreamRejected
	}
	c.refreshLimits(response)
	return nil
}

// HoldOrder parks an order until holdUntilDate (YYYY-MM-DD). The date is not
// validated locally; a malformed one surfaces as an upstream rejection. The
// order's existence is not checked beforehand.
func (c *Client) HoldOrder(id string, holdUntilDate string) error {
	url := c.routes.BuildURL("order_hold", "")
	body := map[string]any{"orderID": id, "holdUntilDate": holdUntilDate}
	response, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		logger.Log.Errorf("Error calling %s: %v", url, err)
		return err
	}
	if !response.IsSuccess() {
		logger.Log.Errorf("Failed to hold order %s: %d -- %s", id, response.StatusCode(), response.String())
		return ErrUpstreamRejected
	}
	c.refreshLimits(response)
	return nil
}
