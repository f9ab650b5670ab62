package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/packdesk/shipstation-client/internal/app/logger"
)

// OrderRecord is one raw order document as returned by the API. Bodies are
// decoded with json.Number so numeric ids survive a fetch-then-resubmit
// round trip unchanged.
type OrderRecord map[string]any

// OrderResponse is a read-only view over one or more order records, indexed
// by order id and by order number. Built once per API response; a logically
// updated order means building a new one.
type OrderResponse struct {
	ordersByID map[string]OrderRecord
	orderIDs   []string
	idToNumber map[string]string
}

// NewOrderResponse normalizes records into an OrderResponse. Any record
// missing orderId or orderNumber (nil records included) makes the whole
// model empty instead of failing partially.
func NewOrderResponse(records []OrderRecord) OrderResponse {
	response := OrderResponse{
		ordersByID: make(map[string]OrderRecord, len(records)),
		idToNumber: make(map[string]string, len(records)),
	}
	for _, record := range records {
		idValue, hasID := record["orderId"]
		numberValue, hasNumber := record["orderNumber"]
		if !hasID || !hasNumber {
			return OrderResponse{
				ordersByID: map[string]OrderRecord{},
				idToNumber: map[string]string{},
			}
		}
		id := stringifyField(idValue)
		number := stringifyField(numberValue)
		if existingID, ok := response.idByNumber(number); ok && existingID != id {
			logger.Log.Warnf("Order number %s is shared by orders %s and %s", number, existingID, id)
		}
		response.orderIDs = append(response.orderIDs, id)
		response.ordersByID[id] = record
		response.idToNumber[id] = number
	}
	return response
}

func stringifyField(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func (r OrderResponse) idByNumber(number string) (string, bool) {
	found := ""
	for _, id := range r.orderIDs {
		if r.idToNumber[id] == number {
			found = id
		}
	}
	return found, found != ""
}

func (r OrderResponse) IsEmpty() bool {
	return len(r.orderIDs) == 0
}

func (r OrderResponse) Count() int {
	return len(r.orderIDs)
}

// OrderIDs returns the order ids in the order the records were supplied.
func (r OrderResponse) OrderIDs() []string {
	ids := make([]string, len(r.orderIDs))
	copy(ids, r.orderIDs)
	return ids
}

// Order returns the record for id, or nil if the id is unknown.
func (r OrderResponse) Order(id string) OrderRecord {
	return r.ordersByID[id]
}

// OrderIDByNumber reverse-looks-up an order id by its order number. When two
// ids share a number the last supplied record wins; the empty string means
// no match.
func (r OrderResponse) OrderIDByNumber(number string) string {
	id, _ := r.idByNumber(number)
	return id
}

// IDToNumberMap returns a copy of the id to order number mapping.
func (r OrderResponse) IDToNumberMap() map[string]string {
	mapping := make(map[string]string, len(r.idToNumber))
	for id, number := range r.idToNumber {
		mapping[id] = number
	}
	return mapping
}
