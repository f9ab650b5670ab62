package routes

import "strings"

// pathsByResource maps a symbolic resource name to its API path.
// Shared read-only across all builders.
var pathsByResource = map[string]string{
	"orders":            "/orders/",
	"stores":            "/stores/",
	"webhooks":          "/webhooks/",
	"webhook_subscribe": "/webhooks/subscribe/",
	"webhook_delete":    "/webhooks/",
	"order_update":      "/orders/createorder/",
	"order_hold":        "/orders/holduntil/",
}

type Builder struct {
	host string
}

func NewBuilder(host string) Builder {
	return Builder{host: host}
}

// BuildURL composes the full URL for a resource. Unknown resources resolve
// to the bare host URL. A non-empty suffix is appended verbatim after the
// resolved path, typically to target a specific resource id. Hosts without
// an explicit scheme get https.
func (b Builder) BuildURL(resource string, suffix string) string {
	url := b.host
	if !strings.Contains(url, "://") {
		url = "https://" + url
	}
	if path, ok := pathsByResource[strings.ToLower(resource)]; ok {
		url += path
	}
	if suffix != "" {
		url += suffix
	}
	return url
}
