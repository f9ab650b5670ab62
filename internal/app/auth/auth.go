package auth

import (
	"encoding/base64"
	"strings"

	"github.com/packdesk/shipstation-client/internal/app/logger"
)

const basicPrefix = "Basic "

// Credentials holds an API key/secret pair. The Authorization header value
// is derived once at construction and reused for every outbound call.
type Credentials struct {
	key    string
	secret string
	header string
}

func NewCredentials(key string, secret string) Credentials {
	encoded := base64.StdEncoding.EncodeToString([]byte(key + ":" + secret))
	return Credentials{
		key:    key,
		secret: secret,
		header: basicPrefix + encoded,
	}
}

func (c Credentials) Header() string {
	return c.header
}

func stripBasicPrefix(authString string) string {
	if len(authString) >= len(basicPrefix) && strings.EqualFold(authString[:len(basicPrefix)], basicPrefix) {
		return authString[len(basicPrefix):]
	}
	return authString
}

// Authorize reports whether authString proves possession of this key/secret
// pair. Malformed input (undecodable base64, payload without a colon) is
// unauthorized, never a panic.
func (c Credentials) Authorize(authString string) bool {
	decoded, err := base64.StdEncoding.DecodeString(stripBasicPrefix(authString))
	if err != nil {
		logger.Log.Errorf("Authorization failed: auth string is not valid base64: %v", err)
		return false
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) < 2 {
		logger.Log.Error("Authorization failed: decoded auth string has no key:secret separator")
		return false
	}
	if parts[0] != c.key || parts[1] != c.secret {
		logger.Log.Error("Authorization failed: given credentials do not match")
		return false
	}
	return true
}
