package middlewares

import (
	"net/http"

	"github.com/packdesk/shipstation-client/internal/app/auth"
	"github.com/packdesk/shipstation-client/internal/app/logger"
)

// BasicAuth rejects webhook callbacks whose Authorization header does not
// prove possession of the configured key/secret pair.
func BasicAuth(credentials auth.Credentials) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				logger.Log.Warn("No Authorization header on webhook callback")
				http.Error(writer, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !credentials.Authorize(authHeader) {
				http.Error(writer, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(writer, request)
		}
		return http.HandlerFunc(fn)
	}
}
