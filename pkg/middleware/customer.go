package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

// CustomerIDHeader carries the customer identity forwarded by the identity provider
// in front of the service.
const CustomerIDHeader = "X-Customer-ID"

// Customer middleware untuk membaca identitas customer dari gateway
func Customer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID := strings.TrimSpace(r.Header.Get(CustomerIDHeader))
			if customerID == "" {
				logger.Warn("Missing customer identity",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				utils.ResponseUnauthorized(w, "Missing customer identity")
				return
			}

			ctx := utils.SetCustomerContext(r.Context(), customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
