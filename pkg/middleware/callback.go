package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"github.com/webdevRafa/rancho-de-paloma-blanca-sub000/pkg/utils"
)

// CallbackTokenHeader carries the shared secret of the payment provider.
const CallbackTokenHeader = "X-Callback-Token"

// PaymentCallback only lets requests through whose token matches secret.
// An empty secret closes the callback routes entirely.
func PaymentCallback(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				logger.Error("Payment callback rejected: PAYMENT_CALLBACK_SECRET is not configured")
				utils.ResponseServiceUnavailable(w, "Payment callbacks are disabled", 0, nil)
				return
			}

			token := r.Header.Get(CallbackTokenHeader)
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logger.Warn("Payment callback with invalid token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseUnauthorized(w, "Invalid callback token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
