package utils

import (
	"context"
)

type contextKey string

const (
	CustomerIDKey contextKey = "customer_id"
)

// GetCustomerIDFromContext returns the opaque customer id set by the customer middleware.
func GetCustomerIDFromContext(ctx context.Context) (string, bool) {
	customerID, ok := ctx.Value(CustomerIDKey).(string)
	if !ok || customerID == "" {
		return "", false
	}
	return customerID, true
}

func SetCustomerContext(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, CustomerIDKey, customerID)
}
