package util

import (
	"context"

	"github.com/google/uuid"
)

type key string

const (
	requestIDKey = key("x-request-id")
	symbolKey    = key("symbol")
)

// WithRequestID returns a context with request id.
// It will generate a new request id if the provided id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = generate()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns request id from context
// will return empty string if not present
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithSymbol returns a context tagged with the symbol being processed.
func WithSymbol(ctx context.Context, symbol string) context.Context {
	return context.WithValue(ctx, symbolKey, symbol)
}

// GetSymbol returns the symbol from context
// will return empty string if not present
func GetSymbol(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	symbol, _ := ctx.Value(symbolKey).(string)
	return symbol
}

// generate returns a uuid-v4 string to use as request id
func generate() string {
	return uuid.NewString()
}
