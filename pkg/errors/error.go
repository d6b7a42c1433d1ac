package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// InvalidOrderError is returned when an order request fails validation.
	InvalidOrderError ErrorCode = "invalid_order"
	// UnknownSymbolError is returned when no book is registered for a symbol.
	UnknownSymbolError ErrorCode = "unknown_symbol"
	// DuplicateSymbolError is returned when a symbol is registered twice.
	DuplicateSymbolError ErrorCode = "duplicate_symbol"
	// CancelNotFoundError marks a cancel of an unknown or terminal order.
	CancelNotFoundError ErrorCode = "cancel_not_found"
	// OrderNotFoundError is returned by lookups of an order the venue does not know.
	OrderNotFoundError ErrorCode = "order_not_found"
	// InvariantViolationError is raised when matching leaves a book in an impossible state.
	InvariantViolationError ErrorCode = "internal_invariant_violation"
	// SymbolHaltedError is returned for every operation on a symbol halted by an invariant violation.
	SymbolHaltedError ErrorCode = "symbol_halted"
	// EngineClosedError is returned once the engine has been shut down.
	EngineClosedError ErrorCode = "engine_closed"
	// LiveVenueMissingError is returned when live mode is selected without a venue.
	LiveVenueMissingError ErrorCode = "live_venue_missing"

	// KafkaReadError represents an error when reading a command from Kafka.
	KafkaReadError ErrorCode = "kafka_read_error"
	// KafkaPublishError represents an error when publishing an event to Kafka.
	KafkaPublishError ErrorCode = "kafka_publish_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// BaseError is an `error` type containing an array of ErrorDetails.
// Validation uses it to report every failing field at once.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether any detail was collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// Is matches target against every detail, so errors.Is works on coded sentinels.
func (b *BaseError) Is(target error) bool {
	for _, d := range b.details {
		if d.Is(target) {
			return true
		}
	}
	return false
}

// PrependFields prepend all field on ErrorDetails with given prefix. Will skip ErrorDetail without field
func (b *BaseError) PrependFields(prefix string) {
	for _, d := range b.GetDetails() {
		if d.Field == "" {
			continue
		}
		d.Field = fmt.Sprintf("%s%s", prefix, d.Field)
	}
}

// IsAllCodeEqual check if all ErrorDetails code is equal with given code
func (b *BaseError) IsAllCodeEqual(code string) bool {
	if len(b.details) == 0 {
		return false
	}

	for _, d := range b.GetDetails() {
		if d.Code != code {
			return false
		}
	}
	return true
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// Fields returns the failing field names in detail order.
func (b *BaseError) Fields() []string {
	fields := make([]string, 0, len(b.details))
	for _, d := range b.details {
		fields = append(fields, d.Field)
	}
	return fields
}

// CodeOf extracts the first error code found in err's chain.
// It returns an empty string for uncoded errors.
func CodeOf(err error) string {
	var details *ErrorDetails
	if stderrors.As(err, &details) {
		return details.Code
	}
	var base *BaseError
	if stderrors.As(err, &base) && len(base.details) > 0 {
		return base.details[0].Code
	}
	return ""
}
