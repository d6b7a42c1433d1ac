package matchpublisherv1

import (
	"encoding/json"

	"github.com/i-onlabs/sigmax/pkg/errors"
	executionv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/execution/v1"
)

// EventType tells consumers which payload an Event carries.
type EventType string

const (
	EventExecution EventType = "execution"
	EventCancel    EventType = "cancel"
	EventRejected  EventType = "rejected"
)

// Event is one message of the execution topic.
type Event struct {
	Type      EventType                    `json:"type"`
	RequestID string                       `json:"requestID,omitempty"`
	Symbol    string                       `json:"symbol"`
	OrderID   string                       `json:"orderID,omitempty"`
	Execution *executionv1.ExecutionResult `json:"execution,omitempty"`
	// Cancelled counts orders removed by a cancel or cancel_all command.
	Cancelled int    `json:"cancelled"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewExecutionEvent creates an event from an execution result.
func NewExecutionEvent(requestID string, result *executionv1.ExecutionResult) *Event {
	return &Event{
		Type:      EventExecution,
		RequestID: requestID,
		Symbol:    result.Symbol,
		OrderID:   result.OrderID,
		Execution: result,
		Timestamp: result.Timestamp,
	}
}

// NewCancelEvent creates an event for a cancel or cancel_all outcome.
func NewCancelEvent(requestID, symbol, orderID string, cancelled int, ts int64) *Event {
	return &Event{
		Type:      EventCancel,
		RequestID: requestID,
		Symbol:    symbol,
		OrderID:   orderID,
		Cancelled: cancelled,
		Timestamp: ts,
	}
}

// NewRejectedEvent creates an event for a command the engine refused.
func NewRejectedEvent(requestID, symbol, orderID string, err error, ts int64) *Event {
	return &Event{
		Type:      EventRejected,
		RequestID: requestID,
		Symbol:    symbol,
		OrderID:   orderID,
		Code:      errors.CodeOf(err),
		Error:     err.Error(),
		Timestamp: ts,
	}
}

// ToBytes converts the event to a byte array.
func ToBytes(event *Event) []byte {
	json, err := json.Marshal(event)
	if err != nil {
		return nil
	}

	return json
}

// FromBytes converts a byte array to an event.
func FromBytes(data []byte) *Event {
	var event Event
	err := json.Unmarshal(data, &event)
	if err != nil {
		return nil
	}
	return &event
}
