package orderreaderv1

import (
	"github.com/i-onlabs/sigmax/pkg/errors"
	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
)

// CommandType is the action a command asks for.
type CommandType string

const (
	CommandPlace     CommandType = "place"
	CommandCancel    CommandType = "cancel"
	CommandCancelAll CommandType = "cancel_all"
)

// Command is one message of the order command topic.
type Command struct {
	Type      CommandType                    `json:"type"`
	RequestID string                         `json:"requestID,omitempty"`
	Symbol    string                         `json:"symbol"`
	OrderID   string                         `json:"orderID,omitempty"`
	Order     *orderbookv1.PlaceOrderRequest `json:"order,omitempty"`
	// Snapshot is the sender's view of the book when it decided.
	Snapshot *orderbookv1.BookSnapshot `json:"snapshot,omitempty"`

	Offset int64 `json:"-"`
}

// Validate checks the envelope only; the order itself is validated by the
// execution engine. A place command without an order symbol inherits the
// command symbol.
func (c *Command) Validate() error {
	switch c.Type {
	case CommandPlace:
		if c.Order == nil {
			return errors.NewErrorDetails("place command without order", string(errors.InvalidOrderError), "order")
		}
		if c.Order.Symbol == "" {
			c.Order.Symbol = c.Symbol
		}
		if c.Symbol == "" {
			c.Symbol = c.Order.Symbol
		}
		if c.Symbol != c.Order.Symbol {
			return errors.NewErrorDetailsWithObject("command and order symbol differ", string(errors.InvalidOrderError), "symbol", c.Symbol)
		}
		if c.Symbol == "" {
			return errors.NewErrorDetails("symbol is required", string(errors.InvalidOrderError), "symbol")
		}
	case CommandCancel:
		if c.OrderID == "" {
			return errors.NewErrorDetails("cancel command without order id", string(errors.InvalidOrderError), "orderID")
		}
	case CommandCancelAll:
	default:
		return errors.NewErrorDetailsWithObject("unknown command type", string(errors.GeneralBadRequestError), "type", c.Type)
	}
	return nil
}
