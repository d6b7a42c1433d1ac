package snapshotv1

import (
	"context"

	orderbookv1 "github.com/i-onlabs/sigmax/services/execution-engine/internal/domain/orderbook/v1"
)

// Store defines the interface for persisting order-book snapshots.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotv1_mock
type Store interface {
	// Store saves the snapshot under its symbol.
	Store(ctx context.Context, snapshot *orderbookv1.BookSnapshot) error
	// Load returns the last stored snapshot of symbol, or nil when none exists.
	Load(ctx context.Context, symbol string) (*orderbookv1.BookSnapshot, error)
}
