package matchpublisherv1

import "context"

// Publisher defines the interface for publishing execution events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matchpublisherv1_mock
type Publisher interface {
	// PublishEvent publishes an event to the execution topic.
	PublishEvent(ctx context.Context, event *Event) error
}
