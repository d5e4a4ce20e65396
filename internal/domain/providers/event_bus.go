package providers

import (
	"context"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.PharmacyEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.PharmacyEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelPharmacyUpdates is the channel for all pharmacy activity
	EventChannelPharmacyUpdates = "pharmacy:updates"

	// EventChannelStock is the channel for stock alerts
	EventChannelStock = "pharmacy:stock"

	// EventChannelTelepharmacy is the channel for waiting-room and
	// prescription lifecycle events
	EventChannelTelepharmacy = "pharmacy:telepharmacy"

	// EventChannelPharmacyPrefix is the prefix for tenant-specific channels
	EventChannelPharmacyPrefix = "pharmacy:"
)

// GetPharmacyChannel returns the channel name for a specific pharmacy tenant
func GetPharmacyChannel(pharmacyID string) string {
	return EventChannelPharmacyPrefix + pharmacyID
}
