package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/providers"
)

func TestMemoryEventBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, providers.EventChannelStock)
	require.NoError(t, err)

	event := entities.NewPharmacyEvent("ph-1", entities.PharmacyEventTypeStockLow, map[string]interface{}{
		"medicine_id":   "1",
		"current_stock": 3,
	})
	require.NoError(t, bus.Publish(ctx, providers.EventChannelStock, event))

	select {
	case got := <-ch:
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, entities.PharmacyEventTypeStockLow, got.EventType)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMemoryEventBus_PublishToOtherChannelNotDelivered(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, providers.EventChannelStock)
	require.NoError(t, err)

	event := entities.NewPharmacyEvent("ph-1", entities.PharmacyEventTypePatientWaiting, nil)
	require.NoError(t, bus.Publish(ctx, providers.EventChannelTelepharmacy, event))

	select {
	case <-ch:
		t.Fatal("event should not cross channels")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryEventBus_ContextCancelRemovesSubscriber(t *testing.T) {
	bus := NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, providers.EventChannelPharmacyUpdates)
	require.NoError(t, err)

	cancel()

	// channel closes once the cancellation is observed
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel was not closed")
		}
	}
}
