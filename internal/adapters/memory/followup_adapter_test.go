package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

func TestFollowUpAdapter_AppendOnlyLogs(t *testing.T) {
	adapter := NewFollowUpAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Create(ctx, &entities.TreatmentFollowUp{
		ID:         "f-1",
		PatientID:  "p-1",
		MedicineID: "1",
		Schedule:   "1 tablet morning and evening",
		CreatedAt:  time.Now(),
	}))

	require.NoError(t, adapter.AppendAdherence(ctx, "f-1", entities.AdherenceRecord{
		MedicineID: "1", Taken: true, RecordedAt: time.Now(),
	}))
	require.NoError(t, adapter.AppendAdherence(ctx, "f-1", entities.AdherenceRecord{
		MedicineID: "1", Taken: false, Notes: "forgot evening dose", RecordedAt: time.Now(),
	}))
	require.NoError(t, adapter.AppendSideEffect(ctx, "f-1", entities.SideEffectReport{
		Effect: "nausea", Severity: entities.SideEffectSeverityMild, ReportedAt: time.Now(),
	}))

	got, err := adapter.GetByID(ctx, "f-1")
	require.NoError(t, err)
	require.Len(t, got.Adherence, 2)
	assert.True(t, got.Adherence[0].Taken)
	assert.False(t, got.Adherence[1].Taken)
	require.Len(t, got.SideEffects, 1)
	assert.Equal(t, entities.SideEffectSeverityMild, got.SideEffects[0].Severity)
}

func TestNotificationAdapter_MostRecentFirst(t *testing.T) {
	adapter := NewNotificationAdapter()
	ctx := context.Background()

	for _, id := range []string{"n-1", "n-2", "n-3"} {
		require.NoError(t, adapter.Create(ctx, &entities.Notification{
			ID:        id,
			Title:     "alert",
			Priority:  entities.PriorityMedium,
			CreatedAt: time.Now(),
		}))
	}

	all, err := adapter.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "n-3", all[0].ID)
	assert.Equal(t, "n-2", all[1].ID)
	assert.Equal(t, "n-1", all[2].ID)
}

func TestNotificationAdapter_MarkReadAndListUnread(t *testing.T) {
	adapter := NewNotificationAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Create(ctx, &entities.Notification{ID: "n-1", Title: "stock low"}))
	require.NoError(t, adapter.Create(ctx, &entities.Notification{ID: "n-2", Title: "patient waiting"}))

	require.NoError(t, adapter.MarkRead(ctx, "n-1"))

	unread, err := adapter.ListUnread(ctx)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n-2", unread[0].ID)
}

func TestAvailabilityAdapter_UpsertReplaces(t *testing.T) {
	adapter := NewAvailabilityAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Upsert(ctx, &entities.PharmacistAvailability{
		PharmacistID: "2", Name: "Amina Benali", Status: entities.AvailabilityStatusAvailable,
	}))
	require.NoError(t, adapter.Upsert(ctx, &entities.PharmacistAvailability{
		PharmacistID: "2", Name: "Amina Benali", Status: entities.AvailabilityStatusBusy,
	}))

	got, err := adapter.GetByPharmacist(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, entities.AvailabilityStatusBusy, got.Status)

	all, err := adapter.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
