package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

func newPlatformService() *PlatformService {
	return NewPlatformService(
		memory.NewPharmacyAdapter(),
		memory.NewPharmacyRequestAdapter(),
		memory.NewSystemUserAdapter(),
		memory.NewSubscriptionAdapter(),
	)
}

func TestPlatformService_AddPharmacy(t *testing.T) {
	ctx := context.Background()
	svc := newPlatformService()

	pharmacy := &entities.Pharmacy{
		Name:             "Pharmacie du Port",
		Owner:            "Nadia Berrada",
		Email:            "contact@pharmacieduport.ma",
		Country:          "Maroc",
		Region:           "Maghreb",
		Status:           entities.PharmacyStatusActive,
		SubscriptionType: entities.SubscriptionTypeBasic,
	}
	require.NoError(t, svc.AddPharmacy(ctx, pharmacy))
	assert.NotEmpty(t, pharmacy.ID)
	assert.False(t, pharmacy.JoinDate.IsZero())

	got, err := svc.GetPharmacy(ctx, pharmacy.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pharmacie du Port", got.Name)
}

func TestPlatformService_UpdatePharmacy(t *testing.T) {
	ctx := context.Background()
	svc := newPlatformService()

	pharmacy := &entities.Pharmacy{Name: "Pharmacie Centrale", Status: entities.PharmacyStatusActive}
	require.NoError(t, svc.AddPharmacy(ctx, pharmacy))

	suspended := entities.PharmacyStatusSuspended
	updated, err := svc.UpdatePharmacy(ctx, pharmacy.ID, &entities.PharmacyPatch{Status: &suspended})
	require.NoError(t, err)
	assert.Equal(t, entities.PharmacyStatusSuspended, updated.Status)
	assert.Equal(t, "Pharmacie Centrale", updated.Name)
}

func TestPlatformService_ListPharmacies_Filter(t *testing.T) {
	ctx := context.Background()
	svc := newPlatformService()

	require.NoError(t, svc.AddPharmacy(ctx, &entities.Pharmacy{
		Name: "A", Region: "France", Status: entities.PharmacyStatusActive, SubscriptionType: entities.SubscriptionTypePro,
	}))
	require.NoError(t, svc.AddPharmacy(ctx, &entities.Pharmacy{
		Name: "B", Region: "Maghreb", Status: entities.PharmacyStatusActive, SubscriptionType: entities.SubscriptionTypeBasic,
	}))
	require.NoError(t, svc.AddPharmacy(ctx, &entities.Pharmacy{
		Name: "C", Region: "Maghreb", Status: entities.PharmacyStatusSuspended, SubscriptionType: entities.SubscriptionTypeBasic,
	}))

	matched, err := svc.ListPharmacies(ctx, repositories.PharmacyFilter{Region: "Maghreb", Status: entities.PharmacyStatusActive})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "B", matched[0].Name)
}

func submitRequest(t *testing.T, svc *PlatformService) *entities.PharmacyRequest {
	t.Helper()
	request := &entities.PharmacyRequest{
		PharmacyName:  "Pharmacie Atlas",
		Owner:         "Yassine El Fassi",
		Email:         "contact@pharmacie-atlas.ma",
		Country:       "Maroc",
		RequestedPlan: entities.SubscriptionTypePro,
	}
	require.NoError(t, svc.SubmitPharmacyRequest(context.Background(), request))
	return request
}

func TestPlatformService_ApprovePharmacyRequest(t *testing.T) {
	ctx := context.Background()
	svc := newPlatformService()
	request := submitRequest(t, svc)

	pharmacy, err := svc.ApprovePharmacyRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pharmacie Atlas", pharmacy.Name)
	assert.Equal(t, "Maghreb", pharmacy.Region)
	assert.Equal(t, entities.PharmacyStatusActive, pharmacy.Status)
	assert.Equal(t, entities.SubscriptionTypePro, pharmacy.SubscriptionType)
	assert.Zero(t, pharmacy.Revenue)
	assert.Zero(t, pharmacy.UserCount)

	requests, err := svc.ListPharmacyRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, requests, "approval consumes the request")

	pharmacies, err := svc.ListPharmacies(ctx, repositories.PharmacyFilter{})
	require.NoError(t, err)
	require.Len(t, pharmacies, 1)
}

func TestPlatformService_ApprovePharmacyRequest_NotFound(t *testing.T) {
	svc := newPlatformService()

	_, err := svc.ApprovePharmacyRequest(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPlatformService_RejectPharmacyRequest(t *testing.T) {
	ctx := context.Background()
	svc := newPlatformService()
	request := submitRequest(t, svc)

	rejected, err := svc.RejectPharmacyRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStatusRejected, rejected.Status)

	requests, err := svc.ListPharmacyRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1, "rejection keeps the request on file")
	assert.Equal(t, entities.RequestStatusRejected, requests[0].Status)

	pharmacies, err := svc.ListPharmacies(ctx, repositories.PharmacyFilter{})
	require.NoError(t, err)
	assert.Empty(t, pharmacies)
}

func TestPlatformService_SystemUsers(t *testing.T) {
	ctx := context.Background()
	svc := newPlatformService()

	user := &entities.SystemUser{Name: "Leila Mansouri", Email: "leila@pharmacare.com", Role: entities.RoleSuperAdmin, Active: true}
	require.NoError(t, svc.AddSystemUser(ctx, user))
	assert.NotEmpty(t, user.ID)

	inactive := false
	updated, err := svc.UpdateSystemUser(ctx, user.ID, &entities.SystemUserPatch{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	require.NoError(t, svc.DeleteSystemUser(ctx, user.ID))

	users, err := svc.ListSystemUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestPlatformService_UpdateSubscription(t *testing.T) {
	ctx := context.Background()
	svc := newPlatformService()

	price := 89.0
	maxUsers := 15
	updated, err := svc.UpdateSubscription(ctx, "sub-pro", &entities.SubscriptionPatch{Price: &price, MaxUsers: &maxUsers})
	require.NoError(t, err)
	assert.Equal(t, 89.0, updated.Price)
	assert.Equal(t, 15, updated.MaxUsers)
	assert.Equal(t, entities.SubscriptionTypePro, updated.Plan, "plan identity is fixed")

	plans, err := svc.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
}

func TestPlatformService_UpdateSubscription_NotFound(t *testing.T) {
	svc := newPlatformService()

	price := 10.0
	_, err := svc.UpdateSubscription(context.Background(), "sub-missing", &entities.SubscriptionPatch{Price: &price})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
