package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

func newAuthService() *AuthService {
	return NewAuthService(memory.NewCredentialAdapter(), memory.NewSessionAdapter(), 0)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, err := svc.Login(ctx, "pharmacien@pharmacie.fr", memory.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, "Amina Benali", user.Name)
	assert.Equal(t, entities.RolePharmacist, user.Role)
	assert.Equal(t, "ph-1", user.PharmacyID)

	current := svc.Current(ctx)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user, err := svc.Login(ctx, "Pharmacien@Pharmacie.FR", memory.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, entities.RolePharmacist, user.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Login(ctx, "pharmacien@pharmacie.fr", "nope")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.TypeOf(err))

	assert.Nil(t, svc.Current(ctx), "failed login must not change state")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	_, err := svc.Login(ctx, "nobody@pharmacie.fr", memory.DemoPassword)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.TypeOf(err),
		"unknown email and wrong password must fail identically")
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionAdapter()
	svc := NewAuthService(memory.NewCredentialAdapter(), sessions, 0)

	_, err := svc.Login(ctx, "admin@pharmacie.fr", memory.DemoPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.Nil(t, svc.Current(ctx))

	stored, err := sessions.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored, "logout must clear the persisted session")
}

func TestAuthService_Restore(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionAdapter()
	require.NoError(t, sessions.Save(ctx, &entities.User{ID: "2", Role: entities.RolePharmacist}))

	svc := NewAuthService(memory.NewCredentialAdapter(), sessions, 0)
	require.NoError(t, svc.Restore(ctx))

	current := svc.Current(ctx)
	require.NotNil(t, current)
	assert.Equal(t, "2", current.ID)
}

func TestAuthService_Restore_EmptySession(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	require.NoError(t, svc.Restore(ctx))
	assert.Nil(t, svc.Current(ctx))
}
