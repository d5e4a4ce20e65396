package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// SessionAdapter implements SessionRepository with a single in-process slot
type SessionAdapter struct {
	mu   sync.RWMutex
	user *entities.User
}

// NewSessionAdapter creates a new in-memory session adapter
func NewSessionAdapter() *SessionAdapter {
	return &SessionAdapter{}
}

// Save stores the current user
func (a *SessionAdapter) Save(ctx context.Context, user *entities.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	u := *user
	a.user = &u
	return nil
}

// Load returns the stored user, or nil when no session exists
func (a *SessionAdapter) Load(ctx context.Context) (*entities.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil, nil
	}
	u := *a.user
	return &u, nil
}

// Clear drops the stored session
func (a *SessionAdapter) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = nil
	return nil
}

// CredentialAdapter implements CredentialRepository over a fixed directory.
// Every seeded account shares the same demo password, mirroring the mock
// login table this deployment ships with.
type CredentialAdapter struct {
	byEmail map[string]*entities.Credential
}

// DemoPassword is the single password accepted for every seeded account
const DemoPassword = "demo123"

// NewCredentialAdapter creates a credential adapter seeded with the demo
// directory
func NewCredentialAdapter() *CredentialAdapter {
	a := &CredentialAdapter{byEmail: make(map[string]*entities.Credential)}
	for _, c := range seedCredentials() {
		a.byEmail[strings.ToLower(c.User.Email)] = c
	}
	return a
}

func seedCredentials() []*entities.Credential {
	created := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	users := []entities.User{
		{ID: "0", Email: "superadmin@pharmacare.com", Name: "Sofia Khalil", Role: entities.RoleSuperAdmin, CreatedAt: created},
		{ID: "1", Email: "admin@pharmacie.fr", Name: "Jean Dupont", Role: entities.RoleAdministrator, PharmacyID: "ph-1", PharmacyName: "Pharmacie Centrale", CreatedAt: created},
		{ID: "2", Email: "pharmacien@pharmacie.fr", Name: "Amina Benali", Role: entities.RolePharmacist, PharmacyID: "ph-1", PharmacyName: "Pharmacie Centrale", CreatedAt: created},
		{ID: "3", Email: "caissier@pharmacie.fr", Name: "Marie Traore", Role: entities.RoleCashier, PharmacyID: "ph-1", PharmacyName: "Pharmacie Centrale", CreatedAt: created},
		{ID: "4", Email: "stock@pharmacie.fr", Name: "Karim Ziani", Role: entities.RoleStockManager, PharmacyID: "ph-1", PharmacyName: "Pharmacie Centrale", CreatedAt: created},
	}

	creds := make([]*entities.Credential, len(users))
	for i, u := range users {
		creds[i] = &entities.Credential{User: u, Password: DemoPassword}
	}
	return creds
}

// FindByEmail looks up an account by email, case-insensitively
func (a *CredentialAdapter) FindByEmail(ctx context.Context, email string) (*entities.Credential, error) {
	c, exists := a.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", email))
	}
	cp := *c
	return &cp, nil
}
