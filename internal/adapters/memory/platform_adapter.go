package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// PharmacyAdapter implements PharmacyRepository with an in-process store
type PharmacyAdapter struct {
	mu    sync.RWMutex
	items []*entities.Pharmacy
	byID  map[string]*entities.Pharmacy
}

// NewPharmacyAdapter creates a new in-memory pharmacy adapter
func NewPharmacyAdapter() *PharmacyAdapter {
	return &PharmacyAdapter{byID: make(map[string]*entities.Pharmacy)}
}

func (a *PharmacyAdapter) Create(ctx context.Context, pharmacy *entities.Pharmacy) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[pharmacy.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("pharmacy with id %s already exists", pharmacy.ID))
	}

	stored := copyPharmacy(pharmacy)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *PharmacyAdapter) GetByID(ctx context.Context, id string) (*entities.Pharmacy, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("pharmacy with id %s not found", id))
	}
	return copyPharmacy(stored), nil
}

func (a *PharmacyAdapter) Update(ctx context.Context, pharmacy *entities.Pharmacy) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[pharmacy.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy with id %s not found", pharmacy.ID))
	}
	*stored = *copyPharmacy(pharmacy)
	return nil
}

func (a *PharmacyAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[id]; !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy with id %s not found", id))
	}

	delete(a.byID, id)
	for i, p := range a.items {
		if p.ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
	return nil
}

func (a *PharmacyAdapter) List(ctx context.Context, filter repositories.PharmacyFilter) ([]*entities.Pharmacy, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	matched := make([]*entities.Pharmacy, 0, len(a.items))
	for _, p := range a.items {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.SubscriptionType != "" && p.SubscriptionType != filter.SubscriptionType {
			continue
		}
		if filter.Region != "" && p.Region != filter.Region {
			continue
		}
		matched = append(matched, p)
	}

	return paginateCopies(matched, filter.Offset, filter.Limit, copyPharmacy), nil
}

func copyPharmacy(p *entities.Pharmacy) *entities.Pharmacy {
	c := *p
	return &c
}

// PharmacyRequestAdapter implements PharmacyRequestRepository with an
// in-process store
type PharmacyRequestAdapter struct {
	mu    sync.RWMutex
	items []*entities.PharmacyRequest
	byID  map[string]*entities.PharmacyRequest
}

// NewPharmacyRequestAdapter creates a new in-memory pharmacy request adapter
func NewPharmacyRequestAdapter() *PharmacyRequestAdapter {
	return &PharmacyRequestAdapter{byID: make(map[string]*entities.PharmacyRequest)}
}

func (a *PharmacyRequestAdapter) Create(ctx context.Context, request *entities.PharmacyRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[request.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("pharmacy request with id %s already exists", request.ID))
	}

	stored := copyPharmacyRequest(request)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *PharmacyRequestAdapter) GetByID(ctx context.Context, id string) (*entities.PharmacyRequest, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("pharmacy request with id %s not found", id))
	}
	return copyPharmacyRequest(stored), nil
}

func (a *PharmacyRequestAdapter) Update(ctx context.Context, request *entities.PharmacyRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[request.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy request with id %s not found", request.ID))
	}
	*stored = *copyPharmacyRequest(request)
	return nil
}

func (a *PharmacyRequestAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[id]; !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy request with id %s not found", id))
	}

	delete(a.byID, id)
	for i, r := range a.items {
		if r.ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
	return nil
}

func (a *PharmacyRequestAdapter) List(ctx context.Context) ([]*entities.PharmacyRequest, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyPharmacyRequest), nil
}

func copyPharmacyRequest(r *entities.PharmacyRequest) *entities.PharmacyRequest {
	c := *r
	return &c
}

// SystemUserAdapter implements SystemUserRepository with an in-process store
type SystemUserAdapter struct {
	mu    sync.RWMutex
	items []*entities.SystemUser
	byID  map[string]*entities.SystemUser
}

// NewSystemUserAdapter creates a new in-memory system user adapter
func NewSystemUserAdapter() *SystemUserAdapter {
	return &SystemUserAdapter{byID: make(map[string]*entities.SystemUser)}
}

func (a *SystemUserAdapter) Create(ctx context.Context, user *entities.SystemUser) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[user.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("system user with id %s already exists", user.ID))
	}

	stored := copySystemUser(user)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *SystemUserAdapter) GetByID(ctx context.Context, id string) (*entities.SystemUser, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("system user with id %s not found", id))
	}
	return copySystemUser(stored), nil
}

func (a *SystemUserAdapter) Update(ctx context.Context, user *entities.SystemUser) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[user.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("system user with id %s not found", user.ID))
	}
	*stored = *copySystemUser(user)
	return nil
}

func (a *SystemUserAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[id]; !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("system user with id %s not found", id))
	}

	delete(a.byID, id)
	for i, u := range a.items {
		if u.ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
	return nil
}

func (a *SystemUserAdapter) List(ctx context.Context) ([]*entities.SystemUser, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copySystemUser), nil
}

func copySystemUser(u *entities.SystemUser) *entities.SystemUser {
	c := *u
	return &c
}

// SubscriptionAdapter implements SubscriptionRepository with an in-process
// store. The three plans are seeded at construction; there is no create or
// delete path.
type SubscriptionAdapter struct {
	mu    sync.RWMutex
	items []*entities.Subscription
	byID  map[string]*entities.Subscription
}

// NewSubscriptionAdapter creates an in-memory subscription adapter seeded
// with the three platform plans
func NewSubscriptionAdapter() *SubscriptionAdapter {
	a := &SubscriptionAdapter{byID: make(map[string]*entities.Subscription)}
	for _, s := range seedSubscriptions() {
		a.items = append(a.items, s)
		a.byID[s.ID] = s
	}
	return a
}

func seedSubscriptions() []*entities.Subscription {
	return []*entities.Subscription{
		{
			ID:       "sub-basic",
			Plan:     entities.SubscriptionTypeBasic,
			Price:    29,
			MaxUsers: 3,
			Features: []string{"inventory", "sales"},
		},
		{
			ID:       "sub-pro",
			Plan:     entities.SubscriptionTypePro,
			Price:    79,
			MaxUsers: 10,
			Features: []string{"inventory", "sales", "telepharmacy", "reports"},
		},
		{
			ID:       "sub-enterprise",
			Plan:     entities.SubscriptionTypeEnterprise,
			Price:    199,
			MaxUsers: 50,
			Features: []string{"inventory", "sales", "telepharmacy", "reports", "multi_site", "priority_support"},
		},
	}
}

func (a *SubscriptionAdapter) GetByID(ctx context.Context, id string) (*entities.Subscription, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("subscription with id %s not found", id))
	}
	return copySubscription(stored), nil
}

func (a *SubscriptionAdapter) Update(ctx context.Context, subscription *entities.Subscription) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[subscription.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("subscription with id %s not found", subscription.ID))
	}
	*stored = *copySubscription(subscription)
	return nil
}

func (a *SubscriptionAdapter) List(ctx context.Context) ([]*entities.Subscription, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copySubscription), nil
}

func copySubscription(s *entities.Subscription) *entities.Subscription {
	c := *s
	c.Features = append([]string(nil), s.Features...)
	return &c
}
