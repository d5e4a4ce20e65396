package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// FollowUpAdapter implements FollowUpRepository with an in-process store.
// The adherence and side-effect logs only ever grow.
type FollowUpAdapter struct {
	mu    sync.RWMutex
	items []*entities.TreatmentFollowUp
	byID  map[string]*entities.TreatmentFollowUp
}

// NewFollowUpAdapter creates a new in-memory follow-up adapter
func NewFollowUpAdapter() *FollowUpAdapter {
	return &FollowUpAdapter{byID: make(map[string]*entities.TreatmentFollowUp)}
}

func (a *FollowUpAdapter) Create(ctx context.Context, followUp *entities.TreatmentFollowUp) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[followUp.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("follow-up with id %s already exists", followUp.ID))
	}

	stored := copyFollowUp(followUp)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *FollowUpAdapter) GetByID(ctx context.Context, id string) (*entities.TreatmentFollowUp, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("follow-up with id %s not found", id))
	}
	return copyFollowUp(stored), nil
}

// AppendAdherence appends one intake observation
func (a *FollowUpAdapter) AppendAdherence(ctx context.Context, id string, record entities.AdherenceRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[id]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("follow-up with id %s not found", id))
	}
	stored.Adherence = append(stored.Adherence, record)
	return nil
}

// AppendSideEffect appends one side-effect observation
func (a *FollowUpAdapter) AppendSideEffect(ctx context.Context, id string, report entities.SideEffectReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[id]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("follow-up with id %s not found", id))
	}
	stored.SideEffects = append(stored.SideEffects, report)
	return nil
}

func (a *FollowUpAdapter) List(ctx context.Context) ([]*entities.TreatmentFollowUp, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyFollowUp), nil
}

func copyFollowUp(f *entities.TreatmentFollowUp) *entities.TreatmentFollowUp {
	c := *f
	c.Adherence = append([]entities.AdherenceRecord(nil), f.Adherence...)
	c.SideEffects = append([]entities.SideEffectReport(nil), f.SideEffects...)
	return &c
}

// AvailabilityAdapter implements AvailabilityRepository with one entry per
// pharmacist
type AvailabilityAdapter struct {
	mu           sync.RWMutex
	items        []*entities.PharmacistAvailability
	byPharmacist map[string]*entities.PharmacistAvailability
}

// NewAvailabilityAdapter creates a new in-memory availability adapter
func NewAvailabilityAdapter() *AvailabilityAdapter {
	return &AvailabilityAdapter{byPharmacist: make(map[string]*entities.PharmacistAvailability)}
}

// Upsert creates or replaces the pharmacist's availability entry
func (a *AvailabilityAdapter) Upsert(ctx context.Context, availability *entities.PharmacistAvailability) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if stored, exists := a.byPharmacist[availability.PharmacistID]; exists {
		*stored = *copyAvailability(availability)
		return nil
	}

	stored := copyAvailability(availability)
	a.items = append(a.items, stored)
	a.byPharmacist[stored.PharmacistID] = stored
	return nil
}

func (a *AvailabilityAdapter) GetByPharmacist(ctx context.Context, pharmacistID string) (*entities.PharmacistAvailability, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byPharmacist[pharmacistID]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("availability for pharmacist %s not found", pharmacistID))
	}
	return copyAvailability(stored), nil
}

func (a *AvailabilityAdapter) List(ctx context.Context) ([]*entities.PharmacistAvailability, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyAvailability), nil
}

func copyAvailability(av *entities.PharmacistAvailability) *entities.PharmacistAvailability {
	c := *av
	return &c
}

// NotificationAdapter implements NotificationRepository with an in-process
// store. New entries are prepended so List is most-recent-first.
type NotificationAdapter struct {
	mu    sync.RWMutex
	items []*entities.Notification
	byID  map[string]*entities.Notification
}

// NewNotificationAdapter creates a new in-memory notification adapter
func NewNotificationAdapter() *NotificationAdapter {
	return &NotificationAdapter{byID: make(map[string]*entities.Notification)}
}

func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[notification.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("notification with id %s already exists", notification.ID))
	}

	stored := copyNotification(notification)
	a.items = append([]*entities.Notification{stored}, a.items...)
	a.byID[stored.ID] = stored
	return nil
}

// MarkRead flips the read flag on one notification
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[id]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("notification with id %s not found", id))
	}
	stored.Read = true
	return nil
}

func (a *NotificationAdapter) List(ctx context.Context) ([]*entities.Notification, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyNotification), nil
}

func (a *NotificationAdapter) ListUnread(ctx context.Context) ([]*entities.Notification, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.Notification
	for _, n := range a.items {
		if !n.Read {
			out = append(out, copyNotification(n))
		}
	}
	return out, nil
}

func copyNotification(n *entities.Notification) *entities.Notification {
	c := *n
	return &c
}
