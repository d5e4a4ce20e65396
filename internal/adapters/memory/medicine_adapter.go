package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// MedicineAdapter implements MedicineRepository with an in-process store.
// Entries keep insertion order; reads return copies so callers can never
// mutate the store behind the lock.
type MedicineAdapter struct {
	mu    sync.RWMutex
	items []*entities.Medicine
	byID  map[string]*entities.Medicine
}

// NewMedicineAdapter creates a new in-memory medicine adapter
func NewMedicineAdapter() *MedicineAdapter {
	return &MedicineAdapter{
		byID: make(map[string]*entities.Medicine),
	}
}

// Create creates a new medicine
func (a *MedicineAdapter) Create(ctx context.Context, medicine *entities.Medicine) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[medicine.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("medicine with id %s already exists", medicine.ID))
	}

	stored := copyMedicine(medicine)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

// GetByID retrieves a medicine by ID
func (a *MedicineAdapter) GetByID(ctx context.Context, id string) (*entities.Medicine, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
	}
	return copyMedicine(stored), nil
}

// Update replaces a medicine in place
func (a *MedicineAdapter) Update(ctx context.Context, medicine *entities.Medicine) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[medicine.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", medicine.ID))
	}

	*stored = *copyMedicine(medicine)
	return nil
}

// Delete removes a medicine from the store
func (a *MedicineAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[id]; !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
	}

	delete(a.byID, id)
	for i, m := range a.items {
		if m.ID == id {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
	return nil
}

// List retrieves medicines in insertion order
func (a *MedicineAdapter) List(ctx context.Context, filter repositories.MedicineFilter) ([]*entities.Medicine, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	matched := make([]*entities.Medicine, 0, len(a.items))
	for _, m := range a.items {
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.Supplier != "" && !strings.EqualFold(m.Supplier, filter.Supplier) {
			continue
		}
		if filter.LowStock && !m.BelowMinStock() {
			continue
		}
		matched = append(matched, m)
	}

	return paginateCopies(matched, filter.Offset, filter.Limit, copyMedicine), nil
}

// DecrementStockBulk subtracts the given quantities under a single lock so
// a sale's lines land together. Stock is allowed to go negative; the
// service layer decides what to do about it.
func (a *MedicineAdapter) DecrementStockBulk(ctx context.Context, quantities map[string]int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id := range quantities {
		if _, exists := a.byID[id]; !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
		}
	}

	now := time.Now()
	for id, qty := range quantities {
		m := a.byID[id]
		m.CurrentStock -= qty
		m.UpdatedAt = now
	}
	return nil
}

func copyMedicine(m *entities.Medicine) *entities.Medicine {
	c := *m
	return &c
}

// paginateCopies applies offset and limit then copies each element.
func paginateCopies[T any](items []*T, offset, limit int, copyFn func(*T) *T) []*T {
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	out := make([]*T, len(items))
	for i, item := range items {
		out[i] = copyFn(item)
	}
	return out
}
