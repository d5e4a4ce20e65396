package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// SaleAdapter implements SaleRepository with an in-process store. Stock
// decrements go through the medicine adapter's bulk path, which applies a
// sale's lines in one critical section.
type SaleAdapter struct {
	mu        sync.RWMutex
	items     []*entities.Sale
	byID      map[string]*entities.Sale
	medicines *MedicineAdapter
}

// NewSaleAdapter creates a new in-memory sale adapter
func NewSaleAdapter(medicines *MedicineAdapter) *SaleAdapter {
	return &SaleAdapter{
		byID:      make(map[string]*entities.Sale),
		medicines: medicines,
	}
}

// CreateWithStockDecrement records the sale and decrements stock for each
// line. The sale lock is held across the decrement so a rejected sale never
// mutates stock; DecrementStockBulk validates every id before applying.
func (a *SaleAdapter) CreateWithStockDecrement(ctx context.Context, sale *entities.Sale) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[sale.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("sale with id %s already exists", sale.ID))
	}

	quantities := make(map[string]int, len(sale.Lines))
	for _, line := range sale.Lines {
		quantities[line.MedicineID] += line.Quantity
	}

	if err := a.medicines.DecrementStockBulk(ctx, quantities); err != nil {
		return err
	}

	stored := copySale(sale)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

// GetByID retrieves a sale by ID
func (a *SaleAdapter) GetByID(ctx context.Context, id string) (*entities.Sale, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("sale with id %s not found", id))
	}
	return copySale(stored), nil
}

// List retrieves sales in insertion order
func (a *SaleAdapter) List(ctx context.Context, filter repositories.SaleFilter) ([]*entities.Sale, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	matched := make([]*entities.Sale, 0, len(a.items))
	for _, s := range a.items {
		if filter.CashierID != "" && s.CashierID != filter.CashierID {
			continue
		}
		if filter.From != nil && s.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.Date.After(*filter.To) {
			continue
		}
		matched = append(matched, s)
	}

	return paginateCopies(matched, filter.Offset, filter.Limit, copySale), nil
}

func copySale(s *entities.Sale) *entities.Sale {
	c := *s
	c.Lines = append([]entities.SaleLine(nil), s.Lines...)
	return &c
}
