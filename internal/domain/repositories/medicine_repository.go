package repositories

import (
	"context"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// MedicineRepository defines the interface for medicine data operations.
// Update and Delete on an unknown id return a not-found error.
type MedicineRepository interface {
	// Create creates a new medicine
	Create(ctx context.Context, medicine *entities.Medicine) error

	// GetByID retrieves a medicine by ID
	GetByID(ctx context.Context, id string) (*entities.Medicine, error)

	// Update replaces a medicine
	Update(ctx context.Context, medicine *entities.Medicine) error

	// Delete removes a medicine
	Delete(ctx context.Context, id string) error

	// List retrieves medicines in insertion order
	List(ctx context.Context, filter MedicineFilter) ([]*entities.Medicine, error)
}

// MedicineFilter defines filters for listing medicines
type MedicineFilter struct {
	Category string
	LowStock bool
	Supplier string
	Limit    int
	Offset   int
}

// MedicineSearchRepository defines the interface for the medicine search index
type MedicineSearchRepository interface {
	// Index upserts a medicine document into the index
	Index(ctx context.Context, medicine *entities.Medicine) error

	// Delete removes a medicine from the index
	Delete(ctx context.Context, id string) error

	// Search queries the index by name, barcode, or category
	Search(ctx context.Context, query string, limit int) ([]*entities.Medicine, error)
}
