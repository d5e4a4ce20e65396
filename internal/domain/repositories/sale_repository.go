package repositories

import (
	"context"
	"time"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// SaleRepository defines the interface for sale data operations.
//
// CreateWithStockDecrement is the one cross-entity write in the system: the
// sale row and the per-line stock decrements must land together, reading
// each medicine's pre-sale level. Implementations make this atomic (a
// transaction on Postgres, a single critical section in memory).
type SaleRepository interface {
	// CreateWithStockDecrement records the sale and decrements each
	// referenced medicine's current stock by the sold quantity.
	CreateWithStockDecrement(ctx context.Context, sale *entities.Sale) error

	// GetByID retrieves a sale by ID
	GetByID(ctx context.Context, id string) (*entities.Sale, error)

	// List retrieves sales in insertion order
	List(ctx context.Context, filter SaleFilter) ([]*entities.Sale, error)
}

// SaleFilter defines filters for listing sales
type SaleFilter struct {
	CashierID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
