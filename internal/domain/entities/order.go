package entities

import (
	"time"
)

// OrderStatus represents the lifecycle of a supplier order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderLine is one line of a supplier order
type OrderLine struct {
	MedicineID string  `json:"medicine_id" db:"medicine_id"`
	Name       string  `json:"name" db:"name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	UnitCost   float64 `json:"unit_cost" db:"unit_cost"`
}

// Order represents a restocking order placed with a supplier
type Order struct {
	ID           string      `json:"id" db:"id"`
	Supplier     string      `json:"supplier" db:"supplier"`
	Lines        []OrderLine `json:"lines" db:"-"`
	Status       OrderStatus `json:"status" db:"status"`
	Total        float64     `json:"total" db:"total"`
	ExpectedDate time.Time   `json:"expected_date" db:"expected_date"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderPatch carries a partial order update
type OrderPatch struct {
	Supplier     *string      `json:"supplier,omitempty"`
	Lines        *[]OrderLine `json:"lines,omitempty"`
	Status       *OrderStatus `json:"status,omitempty"`
	Total        *float64     `json:"total,omitempty"`
	ExpectedDate *time.Time   `json:"expected_date,omitempty"`
}

// Apply merges the patch into o and stamps UpdatedAt.
func (p *OrderPatch) Apply(o *Order) {
	if p.Supplier != nil {
		o.Supplier = *p.Supplier
	}
	if p.Lines != nil {
		o.Lines = *p.Lines
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Total != nil {
		o.Total = *p.Total
	}
	if p.ExpectedDate != nil {
		o.ExpectedDate = *p.ExpectedDate
	}
	o.UpdatedAt = time.Now()
}
