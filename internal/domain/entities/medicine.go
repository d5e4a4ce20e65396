package entities

import (
	"time"
)

// Medicine represents one stocked product reference
type Medicine struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Form         string    `json:"form" db:"form"`
	Dosage       string    `json:"dosage" db:"dosage"`
	Barcode      string    `json:"barcode" db:"barcode"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	MinStock     int       `json:"min_stock" db:"min_stock"`
	Price        float64   `json:"price" db:"price"`
	Cost         float64   `json:"cost" db:"cost"`
	ExpiryDate   time.Time `json:"expiry_date" db:"expiry_date"`
	Supplier     string    `json:"supplier" db:"supplier"`
	BatchNumber  string    `json:"batch_number" db:"batch_number"`
	Category     string    `json:"category" db:"category"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// BelowMinStock reports whether the current level is at or under the
// reorder threshold.
func (m *Medicine) BelowMinStock() bool {
	return m.CurrentStock <= m.MinStock
}

// MedicinePatch carries a partial update. Nil fields are left untouched,
// preserving merge semantics without untyped maps.
type MedicinePatch struct {
	Name         *string    `json:"name,omitempty"`
	Form         *string    `json:"form,omitempty"`
	Dosage       *string    `json:"dosage,omitempty"`
	Barcode      *string    `json:"barcode,omitempty"`
	CurrentStock *int       `json:"current_stock,omitempty"`
	MinStock     *int       `json:"min_stock,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Cost         *float64   `json:"cost,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Supplier     *string    `json:"supplier,omitempty"`
	BatchNumber  *string    `json:"batch_number,omitempty"`
	Category     *string    `json:"category,omitempty"`
}

// Apply merges the patch into m and stamps UpdatedAt.
func (p *MedicinePatch) Apply(m *Medicine) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Form != nil {
		m.Form = *p.Form
	}
	if p.Dosage != nil {
		m.Dosage = *p.Dosage
	}
	if p.Barcode != nil {
		m.Barcode = *p.Barcode
	}
	if p.CurrentStock != nil {
		m.CurrentStock = *p.CurrentStock
	}
	if p.MinStock != nil {
		m.MinStock = *p.MinStock
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Cost != nil {
		m.Cost = *p.Cost
	}
	if p.ExpiryDate != nil {
		m.ExpiryDate = *p.ExpiryDate
	}
	if p.Supplier != nil {
		m.Supplier = *p.Supplier
	}
	if p.BatchNumber != nil {
		m.BatchNumber = *p.BatchNumber
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	m.UpdatedAt = time.Now()
}
