package entities

import (
	"time"
)

// InvoiceStatus represents the billing state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// Invoice represents a billing document, optionally backed by a sale
type Invoice struct {
	ID        string        `json:"id" db:"id"`
	PatientID string        `json:"patient_id" db:"patient_id"`
	SaleID    string        `json:"sale_id,omitempty" db:"sale_id"`
	Amount    float64       `json:"amount" db:"amount"`
	Status    InvoiceStatus `json:"status" db:"status"`
	IssuedAt  time.Time     `json:"issued_at" db:"issued_at"`
	DueAt     time.Time     `json:"due_at" db:"due_at"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// InvoicePatch carries a partial invoice update
type InvoicePatch struct {
	Amount *float64       `json:"amount,omitempty"`
	Status *InvoiceStatus `json:"status,omitempty"`
	DueAt  *time.Time     `json:"due_at,omitempty"`
}

// Apply merges the patch into inv and stamps UpdatedAt.
func (p *InvoicePatch) Apply(inv *Invoice) {
	if p.Amount != nil {
		inv.Amount = *p.Amount
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.DueAt != nil {
		inv.DueAt = *p.DueAt
	}
	inv.UpdatedAt = time.Now()
}
