package repositories

import (
	"context"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// OrderRepository defines the interface for supplier-order operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Update(ctx context.Context, order *entities.Order) error
	List(ctx context.Context) ([]*entities.Order, error)
}

// PrescriptionRepository defines the interface for paper-prescription operations
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entities.Prescription) error
	GetByID(ctx context.Context, id string) (*entities.Prescription, error)
	Update(ctx context.Context, prescription *entities.Prescription) error
	List(ctx context.Context) ([]*entities.Prescription, error)
}

// PatientRepository defines the interface for patient-record operations.
// Delete does not cascade: sales, prescriptions, and invoices keep their
// patient id as a soft reference.
type PatientRepository interface {
	Create(ctx context.Context, patient *entities.Patient) error
	GetByID(ctx context.Context, id string) (*entities.Patient, error)
	Update(ctx context.Context, patient *entities.Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Patient, error)
}

// InvoiceRepository defines the interface for invoice operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entities.Invoice) error
	GetByID(ctx context.Context, id string) (*entities.Invoice, error)
	Update(ctx context.Context, invoice *entities.Invoice) error
	List(ctx context.Context) ([]*entities.Invoice, error)
}
