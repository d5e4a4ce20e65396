package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// OrderAdapter implements OrderRepository with an in-process store
type OrderAdapter struct {
	mu    sync.RWMutex
	items []*entities.Order
	byID  map[string]*entities.Order
}

// NewOrderAdapter creates a new in-memory order adapter
func NewOrderAdapter() *OrderAdapter {
	return &OrderAdapter{byID: make(map[string]*entities.Order)}
}

func (a *OrderAdapter) Create(ctx context.Context, order *entities.Order) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[order.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("order with id %s already exists", order.ID))
	}

	stored := copyOrder(order)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *OrderAdapter) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	return copyOrder(stored), nil
}

func (a *OrderAdapter) Update(ctx context.Context, order *entities.Order) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[order.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", order.ID))
	}
	*stored = *copyOrder(order)
	return nil
}

func (a *OrderAdapter) List(ctx context.Context) ([]*entities.Order, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyOrder), nil
}

func copyOrder(o *entities.Order) *entities.Order {
	c := *o
	c.Lines = append([]entities.OrderLine(nil), o.Lines...)
	return &c
}

// PrescriptionAdapter implements PrescriptionRepository with an in-process store
type PrescriptionAdapter struct {
	mu    sync.RWMutex
	items []*entities.Prescription
	byID  map[string]*entities.Prescription
}

// NewPrescriptionAdapter creates a new in-memory prescription adapter
func NewPrescriptionAdapter() *PrescriptionAdapter {
	return &PrescriptionAdapter{byID: make(map[string]*entities.Prescription)}
}

func (a *PrescriptionAdapter) Create(ctx context.Context, prescription *entities.Prescription) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[prescription.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("prescription with id %s already exists", prescription.ID))
	}

	stored := copyPrescription(prescription)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *PrescriptionAdapter) GetByID(ctx context.Context, id string) (*entities.Prescription, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("prescription with id %s not found", id))
	}
	return copyPrescription(stored), nil
}

func (a *PrescriptionAdapter) Update(ctx context.Context, prescription *entities.Prescription) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[prescription.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("prescription with id %s not found", prescription.ID))
	}
	*stored = *copyPrescription(prescription)
	return nil
}

func (a *PrescriptionAdapter) List(ctx context.Context) ([]*entities.Prescription, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyPrescription), nil
}

func copyPrescription(p *entities.Prescription) *entities.Prescription {
	c := *p
	c.Items = append([]entities.PrescriptionItem(nil), p.Items...)
	return &c
}

// PatientAdapter implements PatientRepository with an in-process store
type PatientAdapter struct {
	mu    sync.RWMutex
	items []*entities.Patient
	byID  map[string]*entities.Patient
}

// NewPatientAdapter creates a new in-memory patient adapter
func NewPatientAdapter() *PatientAdapter {
	return &PatientAdapter{byID: make(map[string]*entities.Patient)}
}

func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[patient.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("patient with id %s already exists", patient.ID))
	}

	stored := copyPatient(patient)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	return copyPatient(stored), nil
}

func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[patient.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", patient.ID))
	}
	*stored = *copyPatient(patient)
	return nil
}

// Delete removes the patient record. Sales, prescriptions, and invoices
// that reference it keep their patient id as a soft reference.
func (a *PatientAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[id]; !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
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

func (a *PatientAdapter) List(ctx context.Context) ([]*entities.Patient, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyPatient), nil
}

func copyPatient(p *entities.Patient) *entities.Patient {
	c := *p
	c.Allergies = append([]string(nil), p.Allergies...)
	return &c
}

// InvoiceAdapter implements InvoiceRepository with an in-process store
type InvoiceAdapter struct {
	mu    sync.RWMutex
	items []*entities.Invoice
	byID  map[string]*entities.Invoice
}

// NewInvoiceAdapter creates a new in-memory invoice adapter
func NewInvoiceAdapter() *InvoiceAdapter {
	return &InvoiceAdapter{byID: make(map[string]*entities.Invoice)}
}

func (a *InvoiceAdapter) Create(ctx context.Context, invoice *entities.Invoice) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[invoice.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("invoice with id %s already exists", invoice.ID))
	}

	stored := copyInvoice(invoice)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *InvoiceAdapter) GetByID(ctx context.Context, id string) (*entities.Invoice, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", id))
	}
	return copyInvoice(stored), nil
}

func (a *InvoiceAdapter) Update(ctx context.Context, invoice *entities.Invoice) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[invoice.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("invoice with id %s not found", invoice.ID))
	}
	*stored = *copyInvoice(invoice)
	return nil
}

func (a *InvoiceAdapter) List(ctx context.Context) ([]*entities.Invoice, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyInvoice), nil
}

func copyInvoice(i *entities.Invoice) *entities.Invoice {
	c := *i
	return &c
}
