package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
)

// RecordsService handles orders, prescriptions, patients, and invoices
type RecordsService struct {
	orders        repositories.OrderRepository
	prescriptions repositories.PrescriptionRepository
	patients      repositories.PatientRepository
	invoices      repositories.InvoiceRepository
}

// NewRecordsService creates a new records service
func NewRecordsService(
	orders repositories.OrderRepository,
	prescriptions repositories.PrescriptionRepository,
	patients repositories.PatientRepository,
	invoices repositories.InvoiceRepository,
) *RecordsService {
	return &RecordsService{
		orders:        orders,
		prescriptions: prescriptions,
		patients:      patients,
		invoices:      invoices,
	}
}

// AddOrder creates a supplier order, generating an id when absent
func (s *RecordsService) AddOrder(ctx context.Context, order *entities.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = entities.OrderStatusDraft
	}
	stampTimes(&order.CreatedAt, &order.UpdatedAt)
	return s.orders.Create(ctx, order)
}

// UpdateOrder merges the patch into the order
func (s *RecordsService) UpdateOrder(ctx context.Context, id string, patch *entities.OrderPatch) (*entities.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(order)
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder retrieves an order by ID
func (s *RecordsService) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders retrieves orders in insertion order
func (s *RecordsService) ListOrders(ctx context.Context) ([]*entities.Order, error) {
	return s.orders.List(ctx)
}

// AddPrescription creates a paper prescription record
func (s *RecordsService) AddPrescription(ctx context.Context, prescription *entities.Prescription) error {
	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}
	if prescription.Status == "" {
		prescription.Status = entities.PrescriptionStatusNew
	}
	if prescription.Date.IsZero() {
		prescription.Date = time.Now()
	}
	stampTimes(&prescription.CreatedAt, &prescription.UpdatedAt)
	return s.prescriptions.Create(ctx, prescription)
}

// UpdatePrescription merges the patch into the prescription
func (s *RecordsService) UpdatePrescription(ctx context.Context, id string, patch *entities.PrescriptionPatch) (*entities.Prescription, error) {
	prescription, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(prescription)
	if err := s.prescriptions.Update(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// GetPrescription retrieves a prescription by ID
func (s *RecordsService) GetPrescription(ctx context.Context, id string) (*entities.Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

// ListPrescriptions retrieves prescriptions in insertion order
func (s *RecordsService) ListPrescriptions(ctx context.Context) ([]*entities.Prescription, error) {
	return s.prescriptions.List(ctx)
}

// AddPatient creates a patient record
func (s *RecordsService) AddPatient(ctx context.Context, patient *entities.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	stampTimes(&patient.CreatedAt, &patient.UpdatedAt)
	return s.patients.Create(ctx, patient)
}

// UpdatePatient merges the patch into the patient record
func (s *RecordsService) UpdatePatient(ctx context.Context, id string, patch *entities.PatientPatch) (*entities.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(patient)
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// DeletePatient removes a patient record. References elsewhere stay as
// soft references.
func (s *RecordsService) DeletePatient(ctx context.Context, id string) error {
	return s.patients.Delete(ctx, id)
}

// GetPatient retrieves a patient by ID
func (s *RecordsService) GetPatient(ctx context.Context, id string) (*entities.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// ListPatients retrieves patients in insertion order
func (s *RecordsService) ListPatients(ctx context.Context) ([]*entities.Patient, error) {
	return s.patients.List(ctx)
}

// AddInvoice creates an invoice
func (s *RecordsService) AddInvoice(ctx context.Context, invoice *entities.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.Status == "" {
		invoice.Status = entities.InvoiceStatusDraft
	}
	if invoice.IssuedAt.IsZero() {
		invoice.IssuedAt = time.Now()
	}
	stampTimes(&invoice.CreatedAt, &invoice.UpdatedAt)
	return s.invoices.Create(ctx, invoice)
}

// UpdateInvoice merges the patch into the invoice
func (s *RecordsService) UpdateInvoice(ctx context.Context, id string, patch *entities.InvoicePatch) (*entities.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(invoice)
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (s *RecordsService) GetInvoice(ctx context.Context, id string) (*entities.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}

// ListInvoices retrieves invoices in insertion order
func (s *RecordsService) ListInvoices(ctx context.Context) ([]*entities.Invoice, error) {
	return s.invoices.List(ctx)
}

func stampTimes(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
