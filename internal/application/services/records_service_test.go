package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

func newRecordsService() *RecordsService {
	return NewRecordsService(
		memory.NewOrderAdapter(),
		memory.NewPrescriptionAdapter(),
		memory.NewPatientAdapter(),
		memory.NewInvoiceAdapter(),
	)
}

func TestRecordsService_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newRecordsService()

	order := &entities.Order{
		Supplier: "CERP Rouen",
		Lines:    []entities.OrderLine{{MedicineID: "m-1", Name: "Doliprane 1000mg", Quantity: 100, UnitCost: 1.20}},
		Total:    120,
	}
	require.NoError(t, svc.AddOrder(ctx, order))
	assert.Equal(t, entities.OrderStatusDraft, order.Status)

	placed := entities.OrderStatusPlaced
	updated, err := svc.UpdateOrder(ctx, order.ID, &entities.OrderPatch{Status: &placed})
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPlaced, updated.Status)
	assert.Equal(t, "CERP Rouen", updated.Supplier)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}

func TestRecordsService_Prescription(t *testing.T) {
	ctx := context.Background()
	svc := newRecordsService()

	prescription := &entities.Prescription{
		PatientID:  "p-1",
		DoctorName: "Dr. Lemoine",
		Items:      []entities.PrescriptionItem{{Name: "Amoxicilline 500mg", Quantity: 2}},
	}
	require.NoError(t, svc.AddPrescription(ctx, prescription))
	assert.Equal(t, entities.PrescriptionStatusNew, prescription.Status)
	assert.False(t, prescription.Date.IsZero())

	got, err := svc.GetPrescription(ctx, prescription.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Lemoine", got.DoctorName)
}

func TestRecordsService_PatientDelete(t *testing.T) {
	ctx := context.Background()
	svc := newRecordsService()

	patient := &entities.Patient{Name: "Paul Martin", Allergies: []string{"pénicilline"}}
	require.NoError(t, svc.AddPatient(ctx, patient))

	notes := "préfère les génériques"
	updated, err := svc.UpdatePatient(ctx, patient.ID, &entities.PatientPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	require.NoError(t, svc.DeletePatient(ctx, patient.ID))

	_, err = svc.GetPatient(ctx, patient.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.DeletePatient(ctx, patient.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err), "deleting twice reports not found")
}

func TestRecordsService_Invoice(t *testing.T) {
	ctx := context.Background()
	svc := newRecordsService()

	invoice := &entities.Invoice{PatientID: "p-1", Amount: 42.50}
	require.NoError(t, svc.AddInvoice(ctx, invoice))
	assert.Equal(t, entities.InvoiceStatusDraft, invoice.Status)
	assert.False(t, invoice.IssuedAt.IsZero())

	paid := entities.InvoiceStatusPaid
	updated, err := svc.UpdateInvoice(ctx, invoice.ID, &entities.InvoicePatch{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, entities.InvoiceStatusPaid, updated.Status)
}
