package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// RecordsService defines the interface for order, prescription, patient,
// and invoice operations
type RecordsService interface {
	AddOrder(ctx context.Context, order *entities.Order) error
	UpdateOrder(ctx context.Context, id string, patch *entities.OrderPatch) (*entities.Order, error)
	GetOrder(ctx context.Context, id string) (*entities.Order, error)
	ListOrders(ctx context.Context) ([]*entities.Order, error)

	AddPrescription(ctx context.Context, prescription *entities.Prescription) error
	UpdatePrescription(ctx context.Context, id string, patch *entities.PrescriptionPatch) (*entities.Prescription, error)
	GetPrescription(ctx context.Context, id string) (*entities.Prescription, error)
	ListPrescriptions(ctx context.Context) ([]*entities.Prescription, error)

	AddPatient(ctx context.Context, patient *entities.Patient) error
	UpdatePatient(ctx context.Context, id string, patch *entities.PatientPatch) (*entities.Patient, error)
	DeletePatient(ctx context.Context, id string) error
	GetPatient(ctx context.Context, id string) (*entities.Patient, error)
	ListPatients(ctx context.Context) ([]*entities.Patient, error)

	AddInvoice(ctx context.Context, invoice *entities.Invoice) error
	UpdateInvoice(ctx context.Context, id string, patch *entities.InvoicePatch) (*entities.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*entities.Invoice, error)
	ListInvoices(ctx context.Context) ([]*entities.Invoice, error)
}

// RecordsHandler handles order, prescription, patient, and invoice HTTP requests
type RecordsHandler struct {
	service RecordsService
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(service RecordsService) *RecordsHandler {
	return &RecordsHandler{
		service: service,
	}
}

// CreateOrder handles POST /api/orders
func (h *RecordsHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var order entities.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddOrder(r.Context(), &order); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

// UpdateOrder handles PATCH /api/orders/{id}
func (h *RecordsHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	order, err := h.service.UpdateOrder(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

// GetOrder handles GET /api/orders/{id}
func (h *RecordsHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

// ListOrders handles GET /api/orders
func (h *RecordsHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// CreatePrescription handles POST /api/prescriptions
func (h *RecordsHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var prescription entities.Prescription
	if err := json.NewDecoder(r.Body).Decode(&prescription); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddPrescription(r.Context(), &prescription); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, prescription)
}

// UpdatePrescription handles PATCH /api/prescriptions/{id}
func (h *RecordsHandler) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.PrescriptionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	prescription, err := h.service.UpdatePrescription(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prescription)
}

// GetPrescription handles GET /api/prescriptions/{id}
func (h *RecordsHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	prescription, err := h.service.GetPrescription(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prescription)
}

// ListPrescriptions handles GET /api/prescriptions
func (h *RecordsHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.service.ListPrescriptions(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"prescriptions": prescriptions,
		"count":         len(prescriptions),
	})
}

// CreatePatient handles POST /api/patients
func (h *RecordsHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var patient entities.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddPatient(r.Context(), &patient); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, patient)
}

// UpdatePatient handles PATCH /api/patients/{id}
func (h *RecordsHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.PatientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patient, err := h.service.UpdatePatient(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// DeletePatient handles DELETE /api/patients/{id}
func (h *RecordsHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePatient(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPatient handles GET /api/patients/{id}
func (h *RecordsHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.GetPatient(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patient)
}

// ListPatients handles GET /api/patients
func (h *RecordsHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.ListPatients(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

// CreateInvoice handles POST /api/invoices
func (h *RecordsHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var invoice entities.Invoice
	if err := json.NewDecoder(r.Body).Decode(&invoice); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddInvoice(r.Context(), &invoice); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, invoice)
}

// UpdateInvoice handles PATCH /api/invoices/{id}
func (h *RecordsHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.InvoicePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	invoice, err := h.service.UpdateInvoice(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, invoice)
}

// GetInvoice handles GET /api/invoices/{id}
func (h *RecordsHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.service.GetInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, invoice)
}

// ListInvoices handles GET /api/invoices
func (h *RecordsHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.ListInvoices(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"count":    len(invoices),
	})
}
