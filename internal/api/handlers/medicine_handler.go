package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
)

// InventoryService defines the interface for medicine and sale operations
type InventoryService interface {
	AddMedicine(ctx context.Context, medicine *entities.Medicine) error
	UpdateMedicine(ctx context.Context, id string, patch *entities.MedicinePatch) (*entities.Medicine, error)
	DeleteMedicine(ctx context.Context, id string) error
	GetMedicine(ctx context.Context, id string) (*entities.Medicine, error)
	ListMedicines(ctx context.Context, filter repositories.MedicineFilter) ([]*entities.Medicine, error)
	SearchMedicines(ctx context.Context, query string, limit int) ([]*entities.Medicine, error)
	RecordSale(ctx context.Context, sale *entities.Sale) (*entities.Sale, error)
	GetSale(ctx context.Context, id string) (*entities.Sale, error)
	ListSales(ctx context.Context, filter repositories.SaleFilter) ([]*entities.Sale, error)
}

// MedicineHandler handles medicine-related HTTP requests
type MedicineHandler struct {
	service InventoryService
}

// NewMedicineHandler creates a new medicine handler
func NewMedicineHandler(service InventoryService) *MedicineHandler {
	return &MedicineHandler{
		service: service,
	}
}

// CreateMedicine handles POST /api/medicines
func (h *MedicineHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var medicine entities.Medicine
	if err := json.NewDecoder(r.Body).Decode(&medicine); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddMedicine(r.Context(), &medicine); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, medicine)
}

// GetMedicine handles GET /api/medicines/{id}
func (h *MedicineHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "medicine ID is required")
		return
	}

	medicine, err := h.service.GetMedicine(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, medicine)
}

// ListMedicines handles GET /api/medicines
func (h *MedicineHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	filter := repositories.MedicineFilter{
		Category: r.URL.Query().Get("category"),
		Supplier: r.URL.Query().Get("supplier"),
		LowStock: r.URL.Query().Get("low_stock") == "true",
		Limit:    parseIntParam(r, "limit", 0),
		Offset:   parseIntParam(r, "offset", 0),
	}

	medicines, err := h.service.ListMedicines(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"medicines": medicines,
		"count":     len(medicines),
	})
}

// SearchMedicines handles GET /api/medicines/search
func (h *MedicineHandler) SearchMedicines(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	medicines, err := h.service.SearchMedicines(r.Context(), query, parseIntParam(r, "limit", 20))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"medicines": medicines,
		"count":     len(medicines),
	})
}

// UpdateMedicine handles PATCH /api/medicines/{id}
func (h *MedicineHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "medicine ID is required")
		return
	}

	var patch entities.MedicinePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	medicine, err := h.service.UpdateMedicine(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, medicine)
}

// DeleteMedicine handles DELETE /api/medicines/{id}
func (h *MedicineHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "medicine ID is required")
		return
	}

	if err := h.service.DeleteMedicine(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIntParam(r *http.Request, name string, defaultValue int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
