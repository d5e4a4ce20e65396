package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
)

// SaleHandler handles point-of-sale HTTP requests
type SaleHandler struct {
	service InventoryService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service InventoryService) *SaleHandler {
	return &SaleHandler{
		service: service,
	}
}

// RecordSale handles POST /api/sales
func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var sale entities.Sale
	if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	recorded, err := h.service.RecordSale(r.Context(), &sale)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, recorded)
}

// GetSale handles GET /api/sales/{id}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "sale ID is required")
		return
	}

	sale, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sale)
}

// ListSales handles GET /api/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	filter := repositories.SaleFilter{
		CashierID: r.URL.Query().Get("cashier_id"),
		Limit:     parseIntParam(r, "limit", 0),
		Offset:    parseIntParam(r, "offset", 0),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid from date format (use RFC3339)")
			return
		}
		filter.From = &parsed
	}
	if to := r.URL.Query().Get("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid to date format (use RFC3339)")
			return
		}
		filter.To = &parsed
	}

	sales, err := h.service.ListSales(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"sales": sales,
		"count": len(sales),
	})
}
