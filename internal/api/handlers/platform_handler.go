package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
)

// PlatformService defines the interface for super-admin operations
type PlatformService interface {
	AddPharmacy(ctx context.Context, pharmacy *entities.Pharmacy) error
	UpdatePharmacy(ctx context.Context, id string, patch *entities.PharmacyPatch) (*entities.Pharmacy, error)
	DeletePharmacy(ctx context.Context, id string) error
	GetPharmacy(ctx context.Context, id string) (*entities.Pharmacy, error)
	ListPharmacies(ctx context.Context, filter repositories.PharmacyFilter) ([]*entities.Pharmacy, error)

	SubmitPharmacyRequest(ctx context.Context, request *entities.PharmacyRequest) error
	ApprovePharmacyRequest(ctx context.Context, id string) (*entities.Pharmacy, error)
	RejectPharmacyRequest(ctx context.Context, id string) (*entities.PharmacyRequest, error)
	ListPharmacyRequests(ctx context.Context) ([]*entities.PharmacyRequest, error)

	AddSystemUser(ctx context.Context, user *entities.SystemUser) error
	UpdateSystemUser(ctx context.Context, id string, patch *entities.SystemUserPatch) (*entities.SystemUser, error)
	DeleteSystemUser(ctx context.Context, id string) error
	ListSystemUsers(ctx context.Context) ([]*entities.SystemUser, error)

	UpdateSubscription(ctx context.Context, id string, patch *entities.SubscriptionPatch) (*entities.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]*entities.Subscription, error)
}

// PlatformHandler handles super-admin HTTP requests
type PlatformHandler struct {
	service PlatformService
}

// NewPlatformHandler creates a new platform handler
func NewPlatformHandler(service PlatformService) *PlatformHandler {
	return &PlatformHandler{
		service: service,
	}
}

// CreatePharmacy handles POST /api/admin/pharmacies
func (h *PlatformHandler) CreatePharmacy(w http.ResponseWriter, r *http.Request) {
	var pharmacy entities.Pharmacy
	if err := json.NewDecoder(r.Body).Decode(&pharmacy); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddPharmacy(r.Context(), &pharmacy); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, pharmacy)
}

// UpdatePharmacy handles PATCH /api/admin/pharmacies/{id}
func (h *PlatformHandler) UpdatePharmacy(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.PharmacyPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	pharmacy, err := h.service.UpdatePharmacy(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pharmacy)
}

// DeletePharmacy handles DELETE /api/admin/pharmacies/{id}
func (h *PlatformHandler) DeletePharmacy(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePharmacy(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPharmacy handles GET /api/admin/pharmacies/{id}
func (h *PlatformHandler) GetPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.service.GetPharmacy(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pharmacy)
}

// ListPharmacies handles GET /api/admin/pharmacies
func (h *PlatformHandler) ListPharmacies(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PharmacyFilter{
		Status:           entities.PharmacyStatus(r.URL.Query().Get("status")),
		SubscriptionType: entities.SubscriptionType(r.URL.Query().Get("subscription_type")),
		Region:           r.URL.Query().Get("region"),
		Limit:            parseIntParam(r, "limit", 0),
		Offset:           parseIntParam(r, "offset", 0),
	}

	pharmacies, err := h.service.ListPharmacies(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pharmacies": pharmacies,
		"count":      len(pharmacies),
	})
}

// SubmitRequest handles POST /api/admin/pharmacy-requests
func (h *PlatformHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var request entities.PharmacyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.SubmitPharmacyRequest(r.Context(), &request); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, request)
}

// ApproveRequest handles POST /api/admin/pharmacy-requests/{id}/approve
func (h *PlatformHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.service.ApprovePharmacyRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pharmacy)
}

// RejectRequest handles POST /api/admin/pharmacy-requests/{id}/reject
func (h *PlatformHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	request, err := h.service.RejectPharmacyRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, request)
}

// ListRequests handles GET /api/admin/pharmacy-requests
func (h *PlatformHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListPharmacyRequests(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"count":    len(requests),
	})
}

// CreateSystemUser handles POST /api/admin/users
func (h *PlatformHandler) CreateSystemUser(w http.ResponseWriter, r *http.Request) {
	var user entities.SystemUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddSystemUser(r.Context(), &user); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// UpdateSystemUser handles PATCH /api/admin/users/{id}
func (h *PlatformHandler) UpdateSystemUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.SystemUserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.UpdateSystemUser(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// DeleteSystemUser handles DELETE /api/admin/users/{id}
func (h *PlatformHandler) DeleteSystemUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSystemUser(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSystemUsers handles GET /api/admin/users
func (h *PlatformHandler) ListSystemUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListSystemUsers(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// UpdateSubscription handles PATCH /api/admin/subscriptions/{id}
func (h *PlatformHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch entities.SubscriptionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	subscription, err := h.service.UpdateSubscription(r.Context(), id, &patch)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, subscription)
}

// ListSubscriptions handles GET /api/admin/subscriptions
func (h *PlatformHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subscriptions, err := h.service.ListSubscriptions(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"subscriptions": subscriptions,
		"count":         len(subscriptions),
	})
}
