package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// TelepharmacyService defines the interface for teleconsultation operations
type TelepharmacyService interface {
	AddWaitingPatient(ctx context.Context, patient *entities.TeleconsultationPatient) error
	ListWaitingPatients(ctx context.Context) ([]*entities.TeleconsultationPatient, error)

	StartConsultation(ctx context.Context, patientID, pharmacistID string, consultationType entities.ConsultationType) (*entities.Consultation, error)
	EndConsultation(ctx context.Context, id, notes string, rating *int) (*entities.Consultation, error)
	ActiveConsultation(ctx context.Context) (*entities.Consultation, error)
	ListConsultations(ctx context.Context) ([]*entities.Consultation, error)

	SendMessage(ctx context.Context, consultationID, senderID string, senderRole entities.SenderRole, body string, attachments []string) (*entities.ChatMessage, error)
	ListMessages(ctx context.Context, consultationID string) ([]*entities.ChatMessage, error)
	MarkMessagesRead(ctx context.Context, consultationID string) error

	CreatePrescription(ctx context.Context, prescription *entities.DigitalPrescription) error
	ValidatePrescription(ctx context.Context, id, pharmacistID string) (*entities.DigitalPrescription, error)
	DispensePrescription(ctx context.Context, id string) (*entities.DigitalPrescription, error)
	CancelPrescription(ctx context.Context, id string) (*entities.DigitalPrescription, error)
	GetPrescription(ctx context.Context, id string) (*entities.DigitalPrescription, error)
	ListPrescriptions(ctx context.Context) ([]*entities.DigitalPrescription, error)

	CreateFollowUp(ctx context.Context, followUp *entities.TreatmentFollowUp) error
	UpdateAdherence(ctx context.Context, followUpID, medicineID string, taken bool, notes string) error
	AddSideEffect(ctx context.Context, followUpID, effect string, severity entities.SideEffectSeverity) error
	GetFollowUp(ctx context.Context, id string) (*entities.TreatmentFollowUp, error)
	ListFollowUps(ctx context.Context) ([]*entities.TreatmentFollowUp, error)

	UpdatePharmacistStatus(ctx context.Context, pharmacistID, name string, status entities.AvailabilityStatus) error
	ListAvailability(ctx context.Context) ([]*entities.PharmacistAvailability, error)

	AddNotification(ctx context.Context, notification *entities.Notification) error
	MarkNotificationRead(ctx context.Context, id string) error
	ListNotifications(ctx context.Context) ([]*entities.Notification, error)
	UnreadNotifications(ctx context.Context) ([]*entities.Notification, error)
}

// TelepharmacyHandler handles teleconsultation HTTP requests
type TelepharmacyHandler struct {
	service TelepharmacyService
}

// NewTelepharmacyHandler creates a new telepharmacy handler
func NewTelepharmacyHandler(service TelepharmacyService) *TelepharmacyHandler {
	return &TelepharmacyHandler{
		service: service,
	}
}

// JoinWaitingRoom handles POST /api/telepharmacy/waiting-room
func (h *TelepharmacyHandler) JoinWaitingRoom(w http.ResponseWriter, r *http.Request) {
	var patient entities.TeleconsultationPatient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.AddWaitingPatient(r.Context(), &patient); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, patient)
}

// ListWaitingRoom handles GET /api/telepharmacy/waiting-room
func (h *TelepharmacyHandler) ListWaitingRoom(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.ListWaitingPatients(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patients": patients,
		"count":    len(patients),
	})
}

type startConsultationRequest struct {
	PatientID    string                    `json:"patient_id"`
	PharmacistID string                    `json:"pharmacist_id"`
	Type         entities.ConsultationType `json:"type"`
}

// StartConsultation handles POST /api/telepharmacy/consultations
func (h *TelepharmacyHandler) StartConsultation(w http.ResponseWriter, r *http.Request) {
	var req startConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.PatientID == "" {
		respondWithError(w, http.StatusBadRequest, "patient_id is required")
		return
	}

	consultation, err := h.service.StartConsultation(r.Context(), req.PatientID, req.PharmacistID, req.Type)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, consultation)
}

type endConsultationRequest struct {
	Notes  string `json:"notes"`
	Rating *int   `json:"rating,omitempty"`
}

// EndConsultation handles POST /api/telepharmacy/consultations/{id}/end
func (h *TelepharmacyHandler) EndConsultation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req endConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	consultation, err := h.service.EndConsultation(r.Context(), id, req.Notes, req.Rating)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, consultation)
}

// GetActiveConsultation handles GET /api/telepharmacy/consultations/active
func (h *TelepharmacyHandler) GetActiveConsultation(w http.ResponseWriter, r *http.Request) {
	consultation, err := h.service.ActiveConsultation(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"consultation": consultation,
	})
}

// ListConsultations handles GET /api/telepharmacy/consultations
func (h *TelepharmacyHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.service.ListConsultations(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"consultations": consultations,
		"count":         len(consultations),
	})
}

type sendMessageRequest struct {
	SenderID    string              `json:"sender_id"`
	SenderRole  entities.SenderRole `json:"sender_role"`
	Body        string              `json:"body"`
	Attachments []string            `json:"attachments,omitempty"`
}

// SendMessage handles POST /api/telepharmacy/consultations/{id}/messages
func (h *TelepharmacyHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Body == "" && len(req.Attachments) == 0 {
		respondWithError(w, http.StatusBadRequest, "message body or attachments are required")
		return
	}

	message, err := h.service.SendMessage(r.Context(), id, req.SenderID, req.SenderRole, req.Body, req.Attachments)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, message)
}

// ListMessages handles GET /api/telepharmacy/consultations/{id}/messages
func (h *TelepharmacyHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// MarkMessagesRead handles POST /api/telepharmacy/consultations/{id}/messages/read
func (h *TelepharmacyHandler) MarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkMessagesRead(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreatePrescription handles POST /api/telepharmacy/prescriptions
func (h *TelepharmacyHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var prescription entities.DigitalPrescription
	if err := json.NewDecoder(r.Body).Decode(&prescription); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreatePrescription(r.Context(), &prescription); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, prescription)
}

type validatePrescriptionRequest struct {
	PharmacistID string `json:"pharmacist_id"`
}

// ValidatePrescription handles POST /api/telepharmacy/prescriptions/{id}/validate
func (h *TelepharmacyHandler) ValidatePrescription(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req validatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	prescription, err := h.service.ValidatePrescription(r.Context(), id, req.PharmacistID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prescription)
}

// DispensePrescription handles POST /api/telepharmacy/prescriptions/{id}/dispense
func (h *TelepharmacyHandler) DispensePrescription(w http.ResponseWriter, r *http.Request) {
	prescription, err := h.service.DispensePrescription(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prescription)
}

// CancelPrescription handles POST /api/telepharmacy/prescriptions/{id}/cancel
func (h *TelepharmacyHandler) CancelPrescription(w http.ResponseWriter, r *http.Request) {
	prescription, err := h.service.CancelPrescription(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prescription)
}

// GetPrescription handles GET /api/telepharmacy/prescriptions/{id}
func (h *TelepharmacyHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	prescription, err := h.service.GetPrescription(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prescription)
}

// ListPrescriptions handles GET /api/telepharmacy/prescriptions
func (h *TelepharmacyHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
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

// CreateFollowUp handles POST /api/telepharmacy/follow-ups
func (h *TelepharmacyHandler) CreateFollowUp(w http.ResponseWriter, r *http.Request) {
	var followUp entities.TreatmentFollowUp
	if err := json.NewDecoder(r.Body).Decode(&followUp); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreateFollowUp(r.Context(), &followUp); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, followUp)
}

type adherenceRequest struct {
	MedicineID string `json:"medicine_id"`
	Taken      bool   `json:"taken"`
	Notes      string `json:"notes,omitempty"`
}

// RecordAdherence handles POST /api/telepharmacy/follow-ups/{id}/adherence
func (h *TelepharmacyHandler) RecordAdherence(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req adherenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.UpdateAdherence(r.Context(), id, req.MedicineID, req.Taken, req.Notes); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type sideEffectRequest struct {
	Effect   string                      `json:"effect"`
	Severity entities.SideEffectSeverity `json:"severity"`
}

// RecordSideEffect handles POST /api/telepharmacy/follow-ups/{id}/side-effects
func (h *TelepharmacyHandler) RecordSideEffect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req sideEffectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Effect == "" {
		respondWithError(w, http.StatusBadRequest, "effect is required")
		return
	}

	if err := h.service.AddSideEffect(r.Context(), id, req.Effect, req.Severity); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetFollowUp handles GET /api/telepharmacy/follow-ups/{id}
func (h *TelepharmacyHandler) GetFollowUp(w http.ResponseWriter, r *http.Request) {
	followUp, err := h.service.GetFollowUp(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, followUp)
}

// ListFollowUps handles GET /api/telepharmacy/follow-ups
func (h *TelepharmacyHandler) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	followUps, err := h.service.ListFollowUps(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"follow_ups": followUps,
		"count":      len(followUps),
	})
}

type availabilityRequest struct {
	PharmacistID string                      `json:"pharmacist_id"`
	Name         string                      `json:"name"`
	Status       entities.AvailabilityStatus `json:"status"`
}

// UpdateAvailability handles PUT /api/telepharmacy/availability
func (h *TelepharmacyHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.PharmacistID == "" {
		respondWithError(w, http.StatusBadRequest, "pharmacist_id is required")
		return
	}

	if err := h.service.UpdatePharmacistStatus(r.Context(), req.PharmacistID, req.Name, req.Status); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAvailability handles GET /api/telepharmacy/availability
func (h *TelepharmacyHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.service.ListAvailability(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"availability": availability,
		"count":        len(availability),
	})
}

// CreateNotification handles POST /api/telepharmacy/notifications
func (h *TelepharmacyHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var notification entities.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if notification.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required")
		return
	}

	if err := h.service.AddNotification(r.Context(), &notification); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, notification)
}

// ListNotifications handles GET /api/telepharmacy/notifications
func (h *TelepharmacyHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	var notifications []*entities.Notification
	var err error

	if r.URL.Query().Get("unread") == "true" {
		notifications, err = h.service.UnreadNotifications(r.Context())
	} else {
		notifications, err = h.service.ListNotifications(r.Context())
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead handles POST /api/telepharmacy/notifications/{id}/read
func (h *TelepharmacyHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkNotificationRead(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
