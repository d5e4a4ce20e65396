package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/api/handlers"
	"github.com/santecare/pharmacare-backend/internal/application/services"
	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

func newTelepharmacyHandler() *handlers.TelepharmacyHandler {
	svc := services.NewTelepharmacyService(
		memory.NewWaitingRoomAdapter(),
		memory.NewConsultationAdapter(),
		memory.NewChatMessageAdapter(),
		memory.NewDigitalPrescriptionAdapter(),
		memory.NewFollowUpAdapter(),
		memory.NewAvailabilityAdapter(),
		memory.NewNotificationAdapter(),
		nil,
		nil,
		"ph-1",
	)
	return handlers.NewTelepharmacyHandler(svc)
}

func joinWaitingRoom(t *testing.T, handler *handlers.TelepharmacyHandler) entities.TeleconsultationPatient {
	t.Helper()

	body, _ := json.Marshal(entities.TeleconsultationPatient{
		Name:          "Fatima Zahra",
		RequestReason: "dosage question",
		Priority:      entities.PriorityMedium,
	})
	req := httptest.NewRequest("POST", "/api/telepharmacy/waiting-room", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.JoinWaitingRoom(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var patient entities.TeleconsultationPatient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patient))
	return patient
}

func startConsultation(t *testing.T, handler *handlers.TelepharmacyHandler, patientID string) (entities.Consultation, int) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"patient_id":    patientID,
		"pharmacist_id": "2",
		"type":          "chat",
	})
	req := httptest.NewRequest("POST", "/api/telepharmacy/consultations", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.StartConsultation(w, req)

	var consultation entities.Consultation
	if w.Code == http.StatusCreated {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &consultation))
	}
	return consultation, w.Code
}

func TestTelepharmacyHandler_StartConsultation(t *testing.T) {
	t.Run("successfully starts consultation", func(t *testing.T) {
		handler := newTelepharmacyHandler()
		patient := joinWaitingRoom(t, handler)

		consultation, code := startConsultation(t, handler, patient.ID)
		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, entities.ConsultationStatusActive, consultation.Status)
	})

	t.Run("returns conflict when one is already active", func(t *testing.T) {
		handler := newTelepharmacyHandler()
		first := joinWaitingRoom(t, handler)
		second := joinWaitingRoom(t, handler)

		_, code := startConsultation(t, handler, first.ID)
		require.Equal(t, http.StatusCreated, code)

		_, code = startConsultation(t, handler, second.ID)
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("returns not found for unknown patient", func(t *testing.T) {
		handler := newTelepharmacyHandler()

		_, code := startConsultation(t, handler, "missing")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestTelepharmacyHandler_CreateNotification(t *testing.T) {
	t.Run("successfully creates notification", func(t *testing.T) {
		handler := newTelepharmacyHandler()

		body, _ := json.Marshal(entities.Notification{
			Title:    "Rupture de stock",
			Body:     "Doliprane 1000mg sous le seuil minimum",
			Priority: entities.PriorityHigh,
		})
		req := httptest.NewRequest("POST", "/api/telepharmacy/notifications", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.CreateNotification(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created entities.Notification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)

		w = httptest.NewRecorder()
		handler.ListNotifications(w, httptest.NewRequest("GET", "/api/telepharmacy/notifications", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Notifications []entities.Notification `json:"notifications"`
			Count         int                     `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Rupture de stock", resp.Notifications[0].Title)
	})

	t.Run("returns bad request for missing title", func(t *testing.T) {
		handler := newTelepharmacyHandler()

		body, _ := json.Marshal(entities.Notification{Body: "sans titre"})
		req := httptest.NewRequest("POST", "/api/telepharmacy/notifications", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.CreateNotification(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTelepharmacyHandler_PrescriptionWorkflow(t *testing.T) {
	handler := newTelepharmacyHandler()

	body, _ := json.Marshal(entities.DigitalPrescription{
		PatientID: "p-1",
		Items: []entities.PrescriptionItem{
			{MedicineID: "m-1", Name: "Doliprane 1000mg", Quantity: 1},
		},
	})
	req := httptest.NewRequest("POST", "/api/telepharmacy/prescriptions", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	handler.CreatePrescription(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var prescription entities.DigitalPrescription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prescription))
	assert.Equal(t, entities.DigitalPrescriptionStatusPending, prescription.Status)

	// dispensing before validation is a workflow violation
	req = httptest.NewRequest("POST", "/api/telepharmacy/prescriptions/"+prescription.ID+"/dispense", nil)
	req.SetPathValue("id", prescription.ID)
	w = httptest.NewRecorder()
	handler.DispensePrescription(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	validateBody, _ := json.Marshal(map[string]string{"pharmacist_id": "2"})
	req = httptest.NewRequest("POST", "/api/telepharmacy/prescriptions/"+prescription.ID+"/validate", bytes.NewBuffer(validateBody))
	req.SetPathValue("id", prescription.ID)
	w = httptest.NewRecorder()
	handler.ValidatePrescription(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("POST", "/api/telepharmacy/prescriptions/"+prescription.ID+"/dispense", nil)
	req.SetPathValue("id", prescription.ID)
	w = httptest.NewRecorder()
	handler.DispensePrescription(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
