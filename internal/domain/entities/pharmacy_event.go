package entities

import (
	"time"

	"github.com/google/uuid"
)

// PharmacyEventType represents the type of pharmacy event
type PharmacyEventType string

const (
	PharmacyEventTypeStockLow              PharmacyEventType = "stock_low"
	PharmacyEventTypeSaleRecorded          PharmacyEventType = "sale_recorded"
	PharmacyEventTypePatientWaiting        PharmacyEventType = "patient_waiting"
	PharmacyEventTypePrescriptionCreated   PharmacyEventType = "prescription_created"
	PharmacyEventTypePrescriptionValidated PharmacyEventType = "prescription_validated"
	PharmacyEventTypePrescriptionDispensed PharmacyEventType = "prescription_dispensed"
)

// PharmacyEvent is a real-time update published on the event bus
type PharmacyEvent struct {
	ID            string                 `json:"id"`
	PharmacyID    string                 `json:"pharmacy_id"`
	EventType     PharmacyEventType      `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields"`
}

// NewPharmacyEvent creates a new pharmacy event
func NewPharmacyEvent(pharmacyID string, eventType PharmacyEventType, changedFields map[string]interface{}) *PharmacyEvent {
	return &PharmacyEvent{
		ID:            uuid.New().String(),
		PharmacyID:    pharmacyID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		ChangedFields: changedFields,
	}
}
