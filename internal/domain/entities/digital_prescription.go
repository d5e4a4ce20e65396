package entities

import (
	"time"
)

// DigitalPrescriptionStatus is a strict forward workflow. Transitions are
// validated with CanTransitionTo; there is no path backwards.
type DigitalPrescriptionStatus string

const (
	DigitalPrescriptionStatusPending   DigitalPrescriptionStatus = "pending"
	DigitalPrescriptionStatusValidated DigitalPrescriptionStatus = "validated"
	DigitalPrescriptionStatusDispensed DigitalPrescriptionStatus = "dispensed"
	DigitalPrescriptionStatusCancelled DigitalPrescriptionStatus = "cancelled"
)

// digitalPrescriptionTransitions is the allowed-transition table.
var digitalPrescriptionTransitions = map[DigitalPrescriptionStatus][]DigitalPrescriptionStatus{
	DigitalPrescriptionStatusPending:   {DigitalPrescriptionStatusValidated, DigitalPrescriptionStatusCancelled},
	DigitalPrescriptionStatusValidated: {DigitalPrescriptionStatusDispensed, DigitalPrescriptionStatusCancelled},
	DigitalPrescriptionStatusDispensed: {},
	DigitalPrescriptionStatusCancelled: {},
}

// CanTransitionTo reports whether the workflow allows moving to next.
func (s DigitalPrescriptionStatus) CanTransitionTo(next DigitalPrescriptionStatus) bool {
	for _, allowed := range digitalPrescriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DigitalPrescription is a prescription issued during a teleconsultation
type DigitalPrescription struct {
	ID             string                    `json:"id" db:"id"`
	PatientID      string                    `json:"patient_id" db:"patient_id"`
	ConsultationID string                    `json:"consultation_id,omitempty" db:"consultation_id"`
	Items          []PrescriptionItem        `json:"items" db:"-"`
	Status         DigitalPrescriptionStatus `json:"status" db:"status"`
	IssuedAt       time.Time                 `json:"issued_at" db:"issued_at"`
	ValidatedBy    string                    `json:"validated_by,omitempty" db:"validated_by"`
	ValidationDate *time.Time                `json:"validation_date,omitempty" db:"validation_date"`
	DispensingDate *time.Time                `json:"dispensing_date,omitempty" db:"dispensing_date"`
}
