package entities

import (
	"time"
)

// AdherenceRecord is one append-only intake observation
type AdherenceRecord struct {
	MedicineID string    `json:"medicine_id" db:"medicine_id"`
	Taken      bool      `json:"taken" db:"taken"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

// SideEffectSeverity grades a reported side effect
type SideEffectSeverity string

const (
	SideEffectSeverityMild     SideEffectSeverity = "mild"
	SideEffectSeverityModerate SideEffectSeverity = "moderate"
	SideEffectSeveritySevere   SideEffectSeverity = "severe"
)

// SideEffectReport is one append-only side-effect observation
type SideEffectReport struct {
	Effect     string             `json:"effect" db:"effect"`
	Severity   SideEffectSeverity `json:"severity" db:"severity"`
	ReportedAt time.Time          `json:"reported_at" db:"reported_at"`
}

// TreatmentFollowUp tracks a patient's treatment over time. Schedule is
// immutable after creation; both logs only ever grow.
type TreatmentFollowUp struct {
	ID          string             `json:"id" db:"id"`
	PatientID   string             `json:"patient_id" db:"patient_id"`
	MedicineID  string             `json:"medicine_id" db:"medicine_id"`
	Schedule    string             `json:"schedule" db:"schedule"`
	Adherence   []AdherenceRecord  `json:"adherence" db:"-"`
	SideEffects []SideEffectReport `json:"side_effects" db:"-"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}

// AvailabilityStatus represents a pharmacist's duty state
type AvailabilityStatus string

const (
	AvailabilityStatusAvailable AvailabilityStatus = "available"
	AvailabilityStatusBusy      AvailabilityStatus = "busy"
	AvailabilityStatusBreak     AvailabilityStatus = "break"
	AvailabilityStatusOffline   AvailabilityStatus = "offline"
)

// PharmacistAvailability is one row per pharmacist
type PharmacistAvailability struct {
	PharmacistID string             `json:"pharmacist_id" db:"pharmacist_id"`
	Name         string             `json:"name" db:"name"`
	Status       AvailabilityStatus `json:"status" db:"status"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`
}
