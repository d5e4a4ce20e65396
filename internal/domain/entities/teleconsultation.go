package entities

import (
	"time"
)

// WaitingStatus represents where a patient is in the teleconsultation queue
type WaitingStatus string

const (
	WaitingStatusWaiting        WaitingStatus = "waiting"
	WaitingStatusInConsultation WaitingStatus = "in_consultation"
	WaitingStatusCompleted      WaitingStatus = "completed"
)

// Priority ranks waiting-room entries and notifications
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ConsultationType represents the requested consultation medium
type ConsultationType string

const (
	ConsultationTypeChat  ConsultationType = "chat"
	ConsultationTypeVideo ConsultationType = "video"
	ConsultationTypeAsync ConsultationType = "async"
)

// TeleconsultationPatient is a waiting-room entry
type TeleconsultationPatient struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Phone            string           `json:"phone" db:"phone"`
	RequestReason    string           `json:"request_reason" db:"request_reason"`
	Status           WaitingStatus    `json:"status" db:"status"`
	Priority         Priority         `json:"priority" db:"priority"`
	ConsultationType ConsultationType `json:"consultation_type" db:"consultation_type"`
	JoinedAt         time.Time        `json:"joined_at" db:"joined_at"`
}

// ConsultationStatus represents the lifecycle of a consultation
type ConsultationStatus string

const (
	ConsultationStatusScheduled ConsultationStatus = "scheduled"
	ConsultationStatusActive    ConsultationStatus = "active"
	ConsultationStatusCompleted ConsultationStatus = "completed"
	ConsultationStatusCancelled ConsultationStatus = "cancelled"
)

// Consultation links a pharmacist to a waiting-room patient
type Consultation struct {
	ID           string             `json:"id" db:"id"`
	PatientID    string             `json:"patient_id" db:"patient_id"`
	PharmacistID string             `json:"pharmacist_id" db:"pharmacist_id"`
	Type         ConsultationType   `json:"type" db:"type"`
	Status       ConsultationStatus `json:"status" db:"status"`
	StartedAt    time.Time          `json:"started_at" db:"started_at"`
	EndedAt      *time.Time         `json:"ended_at,omitempty" db:"ended_at"`
	Notes        string             `json:"notes" db:"notes"`
	Rating       *int               `json:"rating,omitempty" db:"rating"`
}

// SenderRole tells which side of a consultation authored a message
type SenderRole string

const (
	SenderRolePharmacist SenderRole = "pharmacist"
	SenderRolePatient    SenderRole = "patient"
)

// ChatMessage belongs to exactly one consultation, ordered by SentAt
type ChatMessage struct {
	ID             string     `json:"id" db:"id"`
	ConsultationID string     `json:"consultation_id" db:"consultation_id"`
	SenderID       string     `json:"sender_id" db:"sender_id"`
	SenderRole     SenderRole `json:"sender_role" db:"sender_role"`
	Body           string     `json:"body" db:"body"`
	Attachments    []string   `json:"attachments,omitempty" db:"attachments"`
	SentAt         time.Time  `json:"sent_at" db:"sent_at"`
	Read           bool       `json:"read" db:"read"`
}
