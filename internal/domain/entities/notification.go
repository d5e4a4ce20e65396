package entities

import (
	"time"
)

// RelatedType tags what a notification points at
type RelatedType string

const (
	RelatedTypePatient      RelatedType = "patient"
	RelatedTypePrescription RelatedType = "prescription"
	RelatedTypeConsultation RelatedType = "consultation"
	RelatedTypeStock        RelatedType = "stock"
)

// Notification is an in-app message for the on-duty pharmacist. Lists are
// most-recent-first; consumers rely on that ordering.
type Notification struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Body        string      `json:"body" db:"body"`
	Priority    Priority    `json:"priority" db:"priority"`
	Read        bool        `json:"read" db:"read"`
	RelatedID   string      `json:"related_id,omitempty" db:"related_id"`
	RelatedType RelatedType `json:"related_type,omitempty" db:"related_type"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}
