package entities

import (
	"time"
)

// PrescriptionStatus tracks how much of a paper prescription has been served
type PrescriptionStatus string

const (
	PrescriptionStatusNew             PrescriptionStatus = "new"
	PrescriptionStatusPartiallyServed PrescriptionStatus = "partially_served"
	PrescriptionStatusServed          PrescriptionStatus = "served"
)

// PrescriptionItem is one prescribed medicine with its posology
type PrescriptionItem struct {
	MedicineID string `json:"medicine_id" db:"medicine_id"`
	Name       string `json:"name" db:"name"`
	Dosage     string `json:"dosage" db:"dosage"`
	Duration   string `json:"duration" db:"duration"`
	Quantity   int    `json:"quantity" db:"quantity"`
}

// Prescription represents a paper prescription presented at the counter.
// PatientID is a soft reference; the patient record may have been deleted.
type Prescription struct {
	ID         string             `json:"id" db:"id"`
	PatientID  string             `json:"patient_id" db:"patient_id"`
	DoctorName string             `json:"doctor_name" db:"doctor_name"`
	Items      []PrescriptionItem `json:"items" db:"-"`
	Date       time.Time          `json:"date" db:"date"`
	Status     PrescriptionStatus `json:"status" db:"status"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" db:"updated_at"`
}

// PrescriptionPatch carries a partial prescription update
type PrescriptionPatch struct {
	DoctorName *string             `json:"doctor_name,omitempty"`
	Items      *[]PrescriptionItem `json:"items,omitempty"`
	Status     *PrescriptionStatus `json:"status,omitempty"`
}

// Apply merges the patch into pr and stamps UpdatedAt.
func (p *PrescriptionPatch) Apply(pr *Prescription) {
	if p.DoctorName != nil {
		pr.DoctorName = *p.DoctorName
	}
	if p.Items != nil {
		pr.Items = *p.Items
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
	pr.UpdatedAt = time.Now()
}
