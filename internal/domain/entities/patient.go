package entities

import (
	"time"
)

// Patient represents a pharmacy-local patient record
type Patient struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Phone       string    `json:"phone" db:"phone"`
	Email       string    `json:"email" db:"email"`
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"`
	Allergies   []string  `json:"allergies" db:"allergies"`
	Notes       string    `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// PatientPatch carries a partial patient update
type PatientPatch struct {
	Name        *string    `json:"name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Allergies   *[]string  `json:"allergies,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// Apply merges the patch into pt and stamps UpdatedAt.
func (p *PatientPatch) Apply(pt *Patient) {
	if p.Name != nil {
		pt.Name = *p.Name
	}
	if p.Phone != nil {
		pt.Phone = *p.Phone
	}
	if p.Email != nil {
		pt.Email = *p.Email
	}
	if p.DateOfBirth != nil {
		pt.DateOfBirth = *p.DateOfBirth
	}
	if p.Allergies != nil {
		pt.Allergies = *p.Allergies
	}
	if p.Notes != nil {
		pt.Notes = *p.Notes
	}
	pt.UpdatedAt = time.Now()
}
