package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitalPrescriptionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    DigitalPrescriptionStatus
		to      DigitalPrescriptionStatus
		allowed bool
	}{
		{"pending to validated", DigitalPrescriptionStatusPending, DigitalPrescriptionStatusValidated, true},
		{"pending to cancelled", DigitalPrescriptionStatusPending, DigitalPrescriptionStatusCancelled, true},
		{"pending skips to dispensed", DigitalPrescriptionStatusPending, DigitalPrescriptionStatusDispensed, false},
		{"validated to dispensed", DigitalPrescriptionStatusValidated, DigitalPrescriptionStatusDispensed, true},
		{"validated to cancelled", DigitalPrescriptionStatusValidated, DigitalPrescriptionStatusCancelled, true},
		{"validated back to pending", DigitalPrescriptionStatusValidated, DigitalPrescriptionStatusPending, false},
		{"dispensed is terminal", DigitalPrescriptionStatusDispensed, DigitalPrescriptionStatusCancelled, false},
		{"cancelled is terminal", DigitalPrescriptionStatusCancelled, DigitalPrescriptionStatusValidated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
