package repositories

import (
	"context"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// WaitingRoomRepository holds teleconsultation waiting-room entries
type WaitingRoomRepository interface {
	Create(ctx context.Context, patient *entities.TeleconsultationPatient) error
	GetByID(ctx context.Context, id string) (*entities.TeleconsultationPatient, error)
	Update(ctx context.Context, patient *entities.TeleconsultationPatient) error
	List(ctx context.Context) ([]*entities.TeleconsultationPatient, error)
}

// ConsultationRepository holds consultations
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entities.Consultation) error
	GetByID(ctx context.Context, id string) (*entities.Consultation, error)
	Update(ctx context.Context, consultation *entities.Consultation) error
	List(ctx context.Context) ([]*entities.Consultation, error)
}

// ChatMessageRepository holds consultation chat messages
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entities.ChatMessage) error

	// ListByConsultation returns messages ordered by send time
	ListByConsultation(ctx context.Context, consultationID string) ([]*entities.ChatMessage, error)

	// MarkAllRead flips read on every message of the consultation
	MarkAllRead(ctx context.Context, consultationID string) error
}

// DigitalPrescriptionRepository holds teleconsultation prescriptions
type DigitalPrescriptionRepository interface {
	Create(ctx context.Context, prescription *entities.DigitalPrescription) error
	GetByID(ctx context.Context, id string) (*entities.DigitalPrescription, error)
	Update(ctx context.Context, prescription *entities.DigitalPrescription) error
	List(ctx context.Context) ([]*entities.DigitalPrescription, error)
}

// FollowUpRepository holds treatment follow-ups. The two logs are
// append-only; there is no operation that rewrites them.
type FollowUpRepository interface {
	Create(ctx context.Context, followUp *entities.TreatmentFollowUp) error
	GetByID(ctx context.Context, id string) (*entities.TreatmentFollowUp, error)
	AppendAdherence(ctx context.Context, id string, record entities.AdherenceRecord) error
	AppendSideEffect(ctx context.Context, id string, report entities.SideEffectReport) error
	List(ctx context.Context) ([]*entities.TreatmentFollowUp, error)
}

// AvailabilityRepository holds one availability row per pharmacist
type AvailabilityRepository interface {
	Upsert(ctx context.Context, availability *entities.PharmacistAvailability) error
	GetByPharmacist(ctx context.Context, pharmacistID string) (*entities.PharmacistAvailability, error)
	List(ctx context.Context) ([]*entities.PharmacistAvailability, error)
}

// NotificationRepository holds pharmacist notifications.
// List returns most-recent-first; consumers rely on that ordering.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	MarkRead(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.Notification, error)
	ListUnread(ctx context.Context) ([]*entities.Notification, error)
}
