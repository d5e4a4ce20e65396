package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/providers"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// TelepharmacyService handles the teleconsultation workflows: waiting room,
// consultations and chat, digital prescriptions, treatment follow-ups,
// pharmacist availability, and notifications.
type TelepharmacyService struct {
	waitingRoom   repositories.WaitingRoomRepository
	consultations repositories.ConsultationRepository
	messages      repositories.ChatMessageRepository
	prescriptions repositories.DigitalPrescriptionRepository
	followUps     repositories.FollowUpRepository
	availability  repositories.AvailabilityRepository
	notifications repositories.NotificationRepository
	bus           providers.EventBus
	metrics       *observability.Metrics
	pharmacyID    string

	// one consultation at a time; guarded separately from the stores
	mu                   sync.Mutex
	activeConsultationID string
}

// NewTelepharmacyService creates a new telepharmacy service. bus and
// metrics may be nil.
func NewTelepharmacyService(
	waitingRoom repositories.WaitingRoomRepository,
	consultations repositories.ConsultationRepository,
	messages repositories.ChatMessageRepository,
	prescriptions repositories.DigitalPrescriptionRepository,
	followUps repositories.FollowUpRepository,
	availability repositories.AvailabilityRepository,
	notifications repositories.NotificationRepository,
	bus providers.EventBus,
	metrics *observability.Metrics,
	pharmacyID string,
) *TelepharmacyService {
	return &TelepharmacyService{
		waitingRoom:   waitingRoom,
		consultations: consultations,
		messages:      messages,
		prescriptions: prescriptions,
		followUps:     followUps,
		availability:  availability,
		notifications: notifications,
		bus:           bus,
		metrics:       metrics,
		pharmacyID:    pharmacyID,
	}
}

// AddWaitingPatient appends a waiting-room entry. Notifying the on-duty
// pharmacist is part of the operation, not an optional side effect.
func (s *TelepharmacyService) AddWaitingPatient(ctx context.Context, patient *entities.TeleconsultationPatient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	if patient.Status == "" {
		patient.Status = entities.WaitingStatusWaiting
	}
	if patient.JoinedAt.IsZero() {
		patient.JoinedAt = time.Now()
	}

	if err := s.waitingRoom.Create(ctx, patient); err != nil {
		return err
	}

	notification := &entities.Notification{
		ID:          uuid.New().String(),
		Title:       "New teleconsultation request",
		Body:        fmt.Sprintf("%s is waiting (%s)", patient.Name, patient.RequestReason),
		Priority:    patient.Priority,
		RelatedID:   patient.ID,
		RelatedType: entities.RelatedTypePatient,
		CreatedAt:   time.Now(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return err
	}

	s.publishEvent(ctx, entities.NewPharmacyEvent(s.pharmacyID, entities.PharmacyEventTypePatientWaiting, map[string]interface{}{
		"patient_id": patient.ID,
		"priority":   string(patient.Priority),
	}))
	return nil
}

// ListWaitingPatients retrieves waiting-room entries in arrival order
func (s *TelepharmacyService) ListWaitingPatients(ctx context.Context) ([]*entities.TeleconsultationPatient, error) {
	return s.waitingRoom.List(ctx)
}

// StartConsultation opens a consultation with a waiting patient. Starting
// a second consultation while one is active is a conflict.
func (s *TelepharmacyService) StartConsultation(ctx context.Context, patientID, pharmacistID string, consultationType entities.ConsultationType) (*entities.Consultation, error) {
	patient, err := s.waitingRoom.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeConsultationID != "" {
		return nil, apperrors.NewConflictError(fmt.Sprintf("consultation %s is already active", s.activeConsultationID))
	}

	consultation := &entities.Consultation{
		ID:           uuid.New().String(),
		PatientID:    patientID,
		PharmacistID: pharmacistID,
		Type:         consultationType,
		Status:       entities.ConsultationStatusActive,
		StartedAt:    time.Now(),
	}
	if err := s.consultations.Create(ctx, consultation); err != nil {
		return nil, err
	}

	patient.Status = entities.WaitingStatusInConsultation
	if err := s.waitingRoom.Update(ctx, patient); err != nil {
		return nil, err
	}

	s.activeConsultationID = consultation.ID
	if s.metrics != nil {
		s.metrics.ActiveConsultations.Add(ctx, 1)
	}

	observability.LoggerFromContext(ctx).Info().
		Str("consultation_id", consultation.ID).
		Str("patient_id", patientID).
		Msg("consultation started")

	return consultation, nil
}

// EndConsultation completes a consultation. The active pointer is cleared
// only when the ended consultation is the active one; ending a stale id
// must not cut off an ongoing session.
func (s *TelepharmacyService) EndConsultation(ctx context.Context, id, notes string, rating *int) (*entities.Consultation, error) {
	consultation, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	consultation.Status = entities.ConsultationStatusCompleted
	consultation.EndedAt = &now
	consultation.Notes = notes
	consultation.Rating = rating
	if err := s.consultations.Update(ctx, consultation); err != nil {
		return nil, err
	}

	if patient, err := s.waitingRoom.GetByID(ctx, consultation.PatientID); err == nil {
		patient.Status = entities.WaitingStatusCompleted
		if err := s.waitingRoom.Update(ctx, patient); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	if s.activeConsultationID == id {
		s.activeConsultationID = ""
		if s.metrics != nil {
			s.metrics.ActiveConsultations.Add(ctx, -1)
		}
	}
	s.mu.Unlock()

	return consultation, nil
}

// ActiveConsultation returns the active consultation, or nil
func (s *TelepharmacyService) ActiveConsultation(ctx context.Context) (*entities.Consultation, error) {
	s.mu.Lock()
	id := s.activeConsultationID
	s.mu.Unlock()

	if id == "" {
		return nil, nil
	}
	return s.consultations.GetByID(ctx, id)
}

// ListConsultations retrieves consultations in insertion order
func (s *TelepharmacyService) ListConsultations(ctx context.Context) ([]*entities.Consultation, error) {
	return s.consultations.List(ctx)
}

// SendMessage appends a chat message to a consultation
func (s *TelepharmacyService) SendMessage(ctx context.Context, consultationID, senderID string, senderRole entities.SenderRole, body string, attachments []string) (*entities.ChatMessage, error) {
	if _, err := s.consultations.GetByID(ctx, consultationID); err != nil {
		return nil, err
	}

	message := &entities.ChatMessage{
		ID:             uuid.New().String(),
		ConsultationID: consultationID,
		SenderID:       senderID,
		SenderRole:     senderRole,
		Body:           body,
		Attachments:    attachments,
		SentAt:         time.Now(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages retrieves a consultation's messages in send order
func (s *TelepharmacyService) ListMessages(ctx context.Context, consultationID string) ([]*entities.ChatMessage, error) {
	return s.messages.ListByConsultation(ctx, consultationID)
}

// MarkMessagesRead flips read on every message of the consultation
func (s *TelepharmacyService) MarkMessagesRead(ctx context.Context, consultationID string) error {
	return s.messages.MarkAllRead(ctx, consultationID)
}

// CreatePrescription issues a digital prescription. It always enters
// pending and notifies the pharmacist.
func (s *TelepharmacyService) CreatePrescription(ctx context.Context, prescription *entities.DigitalPrescription) error {
	if len(prescription.Items) == 0 {
		return apperrors.NewValidationError("prescription requires at least one item")
	}

	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}
	prescription.Status = entities.DigitalPrescriptionStatusPending
	if prescription.IssuedAt.IsZero() {
		prescription.IssuedAt = time.Now()
	}

	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return err
	}

	notification := &entities.Notification{
		ID:          uuid.New().String(),
		Title:       "Prescription awaiting validation",
		Body:        fmt.Sprintf("Digital prescription for patient %s", prescription.PatientID),
		Priority:    entities.PriorityHigh,
		RelatedID:   prescription.ID,
		RelatedType: entities.RelatedTypePrescription,
		CreatedAt:   time.Now(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return err
	}

	s.publishEvent(ctx, entities.NewPharmacyEvent(s.pharmacyID, entities.PharmacyEventTypePrescriptionCreated, map[string]interface{}{
		"prescription_id": prescription.ID,
	}))
	return nil
}

// ValidatePrescription moves a pending prescription to validated
func (s *TelepharmacyService) ValidatePrescription(ctx context.Context, id, pharmacistID string) (*entities.DigitalPrescription, error) {
	prescription, err := s.transitionPrescription(ctx, id, entities.DigitalPrescriptionStatusValidated, func(p *entities.DigitalPrescription) {
		now := time.Now()
		p.ValidatedBy = pharmacistID
		p.ValidationDate = &now
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, entities.NewPharmacyEvent(s.pharmacyID, entities.PharmacyEventTypePrescriptionValidated, map[string]interface{}{
		"prescription_id": id,
		"validated_by":    pharmacistID,
	}))
	return prescription, nil
}

// DispensePrescription moves a validated prescription to dispensed
func (s *TelepharmacyService) DispensePrescription(ctx context.Context, id string) (*entities.DigitalPrescription, error) {
	prescription, err := s.transitionPrescription(ctx, id, entities.DigitalPrescriptionStatusDispensed, func(p *entities.DigitalPrescription) {
		now := time.Now()
		p.DispensingDate = &now
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, entities.NewPharmacyEvent(s.pharmacyID, entities.PharmacyEventTypePrescriptionDispensed, map[string]interface{}{
		"prescription_id": id,
	}))
	return prescription, nil
}

// CancelPrescription cancels a prescription from pending or validated
func (s *TelepharmacyService) CancelPrescription(ctx context.Context, id string) (*entities.DigitalPrescription, error) {
	return s.transitionPrescription(ctx, id, entities.DigitalPrescriptionStatusCancelled, nil)
}

// transitionPrescription enforces the workflow table before applying the
// transition; an illegal move is a conflict, not an overwrite.
func (s *TelepharmacyService) transitionPrescription(ctx context.Context, id string, next entities.DigitalPrescriptionStatus, mutate func(*entities.DigitalPrescription)) (*entities.DigitalPrescription, error) {
	prescription, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !prescription.Status.CanTransitionTo(next) {
		return nil, apperrors.NewConflictError(fmt.Sprintf(
			"prescription %s cannot move from %s to %s", id, prescription.Status, next,
		))
	}

	prescription.Status = next
	if mutate != nil {
		mutate(prescription)
	}

	if err := s.prescriptions.Update(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// GetPrescription retrieves a digital prescription by ID
func (s *TelepharmacyService) GetPrescription(ctx context.Context, id string) (*entities.DigitalPrescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

// ListPrescriptions retrieves digital prescriptions in insertion order
func (s *TelepharmacyService) ListPrescriptions(ctx context.Context) ([]*entities.DigitalPrescription, error) {
	return s.prescriptions.List(ctx)
}

// CreateFollowUp opens a treatment follow-up. The schedule is fixed at
// creation.
func (s *TelepharmacyService) CreateFollowUp(ctx context.Context, followUp *entities.TreatmentFollowUp) error {
	if followUp.ID == "" {
		followUp.ID = uuid.New().String()
	}
	if followUp.CreatedAt.IsZero() {
		followUp.CreatedAt = time.Now()
	}
	return s.followUps.Create(ctx, followUp)
}

// UpdateAdherence appends one intake observation. A medicine id that does
// not match the follow-up's own medicine is accepted but logged; the
// observation may still be clinically relevant.
func (s *TelepharmacyService) UpdateAdherence(ctx context.Context, followUpID, medicineID string, taken bool, notes string) error {
	followUp, err := s.followUps.GetByID(ctx, followUpID)
	if err != nil {
		return err
	}

	if medicineID != followUp.MedicineID {
		observability.LoggerFromContext(ctx).Warn().
			Str("follow_up_id", followUpID).
			Str("expected_medicine_id", followUp.MedicineID).
			Str("recorded_medicine_id", medicineID).
			Msg("adherence record for a different medicine")
	}

	return s.followUps.AppendAdherence(ctx, followUpID, entities.AdherenceRecord{
		MedicineID: medicineID,
		Taken:      taken,
		Notes:      notes,
		RecordedAt: time.Now(),
	})
}

// AddSideEffect appends one side-effect observation
func (s *TelepharmacyService) AddSideEffect(ctx context.Context, followUpID, effect string, severity entities.SideEffectSeverity) error {
	return s.followUps.AppendSideEffect(ctx, followUpID, entities.SideEffectReport{
		Effect:     effect,
		Severity:   severity,
		ReportedAt: time.Now(),
	})
}

// GetFollowUp retrieves a follow-up by ID
func (s *TelepharmacyService) GetFollowUp(ctx context.Context, id string) (*entities.TreatmentFollowUp, error) {
	return s.followUps.GetByID(ctx, id)
}

// ListFollowUps retrieves follow-ups in insertion order
func (s *TelepharmacyService) ListFollowUps(ctx context.Context) ([]*entities.TreatmentFollowUp, error) {
	return s.followUps.List(ctx)
}

// UpdatePharmacistStatus records a pharmacist's duty state
func (s *TelepharmacyService) UpdatePharmacistStatus(ctx context.Context, pharmacistID, name string, status entities.AvailabilityStatus) error {
	return s.availability.Upsert(ctx, &entities.PharmacistAvailability{
		PharmacistID: pharmacistID,
		Name:         name,
		Status:       status,
		UpdatedAt:    time.Now(),
	})
}

// ListAvailability retrieves pharmacist availability entries
func (s *TelepharmacyService) ListAvailability(ctx context.Context) ([]*entities.PharmacistAvailability, error) {
	return s.availability.List(ctx)
}

// AddNotification creates a notification
func (s *TelepharmacyService) AddNotification(ctx context.Context, notification *entities.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	return s.notifications.Create(ctx, notification)
}

// MarkNotificationRead flips the read flag on one notification
func (s *TelepharmacyService) MarkNotificationRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

// ListNotifications retrieves notifications most-recent-first
func (s *TelepharmacyService) ListNotifications(ctx context.Context) ([]*entities.Notification, error) {
	return s.notifications.List(ctx)
}

// UnreadNotifications retrieves unread notifications most-recent-first
func (s *TelepharmacyService) UnreadNotifications(ctx context.Context) ([]*entities.Notification, error) {
	return s.notifications.ListUnread(ctx)
}

func (s *TelepharmacyService) publishEvent(ctx context.Context, event *entities.PharmacyEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, providers.EventChannelTelepharmacy, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("event_type", string(event.EventType)).
			Msg("failed to publish event")
	}
}
