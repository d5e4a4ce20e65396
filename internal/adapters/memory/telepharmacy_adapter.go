package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// WaitingRoomAdapter implements WaitingRoomRepository with an in-process store
type WaitingRoomAdapter struct {
	mu    sync.RWMutex
	items []*entities.TeleconsultationPatient
	byID  map[string]*entities.TeleconsultationPatient
}

// NewWaitingRoomAdapter creates a new in-memory waiting-room adapter
func NewWaitingRoomAdapter() *WaitingRoomAdapter {
	return &WaitingRoomAdapter{byID: make(map[string]*entities.TeleconsultationPatient)}
}

func (a *WaitingRoomAdapter) Create(ctx context.Context, patient *entities.TeleconsultationPatient) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[patient.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("waiting patient with id %s already exists", patient.ID))
	}

	stored := copyWaitingPatient(patient)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *WaitingRoomAdapter) GetByID(ctx context.Context, id string) (*entities.TeleconsultationPatient, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("waiting patient with id %s not found", id))
	}
	return copyWaitingPatient(stored), nil
}

func (a *WaitingRoomAdapter) Update(ctx context.Context, patient *entities.TeleconsultationPatient) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[patient.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("waiting patient with id %s not found", patient.ID))
	}
	*stored = *copyWaitingPatient(patient)
	return nil
}

func (a *WaitingRoomAdapter) List(ctx context.Context) ([]*entities.TeleconsultationPatient, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyWaitingPatient), nil
}

func copyWaitingPatient(p *entities.TeleconsultationPatient) *entities.TeleconsultationPatient {
	c := *p
	return &c
}

// ConsultationAdapter implements ConsultationRepository with an in-process store
type ConsultationAdapter struct {
	mu    sync.RWMutex
	items []*entities.Consultation
	byID  map[string]*entities.Consultation
}

// NewConsultationAdapter creates a new in-memory consultation adapter
func NewConsultationAdapter() *ConsultationAdapter {
	return &ConsultationAdapter{byID: make(map[string]*entities.Consultation)}
}

func (a *ConsultationAdapter) Create(ctx context.Context, consultation *entities.Consultation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[consultation.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("consultation with id %s already exists", consultation.ID))
	}

	stored := copyConsultation(consultation)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *ConsultationAdapter) GetByID(ctx context.Context, id string) (*entities.Consultation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("consultation with id %s not found", id))
	}
	return copyConsultation(stored), nil
}

func (a *ConsultationAdapter) Update(ctx context.Context, consultation *entities.Consultation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[consultation.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("consultation with id %s not found", consultation.ID))
	}
	*stored = *copyConsultation(consultation)
	return nil
}

func (a *ConsultationAdapter) List(ctx context.Context) ([]*entities.Consultation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyConsultation), nil
}

func copyConsultation(c *entities.Consultation) *entities.Consultation {
	cp := *c
	if c.EndedAt != nil {
		ended := *c.EndedAt
		cp.EndedAt = &ended
	}
	if c.Rating != nil {
		rating := *c.Rating
		cp.Rating = &rating
	}
	return &cp
}

// ChatMessageAdapter implements ChatMessageRepository with an in-process store
type ChatMessageAdapter struct {
	mu    sync.RWMutex
	items []*entities.ChatMessage
}

// NewChatMessageAdapter creates a new in-memory chat message adapter
func NewChatMessageAdapter() *ChatMessageAdapter {
	return &ChatMessageAdapter{}
}

func (a *ChatMessageAdapter) Create(ctx context.Context, message *entities.ChatMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items = append(a.items, copyChatMessage(message))
	return nil
}

// ListByConsultation returns the consultation's messages in send order
func (a *ChatMessageAdapter) ListByConsultation(ctx context.Context, consultationID string) ([]*entities.ChatMessage, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.ChatMessage
	for _, m := range a.items {
		if m.ConsultationID == consultationID {
			out = append(out, copyChatMessage(m))
		}
	}
	return out, nil
}

// MarkAllRead flips read on every message of the consultation
func (a *ChatMessageAdapter) MarkAllRead(ctx context.Context, consultationID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, m := range a.items {
		if m.ConsultationID == consultationID {
			m.Read = true
		}
	}
	return nil
}

func copyChatMessage(m *entities.ChatMessage) *entities.ChatMessage {
	c := *m
	c.Attachments = append([]string(nil), m.Attachments...)
	return &c
}

// DigitalPrescriptionAdapter implements DigitalPrescriptionRepository with
// an in-process store
type DigitalPrescriptionAdapter struct {
	mu    sync.RWMutex
	items []*entities.DigitalPrescription
	byID  map[string]*entities.DigitalPrescription
}

// NewDigitalPrescriptionAdapter creates a new in-memory digital prescription adapter
func NewDigitalPrescriptionAdapter() *DigitalPrescriptionAdapter {
	return &DigitalPrescriptionAdapter{byID: make(map[string]*entities.DigitalPrescription)}
}

func (a *DigitalPrescriptionAdapter) Create(ctx context.Context, prescription *entities.DigitalPrescription) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[prescription.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("digital prescription with id %s already exists", prescription.ID))
	}

	stored := copyDigitalPrescription(prescription)
	a.items = append(a.items, stored)
	a.byID[stored.ID] = stored
	return nil
}

func (a *DigitalPrescriptionAdapter) GetByID(ctx context.Context, id string) (*entities.DigitalPrescription, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stored, exists := a.byID[id]
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("digital prescription with id %s not found", id))
	}
	return copyDigitalPrescription(stored), nil
}

func (a *DigitalPrescriptionAdapter) Update(ctx context.Context, prescription *entities.DigitalPrescription) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, exists := a.byID[prescription.ID]
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("digital prescription with id %s not found", prescription.ID))
	}
	*stored = *copyDigitalPrescription(prescription)
	return nil
}

func (a *DigitalPrescriptionAdapter) List(ctx context.Context) ([]*entities.DigitalPrescription, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return paginateCopies(a.items, 0, 0, copyDigitalPrescription), nil
}

func copyDigitalPrescription(p *entities.DigitalPrescription) *entities.DigitalPrescription {
	c := *p
	c.Items = append([]entities.PrescriptionItem(nil), p.Items...)
	if p.ValidationDate != nil {
		v := *p.ValidationDate
		c.ValidationDate = &v
	}
	if p.DispensingDate != nil {
		d := *p.DispensingDate
		c.DispensingDate = &d
	}
	return &c
}
