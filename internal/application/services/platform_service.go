package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
)

// PlatformService handles the super-admin surface: the pharmacy network,
// registration requests, system users, and subscription plans.
type PlatformService struct {
	pharmacies repositories.PharmacyRepository
	requests   repositories.PharmacyRequestRepository
	users      repositories.SystemUserRepository
	plans      repositories.SubscriptionRepository
}

// NewPlatformService creates a new platform service
func NewPlatformService(
	pharmacies repositories.PharmacyRepository,
	requests repositories.PharmacyRequestRepository,
	users repositories.SystemUserRepository,
	plans repositories.SubscriptionRepository,
) *PlatformService {
	return &PlatformService{
		pharmacies: pharmacies,
		requests:   requests,
		users:      users,
		plans:      plans,
	}
}

// AddPharmacy registers a pharmacy, stamping join date and last activity
func (s *PlatformService) AddPharmacy(ctx context.Context, pharmacy *entities.Pharmacy) error {
	if pharmacy.ID == "" {
		pharmacy.ID = uuid.New().String()
	}
	now := time.Now()
	if pharmacy.JoinDate.IsZero() {
		pharmacy.JoinDate = now
	}
	pharmacy.LastActivity = now
	return s.pharmacies.Create(ctx, pharmacy)
}

// UpdatePharmacy merges the patch into the pharmacy
func (s *PlatformService) UpdatePharmacy(ctx context.Context, id string, patch *entities.PharmacyPatch) (*entities.Pharmacy, error) {
	pharmacy, err := s.pharmacies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(pharmacy)
	pharmacy.LastActivity = time.Now()
	if err := s.pharmacies.Update(ctx, pharmacy); err != nil {
		return nil, err
	}
	return pharmacy, nil
}

// DeletePharmacy removes a pharmacy from the network
func (s *PlatformService) DeletePharmacy(ctx context.Context, id string) error {
	return s.pharmacies.Delete(ctx, id)
}

// GetPharmacy retrieves a pharmacy by ID
func (s *PlatformService) GetPharmacy(ctx context.Context, id string) (*entities.Pharmacy, error) {
	return s.pharmacies.GetByID(ctx, id)
}

// ListPharmacies retrieves pharmacies matching the filter
func (s *PlatformService) ListPharmacies(ctx context.Context, filter repositories.PharmacyFilter) ([]*entities.Pharmacy, error) {
	return s.pharmacies.List(ctx, filter)
}

// SubmitPharmacyRequest records a registration request as pending
func (s *PlatformService) SubmitPharmacyRequest(ctx context.Context, request *entities.PharmacyRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.Status = entities.RequestStatusPending
	if request.SubmittedAt.IsZero() {
		request.SubmittedAt = time.Now()
	}
	return s.requests.Create(ctx, request)
}

// ApprovePharmacyRequest turns a registration request into an active
// pharmacy. The region is derived from the country and the new pharmacy
// starts with zero revenue and zero users. Approval consumes the request.
func (s *PlatformService) ApprovePharmacyRequest(ctx context.Context, id string) (*entities.Pharmacy, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pharmacy := &entities.Pharmacy{
		Name:             request.PharmacyName,
		Owner:            request.Owner,
		Email:            request.Email,
		Country:          request.Country,
		Region:           entities.RegionForCountry(request.Country),
		Status:           entities.PharmacyStatusActive,
		SubscriptionType: request.RequestedPlan,
	}
	if err := s.AddPharmacy(ctx, pharmacy); err != nil {
		return nil, err
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("request_id", id).
		Str("pharmacy_id", pharmacy.ID).
		Msg("pharmacy request approved")

	return pharmacy, nil
}

// RejectPharmacyRequest marks a request rejected. The request stays on
// file for audit.
func (s *PlatformService) RejectPharmacyRequest(ctx context.Context, id string) (*entities.PharmacyRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = entities.RequestStatusRejected
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListPharmacyRequests retrieves registration requests in submission order
func (s *PlatformService) ListPharmacyRequests(ctx context.Context) ([]*entities.PharmacyRequest, error) {
	return s.requests.List(ctx)
}

// AddSystemUser creates a platform operator account
func (s *PlatformService) AddSystemUser(ctx context.Context, user *entities.SystemUser) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return s.users.Create(ctx, user)
}

// UpdateSystemUser merges the patch into the system user
func (s *PlatformService) UpdateSystemUser(ctx context.Context, id string, patch *entities.SystemUserPatch) (*entities.SystemUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteSystemUser removes a platform operator account
func (s *PlatformService) DeleteSystemUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// ListSystemUsers retrieves system users in insertion order
func (s *PlatformService) ListSystemUsers(ctx context.Context) ([]*entities.SystemUser, error) {
	return s.users.List(ctx)
}

// UpdateSubscription adjusts a plan's pricing or limits. Plans are fixed
// in number; there is no create or delete.
func (s *PlatformService) UpdateSubscription(ctx context.Context, id string, patch *entities.SubscriptionPatch) (*entities.Subscription, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(plan)
	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListSubscriptions retrieves the subscription plans
func (s *PlatformService) ListSubscriptions(ctx context.Context) ([]*entities.Subscription, error) {
	return s.plans.List(ctx)
}
