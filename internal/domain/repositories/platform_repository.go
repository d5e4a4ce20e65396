package repositories

import (
	"context"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// PharmacyRepository holds tenant pharmacies
type PharmacyRepository interface {
	Create(ctx context.Context, pharmacy *entities.Pharmacy) error
	GetByID(ctx context.Context, id string) (*entities.Pharmacy, error)
	Update(ctx context.Context, pharmacy *entities.Pharmacy) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PharmacyFilter) ([]*entities.Pharmacy, error)
}

// PharmacyFilter defines filters for listing pharmacies
type PharmacyFilter struct {
	Status           entities.PharmacyStatus
	SubscriptionType entities.SubscriptionType
	Region           string
	Limit            int
	Offset           int
}

// PharmacyRequestRepository holds onboarding requests
type PharmacyRequestRepository interface {
	Create(ctx context.Context, request *entities.PharmacyRequest) error
	GetByID(ctx context.Context, id string) (*entities.PharmacyRequest, error)
	Update(ctx context.Context, request *entities.PharmacyRequest) error

	// Delete removes a request outright; used when approval consumes it
	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]*entities.PharmacyRequest, error)
}

// SystemUserRepository holds platform operator accounts
type SystemUserRepository interface {
	Create(ctx context.Context, user *entities.SystemUser) error
	GetByID(ctx context.Context, id string) (*entities.SystemUser, error)
	Update(ctx context.Context, user *entities.SystemUser) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entities.SystemUser, error)
}

// SubscriptionRepository holds commercial plan definitions
type SubscriptionRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Subscription, error)
	Update(ctx context.Context, subscription *entities.Subscription) error
	List(ctx context.Context) ([]*entities.Subscription, error)
}
