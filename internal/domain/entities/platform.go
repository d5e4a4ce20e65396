package entities

import (
	"time"
)

// PharmacyStatus represents a tenant pharmacy's platform state
type PharmacyStatus string

const (
	PharmacyStatusActive    PharmacyStatus = "active"
	PharmacyStatusInactive  PharmacyStatus = "inactive"
	PharmacyStatusPending   PharmacyStatus = "pending"
	PharmacyStatusSuspended PharmacyStatus = "suspended"
)

// SubscriptionType represents the commercial plan of a pharmacy
type SubscriptionType string

const (
	SubscriptionTypeBasic      SubscriptionType = "basic"
	SubscriptionTypePro        SubscriptionType = "pro"
	SubscriptionTypeEnterprise SubscriptionType = "enterprise"
)

// Pharmacy is a tenant managed from the platform console
type Pharmacy struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Owner            string           `json:"owner" db:"owner"`
	Email            string           `json:"email" db:"email"`
	Country          string           `json:"country" db:"country"`
	Region           string           `json:"region" db:"region"`
	Status           PharmacyStatus   `json:"status" db:"status"`
	SubscriptionType SubscriptionType `json:"subscription_type" db:"subscription_type"`
	Revenue          float64          `json:"revenue" db:"revenue"`
	UserCount        int              `json:"user_count" db:"user_count"`
	JoinDate         time.Time        `json:"join_date" db:"join_date"`
	LastActivity     time.Time        `json:"last_activity" db:"last_activity"`
}

// PharmacyPatch carries a partial pharmacy update
type PharmacyPatch struct {
	Name             *string           `json:"name,omitempty"`
	Owner            *string           `json:"owner,omitempty"`
	Email            *string           `json:"email,omitempty"`
	Country          *string           `json:"country,omitempty"`
	Region           *string           `json:"region,omitempty"`
	Status           *PharmacyStatus   `json:"status,omitempty"`
	SubscriptionType *SubscriptionType `json:"subscription_type,omitempty"`
	Revenue          *float64          `json:"revenue,omitempty"`
	UserCount        *int              `json:"user_count,omitempty"`
}

// Apply merges the patch into ph and stamps LastActivity.
func (p *PharmacyPatch) Apply(ph *Pharmacy) {
	if p.Name != nil {
		ph.Name = *p.Name
	}
	if p.Owner != nil {
		ph.Owner = *p.Owner
	}
	if p.Email != nil {
		ph.Email = *p.Email
	}
	if p.Country != nil {
		ph.Country = *p.Country
	}
	if p.Region != nil {
		ph.Region = *p.Region
	}
	if p.Status != nil {
		ph.Status = *p.Status
	}
	if p.SubscriptionType != nil {
		ph.SubscriptionType = *p.SubscriptionType
	}
	if p.Revenue != nil {
		ph.Revenue = *p.Revenue
	}
	if p.UserCount != nil {
		ph.UserCount = *p.UserCount
	}
	ph.LastActivity = time.Now()
}

// RegionForCountry maps a country to its commercial region.
func RegionForCountry(country string) string {
	switch country {
	case "France":
		return "France"
	case "Maroc":
		return "Maghreb"
	default:
		return "Autre"
	}
}

// RequestStatus represents the state of a pharmacy onboarding request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// PharmacyRequest is an onboarding request submitted by a prospective tenant.
// Approval consumes the request; rejection keeps it for history.
type PharmacyRequest struct {
	ID            string           `json:"id" db:"id"`
	PharmacyName  string           `json:"pharmacy_name" db:"pharmacy_name"`
	Owner         string           `json:"owner" db:"owner"`
	Email         string           `json:"email" db:"email"`
	Country       string           `json:"country" db:"country"`
	RequestedPlan SubscriptionType `json:"requested_plan" db:"requested_plan"`
	Status        RequestStatus    `json:"status" db:"status"`
	SubmittedAt   time.Time        `json:"submitted_at" db:"submitted_at"`
}

// SystemUser is a platform-level operator account
type SystemUser struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Role       Role      `json:"role" db:"role"`
	PharmacyID string    `json:"pharmacy_id,omitempty" db:"pharmacy_id"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// SystemUserPatch carries a partial system-user update
type SystemUserPatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	PharmacyID *string `json:"pharmacy_id,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

// Apply merges the patch into u and stamps UpdatedAt.
func (p *SystemUserPatch) Apply(u *SystemUser) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.PharmacyID != nil {
		u.PharmacyID = *p.PharmacyID
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
	u.UpdatedAt = time.Now()
}

// Subscription is a commercial plan definition
type Subscription struct {
	ID       string           `json:"id" db:"id"`
	Plan     SubscriptionType `json:"plan" db:"plan"`
	Price    float64          `json:"price" db:"price"`
	MaxUsers int              `json:"max_users" db:"max_users"`
	Features []string         `json:"features" db:"features"`
}

// SubscriptionPatch carries a partial subscription update
type SubscriptionPatch struct {
	Price    *float64  `json:"price,omitempty"`
	MaxUsers *int      `json:"max_users,omitempty"`
	Features *[]string `json:"features,omitempty"`
}

// Apply merges the patch into s.
func (p *SubscriptionPatch) Apply(s *Subscription) {
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.MaxUsers != nil {
		s.MaxUsers = *p.MaxUsers
	}
	if p.Features != nil {
		s.Features = *p.Features
	}
}
