package entities

import (
	"time"
)

// Role represents a user's role within a pharmacy or the platform
type Role string

const (
	RoleSuperAdmin    Role = "super_admin"
	RoleAdministrator Role = "administrator"
	RolePharmacist    Role = "pharmacist"
	RoleCashier       Role = "cashier"
	RoleStockManager  Role = "stock_manager"
)

// User represents an authenticated account
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Role         Role      `json:"role" db:"role"`
	PharmacyID   string    `json:"pharmacy_id,omitempty" db:"pharmacy_id"`
	PharmacyName string    `json:"pharmacy_name,omitempty" db:"pharmacy_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Credential pairs an account with its password for the mock directory.
// Passwords are compared in plaintext; real identity federation is out of
// scope for this deployment.
type Credential struct {
	User     User
	Password string
}
