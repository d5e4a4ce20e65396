package repositories

import (
	"context"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

// SessionRepository persists the single current-user session record.
// Load returns (nil, nil) when no session is stored; corrupt payloads are
// treated the same way so a bad write never locks a user out.
type SessionRepository interface {
	Save(ctx context.Context, user *entities.User) error
	Load(ctx context.Context) (*entities.User, error)
	Clear(ctx context.Context) error
}

// CredentialRepository looks up accounts for login. The deployment ships a
// seeded directory; lookups never distinguish unknown email from bad
// password at the service layer.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*entities.Credential, error)
}
