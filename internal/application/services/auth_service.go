package services

import (
	"context"
	"sync"
	"time"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// AuthService handles login, logout, and session restore. The credential
// directory is a fixed mock table; password comparison is plaintext by
// design of the deployment, not an oversight.
type AuthService struct {
	credentials repositories.CredentialRepository
	sessions    repositories.SessionRepository
	latency     time.Duration

	mu      sync.RWMutex
	current *entities.User
}

// NewAuthService creates a new auth service. latency simulates the upstream
// identity provider's response time on login.
func NewAuthService(credentials repositories.CredentialRepository, sessions repositories.SessionRepository, latency time.Duration) *AuthService {
	return &AuthService{
		credentials: credentials,
		sessions:    sessions,
		latency:     latency,
	}
}

// Restore hydrates the current user from the session repository. A missing
// or unparsable session starts unauthenticated; that is not an error.
func (s *AuthService) Restore(ctx context.Context) error {
	user, err := s.sessions.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	if user != nil {
		observability.LoggerFromContext(ctx).Info().
			Str("user_id", user.ID).
			Str("role", string(user.Role)).
			Msg("session restored")
	}
	return nil
}

// Login authenticates against the credential directory. Unknown email and
// wrong password fail identically. State is untouched on failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.latency):
		}
	}

	credential, err := s.credentials.FindByEmail(ctx, email)
	if err != nil || credential.Password != password {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	user := credential.User
	if err := s.sessions.Save(ctx, &user); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	observability.LoggerFromContext(ctx).Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user logged in")

	out := user
	return &out, nil
}

// Logout clears the current user and the persisted session
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// Current returns the logged-in user, or nil
func (s *AuthService) Current(ctx context.Context) *entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}
