package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

// ErrDuplicateEmail is the only named failure from Register. Every
// rejection path in Authenticate collapses to (nil, nil) instead, so a
// caller cannot tell a wrong email from a wrong password.
var ErrDuplicateEmail = errors.New("email is already registered")

// WelcomeNotifier enqueues the post-registration welcome email. Enqueue
// failures never fail registration.
type WelcomeNotifier interface {
	EnqueueWelcomeEmail(ctx context.Context, user *models.User) error
}

// AuthService orchestrates registration, credential verification and token
// issuance. It holds no locks and no in-process state; uniqueness and
// atomic create are delegated to the user store.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	IssueToken(userID uuid.UUID) (string, error)
}

type authService struct {
	userRepo repositories.UserRepository
	hasher   auth.PasswordHasher
	codec    *auth.TokenCodec
	notifier WelcomeNotifier // nil when no worker is configured
}

func NewAuthService(userRepo repositories.UserRepository, hasher auth.PasswordHasher, codec *auth.TokenCodec, notifier WelcomeNotifier) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
	}
}

// Register creates a new, active, non-privileged user. The store assigns
// the id and timestamps. A duplicate email fails before any side effect.
func (s *authService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: digest,
		FullName:     fullName,
		IsActive:     true,
		IsSuperuser:  false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The store enforces uniqueness too; a concurrent register can
		// lose the race between the lookup above and the insert.
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueWelcomeEmail(ctx, user); err != nil {
			log.Printf("Failed to enqueue welcome email for %s: %v", user.ID, err)
		}
	}

	return user, nil
}

// Authenticate returns the user when the email exists, the password
// matches and the account is active; otherwise (nil, nil). The missing-user
// path returns before any bcrypt work, so failed lookups answer faster
// than failed password checks.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil
	}

	if !user.IsActive {
		return nil, nil
	}

	return user, nil
}

// IssueToken signs an access token for the user with the codec's default
// TTL. Pure delegation; no store access.
func (s *authService) IssueToken(userID uuid.UUID) (string, error) {
	return s.codec.Encode(userID.String(), 0)
}
