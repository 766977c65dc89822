package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

// TokenManager mints and verifies bearer tokens. Implemented by infra/token;
// the service only cares that a token round-trips to an actor id.
type TokenManager interface {
	Issue(actorID string) (string, error)
	// Verify returns the actor id the token was issued for.
	Verify(token string) (string, error)
}

// AuthService registers actors and exchanges credentials or tokens for a
// verified identity. The rest of the system trusts the returned actor
// unconditionally for the duration of the request.
type AuthService struct {
	directory ports.ActorDirectory
	tokens    TokenManager
}

func NewAuthService(directory ports.ActorDirectory, tokens TokenManager) *AuthService {
	return &AuthService{directory: directory, tokens: tokens}
}

func validateRegister(in ports.RegisterInput) error {
	if in.Name == "" {
		return ports.Invalid("name", "name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return ports.Invalid("email", "a valid email is required")
	}
	if len(in.Password) < 6 {
		return ports.Invalid("password", "password must be at least 6 characters")
	}
	if !in.Role.Valid() {
		return ports.Invalid("role", "role must be vendor or supplier")
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*entity.Actor, string, error) {
	if err := validateRegister(in); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("auth service: hash password: %w", err)
	}

	actor := &entity.Actor{
		ID:           uuid.NewString(),
		Role:         in.Role,
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		Address:      in.Address,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.directory.Create(ctx, actor); err != nil {
		if errors.Is(err, ports.ErrDuplicateEmail) {
			return nil, "", ports.ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("auth service: create actor: %w", err)
	}

	token, err := s.tokens.Issue(actor.ID)
	if err != nil {
		return nil, "", fmt.Errorf("auth service: issue token: %w", err)
	}
	return actor, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Actor, string, error) {
	actor, err := s.directory.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, ports.ErrActorNotFound) {
			return nil, "", ports.ErrInvalidCredential
		}
		return nil, "", fmt.Errorf("auth service: find actor: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(password)); err != nil {
		// Wrong password reads identically to an unknown email.
		return nil, "", ports.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(actor.ID)
	if err != nil {
		return nil, "", fmt.Errorf("auth service: issue token: %w", err)
	}
	return actor, token, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.Actor, error) {
	actorID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	actor, err := s.directory.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, ports.ErrActorNotFound) {
			return nil, ports.ErrInvalidCredential
		}
		return nil, fmt.Errorf("auth service: find actor: %w", err)
	}
	return actor, nil
}
