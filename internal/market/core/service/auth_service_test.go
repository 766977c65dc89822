package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
	"github.com/freshly-yours/marketplace/internal/market/infra/adapters/memory"
)

// fakeTokens is a transparent TokenManager: the token is the actor id with a
// prefix, so tests can assert round-trips without real signing.
type fakeTokens struct{}

func (fakeTokens) Issue(actorID string) (string, error) { return "tok-" + actorID, nil }

func (fakeTokens) Verify(token string) (string, error) {
	if len(token) < 5 || token[:4] != "tok-" {
		return "", fmt.Errorf("malformed token")
	}
	return token[4:], nil
}

func validRegister() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Green Farms",
		Email:    "Green@Example.com",
		Phone:    "9123456780",
		Password: "s3cret!",
		Role:     entity.RoleSupplier,
		Address:  entity.ActorAddress{City: "Nashik", State: "Maharashtra"},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(memory.NewActorDirectory(), fakeTokens{})

	actor, tok, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, actor.ID)
	assert.Equal(t, "tok-"+actor.ID, tok)
	// Email is canonicalised to lower case on the way in.
	assert.Equal(t, "green@example.com", actor.Email)
	assert.NotEqual(t, "s3cret!", actor.PasswordHash)

	// Login is case-insensitive on email too.
	got, tok, err := svc.Login(context.Background(), "GREEN@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, actor.ID, got.ID)
	assert.NotEmpty(t, tok)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(memory.NewActorDirectory(), fakeTokens{})

	_, _, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	again := validRegister()
	again.Name = "Someone Else"
	_, _, err = svc.Register(context.Background(), again)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(memory.NewActorDirectory(), fakeTokens{})

	cases := []struct {
		name   string
		mutate func(*ports.RegisterInput)
		field  string
	}{
		{"missing name", func(in *ports.RegisterInput) { in.Name = "" }, "name"},
		{"bad email", func(in *ports.RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *ports.RegisterInput) { in.Password = "abc" }, "password"},
		{"unknown role", func(in *ports.RegisterInput) { in.Role = "admin" }, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegister()
			tc.mutate(&in)

			_, _, err := svc.Register(context.Background(), in)

			var verr *ports.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := NewAuthService(memory.NewActorDirectory(), fakeTokens{})
	_, _, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), "green@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "s3cret!")

	assert.ErrorIs(t, wrongPassword, ports.ErrInvalidCredential)
	assert.ErrorIs(t, unknownEmail, ports.ErrInvalidCredential)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(memory.NewActorDirectory(), fakeTokens{})
	actor, tok, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	got, err := svc.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, got.ID)

	_, err = svc.Authenticate(context.Background(), "garbage")
	assert.Error(t, err)

	// A well-formed token for a deleted/unknown actor is still rejected.
	_, err = svc.Authenticate(context.Background(), "tok-no-such-actor")
	assert.ErrorIs(t, err, ports.ErrInvalidCredential)
}
