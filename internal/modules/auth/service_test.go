package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a scriptable identity service
type fakeProvider struct {
	signUpFn  func(ctx context.Context, email, password string) (*Session, error)
	signInFn  func(ctx context.Context, email, password string) (*Session, error)
	currentFn func(ctx context.Context, token string) (*Identity, error)
	signOutFn func(ctx context.Context, token string) error

	signUpCalls  int
	signInCalls  int
	signOutCalls int
}

func (f *fakeProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	f.signUpCalls++
	return f.signUpFn(ctx, email, password)
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	f.signInCalls++
	return f.signInFn(ctx, email, password)
}

func (f *fakeProvider) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	if f.currentFn == nil {
		return nil, ErrUnauthorized
	}
	return f.currentFn(ctx, token)
}

func (f *fakeProvider) SignOut(ctx context.Context, token string) error {
	f.signOutCalls++
	if f.signOutFn == nil {
		return nil
	}
	return f.signOutFn(ctx, token)
}

func sessionFor(email string) *Session {
	return &Session{
		AccessToken: "token-" + email,
		User:        Identity{ID: "id-" + email, Email: email},
	}
}

func TestLoginRegistersUnknownEmail(t *testing.T) {
	p := &fakeProvider{
		signUpFn: func(ctx context.Context, email, password string) (*Session, error) {
			return sessionFor(email), nil
		},
	}
	svc := NewService(p)

	session, err := svc.Login(context.Background(), "new@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", session.User.Email)
	assert.Equal(t, 1, p.signUpCalls)
	assert.Zero(t, p.signInCalls, "no sign-in fallback when registration succeeds")
}

func TestLoginFallsBackToSignInWhenRegistered(t *testing.T) {
	p := &fakeProvider{
		signUpFn: func(ctx context.Context, email, password string) (*Session, error) {
			return nil, ErrAlreadyRegistered
		},
		signInFn: func(ctx context.Context, email, password string) (*Session, error) {
			if password != "correct" {
				return nil, ErrInvalidCredentials
			}
			return sessionFor(email), nil
		},
	}
	svc := NewService(p)

	session, err := svc.Login(context.Background(), "existing@x.com", "correct")
	require.NoError(t, err)
	assert.Equal(t, "existing@x.com", session.User.Email)
	assert.Equal(t, 1, p.signInCalls)
}

func TestLoginWrongPasswordOnExistingAccount(t *testing.T) {
	p := &fakeProvider{
		signUpFn: func(ctx context.Context, email, password string) (*Session, error) {
			return nil, ErrAlreadyRegistered
		},
		signInFn: func(ctx context.Context, email, password string) (*Session, error) {
			return nil, ErrInvalidCredentials
		},
	}
	svc := NewService(p)

	_, err := svc.Login(context.Background(), "existing@x.com", "wrongpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDoesNotFallBackOnOtherRegistrationFailures(t *testing.T) {
	providerErr := errors.New("identity service down")
	p := &fakeProvider{
		signUpFn: func(ctx context.Context, email, password string) (*Session, error) {
			return nil, providerErr
		},
	}
	svc := NewService(p)

	_, err := svc.Login(context.Background(), "new@x.com", "pw")
	assert.ErrorIs(t, err, providerErr)
	assert.Zero(t, p.signInCalls)
}
