package auth

import (
	"context"
	"errors"
)

// Service contains the login-or-register policy on top of a Provider.
type Service struct {
	provider Provider
}

// NewService creates auth service
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Login signs the credentials in, transparently creating the account first.
// Registration is attempted before sign-in; only a registration rejected
// because the identity already exists falls back to sign-in. Any other
// registration failure, or a failed fallback sign-in, is returned as-is.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	session, err := s.provider.SignUp(ctx, email, password)
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrAlreadyRegistered) {
		return s.provider.SignIn(ctx, email, password)
	}

	return nil, err
}

// Logout invalidates the session at the identity service
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	return s.provider.SignOut(ctx, accessToken)
}

// Current resolves an access token to its identity
func (s *Service) Current(ctx context.Context, accessToken string) (*Identity, error) {
	return s.provider.CurrentUser(ctx, accessToken)
}
