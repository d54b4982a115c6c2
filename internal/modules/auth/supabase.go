package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	supabase "github.com/nedpals/supabase-go"
)

// SupabaseProvider implements Provider against a hosted Supabase project.
type SupabaseProvider struct {
	client *supabase.Client
}

// NewSupabaseProvider creates the Supabase-backed identity provider.
func NewSupabaseProvider(baseURL, anonKey string) (*SupabaseProvider, error) {
	client := supabase.CreateClient(baseURL, anonKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create supabase client for %s", baseURL)
	}
	return &SupabaseProvider{client: client}, nil
}

// SignUp registers a new identity and signs it in. A registration rejected
// because the email is taken surfaces as ErrAlreadyRegistered.
func (p *SupabaseProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	_, err := p.client.Auth.SignUp(ctx, supabase.UserCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, mapSignUpError(err)
	}

	// Supabase sign-up does not return tokens; sign in to mint the session.
	return p.SignIn(ctx, email, password)
}

// mapSignUpError coerces a rejected registration to ErrAlreadyRegistered.
// Supabase reports "email taken" and other policy rejections (e.g. password
// too weak) under the same status codes, so the rejected detail is kept in
// the log before the coercion discards it.
func mapSignUpError(err error) error {
	var apiErr *supabase.ErrorResponse
	if errors.As(err, &apiErr) &&
		(apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusUnprocessableEntity) {
		log.Printf("supabase_sign_up_rejected status=%d message=%q", apiErr.Code, apiErr.Message)
		return ErrAlreadyRegistered
	}
	return fmt.Errorf("supabase sign up: %w", err)
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	details, err := p.client.Auth.SignIn(ctx, supabase.UserCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		var apiErr *supabase.ErrorResponse
		if errors.As(err, &apiErr) &&
			(apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("supabase sign in: %w", err)
	}

	return &Session{
		AccessToken:  details.AccessToken,
		RefreshToken: details.RefreshToken,
		User: Identity{
			ID:    details.User.ID,
			Email: details.User.Email,
		},
	}, nil
}

func (p *SupabaseProvider) CurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	user, err := p.client.Auth.User(ctx, accessToken)
	if err != nil {
		var apiErr *supabase.ErrorResponse
		if errors.As(err, &apiErr) &&
			(apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("supabase current user: %w", err)
	}

	return &Identity{ID: user.ID, Email: user.Email}, nil
}

func (p *SupabaseProvider) SignOut(ctx context.Context, accessToken string) error {
	if err := p.client.Auth.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("supabase sign out: %w", err)
	}
	return nil
}
