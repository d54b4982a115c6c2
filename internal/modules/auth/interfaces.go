package auth

import "context"

// Identity is the authenticated principal as reported by the identity service.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated session issued by the identity service.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	User         Identity `json:"user"`
}

// Provider abstracts the external identity service. Implementations must
// return the package's sentinel errors for the discriminated failure kinds
// (ErrAlreadyRegistered, ErrInvalidCredentials, ErrUnauthorized) so callers
// never inspect provider-specific message strings.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	CurrentUser(ctx context.Context, accessToken string) (*Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// SessionCache persists the active session across process restarts.
type SessionCache interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}
