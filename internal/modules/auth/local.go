package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"leadcrm/internal/pkg/jwt"
)

// LocalProvider implements Provider on the application's own users table,
// with bcrypt password hashes and HS256 access tokens. It is the default
// when no Supabase project is configured.
type LocalProvider struct {
	db  *gorm.DB
	jwt *jwt.Service
}

// NewLocalProvider creates the local identity provider.
func NewLocalProvider(db *gorm.DB, jwtService *jwt.Service) *LocalProvider {
	return &LocalProvider{db: db, jwt: jwtService}
}

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

// AutoMigrateUsers creates the users table for the local provider
func AutoMigrateUsers(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{})
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := userModel{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		// The unique index on email arbitrates concurrent sign-ups, so the
		// taken-email answer has to come from the insert itself. Not every
		// driver translates its constraint error; re-check the email when
		// the translation is missing.
		if errors.Is(err, gorm.ErrDuplicatedKey) || p.emailTaken(ctx, email) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	return p.sessionFor(user)
}

func (p *LocalProvider) emailTaken(ctx context.Context, email string) bool {
	var count int64
	err := p.db.WithContext(ctx).Model(&userModel{}).Where("email = ?", email).Count(&count).Error
	return err == nil && count > 0
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	var user userModel
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return p.sessionFor(user)
}

func (p *LocalProvider) CurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	claims, err := p.jwt.ValidateToken(accessToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return &Identity{ID: claims.UserID, Email: claims.Email}, nil
}

// SignOut is a no-op for the local provider; its tokens are stateless and
// simply expire.
func (p *LocalProvider) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

func (p *LocalProvider) sessionFor(user userModel) (*Session, error) {
	token, err := p.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: token,
		User: Identity{
			ID:    user.ID,
			Email: user.Email,
		},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
