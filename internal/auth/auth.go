package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oceanix/incident-platform/internal/authz"
)

// TokenGenerator creates and verifies the signed tokens the platform issues.
type TokenGenerator interface {
	GenerateAccessToken(userID string, email string) (token string, err error)
	GenerateRefreshToken(userID string, email string) (token string, err error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// UserDirectory loads account records. Loading roles and permission grants
// into the caller identity is this collaborator's job, including any caching;
// the authorization core only reads what it is handed.
type UserDirectory interface {
	GetCredentials(ctx context.Context, email string) (*Credentials, error)
	GetCallerIdentity(ctx context.Context, userID int64) (*authz.CallerIdentity, error)
}

// EnterpriseDirectory resolves a tenant's subdomain identifier, used by the
// login-time tenant match.
type EnterpriseDirectory interface {
	GetSubdomain(ctx context.Context, enterpriseID string) (string, error)
}

// Credentials is the minimal record the login flow needs to verify a password.
type Credentials struct {
	UserID       int64
	PasswordHash string
	IsActive     bool
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}
