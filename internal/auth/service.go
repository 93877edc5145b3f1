package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/authz"
)

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO, tenantLabel string, labelPresent bool) (AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// Service performs the login flow: password verification, the login-time
// tenant match, and token issuance.
type Service struct {
	users       UserDirectory
	enterprises EnterpriseDirectory
	tokens      TokenGenerator
	logger      *slog.Logger
}

func NewService(users UserDirectory, enterprises EnterpriseDirectory, tokens TokenGenerator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:       users,
		enterprises: enterprises,
		tokens:      tokens,
		logger:      logger,
	}
}

// Authenticate validates credentials and returns tokens. tenantLabel is the
// advisory label inferred from the request before authentication; for every
// non-SUPER_ADMIN caller it must be present and match the caller enterprise's
// subdomain. Any mismatch surfaces as ErrInvalidCredentials so that responses
// never reveal whether a tenant or account exists.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO, tenantLabel string, labelPresent bool) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	creds, err := s.users.GetCredentials(ctx, dto.Email)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !creds.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	identity, err := s.users.GetCallerIdentity(ctx, creds.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := s.matchTenantLabel(ctx, identity, tenantLabel, labelPresent); err != nil {
		return AuthTokens{}, err
	}

	return s.issueTokens(strconv.FormatInt(identity.ID, 10), identity.Email)
}

// matchTenantLabel enforces the credential-validation tenant invariant:
// SUPER_ADMIN logs in from anywhere, everyone else only through their own
// enterprise's subdomain.
func (s *Service) matchTenantLabel(ctx context.Context, identity *authz.CallerIdentity, label string, labelPresent bool) error {
	if identity.IsSuperAdmin() {
		return nil
	}

	if !labelPresent || identity.EnterpriseID == nil {
		return internal.ErrInvalidCredentials
	}

	subdomain, err := s.enterprises.GetSubdomain(ctx, *identity.EnterpriseID)
	if err != nil {
		s.logger.WarnContext(ctx, "login tenant lookup failed",
			"user_id", identity.ID, "error", err)
		return internal.ErrInvalidCredentials
	}

	if subdomain != label {
		s.logger.WarnContext(ctx, "login tenant label mismatch", "user_id", identity.ID)
		return internal.ErrInvalidCredentials
	}

	return nil
}

// RefreshTokens validates a refresh token and rotates the token pair.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	identity, err := s.users.GetCallerIdentity(ctx, userID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	return s.issueTokens(claims.UserID, identity.Email)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) issueTokens(userID, email string) (AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(userID, email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * 7 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID string, email string) (string, error) {
	return j.sign(userID, email, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(userID string, email string) (string, error) {
	return j.sign(userID, email, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return j.parse(tokenString, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.parse(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) sign(userID, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) parse(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
