package auth

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/authz"
)

// Resolver implements authz.IdentityResolver on top of the token generator
// and the user directory: it verifies the bearer token and loads the caller
// identity, with roles and grants, for the current request.
type Resolver struct {
	tokens TokenGenerator
	users  UserDirectory
	logger *slog.Logger
}

func NewResolver(tokens TokenGenerator, users UserDirectory, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{tokens: tokens, users: users, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, credential string) (*authz.CallerIdentity, error) {
	claims, err := r.tokens.ValidateAccessToken(credential)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		r.logger.WarnContext(ctx, "token carries non-numeric user id", "value", claims.UserID)
		return nil, internal.ErrInvalidToken
	}

	identity, err := r.users.GetCallerIdentity(ctx, userID)
	if err != nil {
		return nil, err
	}

	return identity, nil
}
