package user

import (
	"context"
	"log/slog"

	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/auth"
	"github.com/oceanix/incident-platform/internal/authz"
)

// Service exposes account lookups. It implements auth.UserDirectory, so the
// identity resolver and the login flow go through it for every request.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetCredentials(ctx context.Context, email string) (*auth.Credentials, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return &auth.Credentials{
		UserID:       u.ID,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
	}, nil
}

// GetCallerIdentity assembles the per-request identity record: the account
// plus every role assignment with its permission grants. The authorization
// core treats the result as read-only.
func (s *Service) GetCallerIdentity(ctx context.Context, userID int64) (*authz.CallerIdentity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	if !u.IsActive {
		return nil, internal.ErrUserInactive
	}

	roles, err := s.repo.GetRoleAssignments(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load role assignments", "user_id", userID, "error", err)
		return nil, err
	}

	return &authz.CallerIdentity{
		ID:           u.ID,
		Email:        u.Email,
		UserType:     authz.UserType(u.UserType),
		EnterpriseID: u.EnterpriseID,
		Roles:        roles,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// Delete removes an account. Non-SUPER_ADMIN callers only reach accounts
// inside their own tenant; the tenant scope comes from the pipeline, not from
// the request body.
func (s *Service) Delete(ctx context.Context, tenant *authz.TenantContext, userID int64) error {
	if tenant != nil {
		if err := s.repo.DeleteInTenant(ctx, userID, tenant.TenantID); err != nil {
			return internal.ErrUserNotFound
		}
		return nil
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return internal.ErrUserNotFound
	}
	return nil
}
