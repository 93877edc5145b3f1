package enterprise

import (
	"context"
	"log/slog"

	"github.com/oceanix/incident-platform/internal"
)

// Service implements auth.EnterpriseDirectory.
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

// GetSubdomain returns the subdomain identifier of an active enterprise.
// Suspended tenants are treated as unknown so logins against them fail the
// same way as logins against tenants that never existed.
func (s *Service) GetSubdomain(ctx context.Context, enterpriseID string) (string, error) {
	e, err := s.repo.GetByID(ctx, enterpriseID)
	if err != nil {
		return "", internal.ErrEnterpriseNotFound
	}
	if !e.IsActive {
		return "", internal.ErrEnterpriseNotFound
	}
	return e.Subdomain, nil
}

func (s *Service) GetBySubdomain(ctx context.Context, subdomain string) (*Enterprise, error) {
	e, err := s.repo.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, internal.ErrEnterpriseNotFound
	}
	return e, nil
}
