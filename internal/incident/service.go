package incident

import (
	"context"
	"log/slog"
	"time"

	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/authz"
	"github.com/oceanix/incident-platform/internal/core/events"
)

// Service handles incident business logic. It trusts the identity and tenant
// the pipeline resolved and never re-runs authorization checks; its only
// remaining job is resource-level scoping inside the tenant.
type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, bus: bus, logger: logger}
}

// Create records a new incident under the caller's tenant. SUPER_ADMIN
// callers carry no tenant and must name the enterprise explicitly.
func (s *Service) Create(ctx context.Context, identity *authz.CallerIdentity, tenant *authz.TenantContext, dto CreateIncidentDTO) (*Incident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	enterpriseID := dto.EnterpriseID
	if tenant != nil {
		enterpriseID = tenant.TenantID
	}
	if enterpriseID == "" {
		return nil, internal.NewValidationError("enterprise_id is required", internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	inc := &Incident{
		EnterpriseID: enterpriseID,
		ReporterID:   identity.ID,
		Title:        dto.Title,
		Description:  dto.Description,
		Severity:     dto.Severity,
		Status:       StatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		s.logger.ErrorContext(ctx, "failed to create incident", "error", err, "enterprise_id", enterpriseID)
		return nil, internal.NewInternalError("failed to create incident", err)
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewIncidentCreatedEvent(inc.ID, inc.EnterpriseID, inc.ReporterID, inc.Severity))
	}

	s.logger.InfoContext(ctx, "incident created",
		"incident_id", inc.ID,
		"enterprise_id", inc.EnterpriseID,
		"severity", inc.Severity)

	return inc, nil
}

// List returns incidents visible to the caller. Within a tenant, CLIENT
// callers on operations without the allow-any-resource flag only see
// incidents they reported themselves; the flag widens the listing to the
// whole tenant, never across tenants. SUPER_ADMIN callers have no tenant and
// list platform-wide.
func (s *Service) List(ctx context.Context, identity *authz.CallerIdentity, tenant *authz.TenantContext, allowAnyResource bool, limit, offset int) ([]*Incident, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if tenant == nil {
		return s.repo.ListAll(ctx, limit, offset)
	}

	if identity.UserType == authz.UserTypeClient && !allowAnyResource {
		return s.repo.ListByReporter(ctx, tenant.TenantID, identity.ID, limit, offset)
	}

	return s.repo.ListByEnterprise(ctx, tenant.TenantID, limit, offset)
}

// GetByID fetches one incident. A record outside the caller's tenant is
// reported as not found rather than forbidden, so ids do not leak across
// tenants.
func (s *Service) GetByID(ctx context.Context, tenant *authz.TenantContext, id int64) (*Incident, error) {
	inc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.ErrIncidentNotFound
	}

	if tenant != nil && inc.EnterpriseID != tenant.TenantID {
		return nil, internal.ErrIncidentNotFound
	}

	return inc, nil
}

func (s *Service) Resolve(ctx context.Context, identity *authz.CallerIdentity, tenant *authz.TenantContext, id int64) (*Incident, error) {
	inc, err := s.GetByID(ctx, tenant, id)
	if err != nil {
		return nil, err
	}

	if inc.Status == StatusResolved {
		return nil, internal.NewConflictError("incident is already resolved", internal.ErrCodeIncidentAlreadyResolved)
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, inc.ID, StatusResolved, &now); err != nil {
		s.logger.ErrorContext(ctx, "failed to resolve incident", "error", err, "incident_id", inc.ID)
		return nil, internal.NewInternalError("failed to resolve incident", err)
	}

	inc.Status = StatusResolved
	inc.ResolvedAt = &now

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewIncidentResolvedEvent(inc.ID, inc.EnterpriseID, identity.ID))
	}

	return inc, nil
}
