package incident

import (
	"context"
	"time"
)

const (
	StatusOpen     = "open"
	StatusResolved = "resolved"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Incident is a tenant-scoped record: every query against it carries the
// enterprise id the pipeline resolved, never one taken from the request body.
type Incident struct {
	ID           int64      `json:"id"`
	EnterpriseID string     `json:"enterprise_id"`
	ReporterID   int64      `json:"reporter_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Severity     string     `json:"severity"`
	Status       string     `json:"status"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Repository interface {
	Create(ctx context.Context, incident *Incident) error
	GetByID(ctx context.Context, id int64) (*Incident, error)
	ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*Incident, error)
	ListByReporter(ctx context.Context, enterpriseID string, reporterID int64, limit, offset int) ([]*Incident, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Incident, error)
	UpdateStatus(ctx context.Context, id int64, status string, resolvedAt *time.Time) error
}
