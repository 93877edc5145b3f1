package enterprise

import (
	"context"
	"time"
)

// Enterprise is an isolated customer organization. Subdomain is the stable
// identifier tenants are reachable under, e.g. "techcorp" for
// techcorp.oceanix.space, and is what the login-time tenant match compares
// against the inferred label.
type Enterprise struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*Enterprise, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*Enterprise, error)
}
