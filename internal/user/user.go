package user

import (
	"context"
	"time"

	"github.com/oceanix/incident-platform/internal/authz"
)

// User is the persisted account record. Role assignments are loaded
// separately so that list queries do not drag permission grants along.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	UserType     string    `json:"user_type"`
	EnterpriseID *string   `json:"enterprise_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetRoleAssignments(ctx context.Context, userID int64) ([]authz.RoleAssignment, error)
	DeleteInTenant(ctx context.Context, userID int64, enterpriseID string) error
	Delete(ctx context.Context, userID int64) error
}
