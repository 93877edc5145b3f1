package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oceanix/incident-platform/internal/authz"
	"github.com/oceanix/incident-platform/internal/user"
)

// Models for the account/role/permission tables. Role assignments go through
// join tables so one role can be shared across users and one permission
// across roles.

type UserModel struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name"`
	PasswordHash string    `gorm:"column:password_hash"`
	UserType     string    `gorm:"column:user_type;not null"`
	EnterpriseID *string   `gorm:"column:enterprise_id;index"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (UserModel) TableName() string { return "users" }

type RoleModel struct {
	ID          int64                 `gorm:"primaryKey"`
	Name        string                `gorm:"column:name;uniqueIndex;not null"`
	Permissions []RolePermissionModel `gorm:"foreignKey:RoleID"`
}

func (RoleModel) TableName() string { return "roles" }

type PermissionModel struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"column:name;uniqueIndex;not null"`
	IsActive bool   `gorm:"column:is_active;default:true"`
}

func (PermissionModel) TableName() string { return "permissions" }

type UserRoleModel struct {
	UserID int64     `gorm:"column:user_id;primaryKey"`
	RoleID int64     `gorm:"column:role_id;primaryKey"`
	Role   RoleModel `gorm:"foreignKey:RoleID"`
}

func (UserRoleModel) TableName() string { return "user_roles" }

type RolePermissionModel struct {
	RoleID       int64           `gorm:"column:role_id;primaryKey"`
	PermissionID int64           `gorm:"column:permission_id;primaryKey"`
	Permission   PermissionModel `gorm:"foreignKey:PermissionID"`
}

func (RolePermissionModel) TableName() string { return "role_permissions" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*user.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).First(&m, userID).Error; err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

// GetRoleAssignments loads every role assigned to the user with all its
// permission grants, active or not. Filtering inactive grants is the
// permission aggregator's job, not the repository's.
func (r *Repository) GetRoleAssignments(ctx context.Context, userID int64) ([]authz.RoleAssignment, error) {
	var assignments []UserRoleModel
	err := r.db.WithContext(ctx).
		Preload("Role.Permissions.Permission").
		Where("user_id = ?", userID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	result := make([]authz.RoleAssignment, 0, len(assignments))
	for _, a := range assignments {
		role := authz.Role{
			ID:          a.Role.ID,
			Name:        a.Role.Name,
			Permissions: make([]authz.PermissionGrant, 0, len(a.Role.Permissions)),
		}
		for _, grant := range a.Role.Permissions {
			role.Permissions = append(role.Permissions, authz.PermissionGrant{
				Permission: authz.Permission{
					Name:     grant.Permission.Name,
					IsActive: grant.Permission.IsActive,
				},
			})
		}
		result = append(result, authz.RoleAssignment{Role: role})
	}
	return result, nil
}

func (r *Repository) DeleteInTenant(ctx context.Context, userID int64, enterpriseID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND enterprise_id = ?", userID, enterpriseID).
		Delete(&UserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Delete(&UserModel{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toDomain(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		UserType:     m.UserType,
		EnterpriseID: m.EnterpriseID,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
