package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oceanix/incident-platform/internal/enterprise"
)

type EnterpriseModel struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"column:name;not null"`
	Subdomain string    `gorm:"column:subdomain;uniqueIndex;not null"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (EnterpriseModel) TableName() string { return "enterprises" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*enterprise.Enterprise, error) {
	var m EnterpriseModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *Repository) GetBySubdomain(ctx context.Context, subdomain string) (*enterprise.Enterprise, error) {
	var m EnterpriseModel
	if err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func toDomain(m *EnterpriseModel) *enterprise.Enterprise {
	return &enterprise.Enterprise{
		ID:        m.ID,
		Name:      m.Name,
		Subdomain: m.Subdomain,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
