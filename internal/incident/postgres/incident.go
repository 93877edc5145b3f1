package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oceanix/incident-platform/internal/incident"
)

type IncidentModel struct {
	ID           int64      `gorm:"primaryKey"`
	EnterpriseID string     `gorm:"column:enterprise_id;index;not null"`
	ReporterID   int64      `gorm:"column:reporter_id;index;not null"`
	Title        string     `gorm:"column:title;not null"`
	Description  string     `gorm:"column:description"`
	Severity     string     `gorm:"column:severity;not null"`
	Status       string     `gorm:"column:status;not null;default:open"`
	ResolvedAt   *time.Time `gorm:"column:resolved_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (IncidentModel) TableName() string { return "incidents" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, inc *incident.Incident) error {
	m := toModel(inc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	inc.ID = m.ID
	inc.CreatedAt = m.CreatedAt
	inc.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*incident.Incident, error) {
	var m IncidentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *Repository) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*incident.Incident, error) {
	var models []IncidentModel
	err := r.db.WithContext(ctx).
		Where("enterprise_id = ?", enterpriseID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func (r *Repository) ListByReporter(ctx context.Context, enterpriseID string, reporterID int64, limit, offset int) ([]*incident.Incident, error) {
	var models []IncidentModel
	err := r.db.WithContext(ctx).
		Where("enterprise_id = ? AND reporter_id = ?", enterpriseID, reporterID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func (r *Repository) ListAll(ctx context.Context, limit, offset int) ([]*incident.Incident, error) {
	var models []IncidentModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(models), nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string, resolvedAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&IncidentModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
			"updated_at":  time.Now(),
		}).Error
}

func toModel(inc *incident.Incident) *IncidentModel {
	return &IncidentModel{
		ID:           inc.ID,
		EnterpriseID: inc.EnterpriseID,
		ReporterID:   inc.ReporterID,
		Title:        inc.Title,
		Description:  inc.Description,
		Severity:     inc.Severity,
		Status:       inc.Status,
		ResolvedAt:   inc.ResolvedAt,
		CreatedAt:    inc.CreatedAt,
		UpdatedAt:    inc.UpdatedAt,
	}
}

func toDomain(m *IncidentModel) *incident.Incident {
	return &incident.Incident{
		ID:           m.ID,
		EnterpriseID: m.EnterpriseID,
		ReporterID:   m.ReporterID,
		Title:        m.Title,
		Description:  m.Description,
		Severity:     m.Severity,
		Status:       m.Status,
		ResolvedAt:   m.ResolvedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDomainSlice(models []IncidentModel) []*incident.Incident {
	result := make([]*incident.Incident, 0, len(models))
	for i := range models {
		result = append(result, toDomain(&models[i]))
	}
	return result
}
