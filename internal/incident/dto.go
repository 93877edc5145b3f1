package incident

import (
	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/core/common/validation"
)

type CreateIncidentDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	// EnterpriseID is only honored for SUPER_ADMIN callers, who carry no
	// tenant context of their own.
	EnterpriseID string `json:"enterprise_id,omitempty"`
}

func (d CreateIncidentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("title", d.Title).Required().MinLength(3).MaxLength(200)
	v.Field("description", d.Description).MaxLength(2000)
	v.Field("severity", d.Severity).Required().OneOf(SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical)
	return v.Validate()
}
