package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeIncidentCreated  = "incident.created"
	EventTypeIncidentResolved = "incident.resolved"
)

type IncidentCreatedEvent struct {
	BaseEvent
	IncidentID   int64  `json:"incident_id"`
	EnterpriseID string `json:"enterprise_id"`
	ReporterID   int64  `json:"reporter_id"`
	Severity     string `json:"severity"`
}

func NewIncidentCreatedEvent(incidentID int64, enterpriseID string, reporterID int64, severity string) *IncidentCreatedEvent {
	return &IncidentCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIncidentCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"incident_id":   incidentID,
				"enterprise_id": enterpriseID,
				"reporter_id":   reporterID,
				"severity":      severity,
			},
		},
		IncidentID:   incidentID,
		EnterpriseID: enterpriseID,
		ReporterID:   reporterID,
		Severity:     severity,
	}
}

type IncidentResolvedEvent struct {
	BaseEvent
	IncidentID   int64  `json:"incident_id"`
	EnterpriseID string `json:"enterprise_id"`
	ResolverID   int64  `json:"resolver_id"`
}

func NewIncidentResolvedEvent(incidentID int64, enterpriseID string, resolverID int64) *IncidentResolvedEvent {
	return &IncidentResolvedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIncidentResolved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"incident_id":   incidentID,
				"enterprise_id": enterpriseID,
				"resolver_id":   resolverID,
			},
		},
		IncidentID:   incidentID,
		EnterpriseID: enterpriseID,
		ResolverID:   resolverID,
	}
}
