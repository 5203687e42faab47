// Package audit records who did what to vendor reports. Events are logged
// in structured JSON so they can be shipped to log aggregation as-is.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/logging"
	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// EventType categorizes report lifecycle events for filtering and alerting.
type EventType string

const (
	// EventReportSubmitted is logged when a vendor files a new report.
	EventReportSubmitted EventType = "report_submitted"
	// EventReportUpdated is logged when an administrator edits a report.
	EventReportUpdated EventType = "report_updated"
	// EventReportDeleted is logged when an administrator deletes a report.
	// Deletion is irreversible, so this is the event reviewers look for.
	EventReportDeleted EventType = "report_deleted"
	// EventReportsExported is logged when an administrator downloads the
	// workbook export.
	EventReportsExported EventType = "reports_exported"
)

// Event is one auditable report action with the context needed to answer
// "who did what, when, from where".
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	EventType  EventType `json:"event_type"`
	ReportID   uuid.UUID `json:"report_id,omitempty"`
	ActorEmail string    `json:"actor_email,omitempty"`
	ActorRole  string    `json:"actor_role,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	Details    any       `json:"details,omitempty"`
}

// Trail logs report lifecycle events under a dedicated logger namespace.
type Trail struct {
	logger *zap.Logger
}

// NewTrail creates an audit trail. The logger gets an "audit" namespace so
// events are easy to filter from regular application logs.
func NewTrail(logger *zap.Logger) *Trail {
	return &Trail{logger: logger.Named("audit")}
}

// Record logs one event. Actor emails are masked; the full address already
// lives in the report row when it is needed.
func (t *Trail) Record(eventType EventType, actor *models.User, reportID uuid.UUID, clientIP string, details any) {
	event := Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		ReportID:  reportID,
		ClientIP:  clientIP,
		Details:   details,
	}
	if actor != nil {
		event.ActorEmail = logging.MaskEmail(actor.Email)
		event.ActorRole = string(actor.Role)
	}

	// Marshaling known types should never fail
	eventJSON, _ := json.Marshal(event)

	t.logger.Info(string(eventType),
		zap.String("event_json", string(eventJSON)),
		zap.String("report_id", event.ReportID.String()),
		zap.String("actor", event.ActorEmail),
		zap.String("client_ip", clientIP),
	)
}
