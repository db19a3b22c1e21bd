// models/audit_record.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditCategory groups audit records by subsystem.
type AuditCategory string

const (
	CategoryData   AuditCategory = "DATA"
	CategoryAuth   AuditCategory = "AUTH"
	CategorySystem AuditCategory = "SYSTEM"
)

// AuditSeverity grades the weight of an audited action.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "INFO"
	SeverityWarning  AuditSeverity = "WARNING"
	SeverityCritical AuditSeverity = "CRITICAL"
)

// AuditOutcome records whether the audited operation succeeded.
type AuditOutcome string

const (
	OutcomeSuccess AuditOutcome = "SUCCESS"
	OutcomeFailure AuditOutcome = "FAILURE"
)

// AuditTarget identifies the entity an action was applied to.
type AuditTarget struct {
	EntityType string             `bson:"entityType" json:"entityType"` // "document", "ticket", "system"
	EntityID   primitive.ObjectID `bson:"entityId,omitempty" json:"entityId,omitempty"`
}

// AuditRecord is one immutable entry in the portal's audit trail.
// Records are append-only and are written exclusively by the workflow
// orchestrator; they outlive the entities they describe.
type AuditRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	ActorID   primitive.ObjectID `bson:"actorId" json:"actorId"`
	ActorName string             `bson:"actorName,omitempty" json:"actorName,omitempty"`
	ActorRole Role               `bson:"actorRole" json:"actorRole"`
	Action    string             `bson:"action" json:"action"` // e.g. "document_client_feedback", "ticket_escalate"
	Category  AuditCategory      `bson:"category" json:"category"`
	Severity  AuditSeverity      `bson:"severity" json:"severity"`
	Outcome   AuditOutcome       `bson:"outcome" json:"outcome"`
	Target    AuditTarget        `bson:"target" json:"target"`
	OrgID     primitive.ObjectID `bson:"orgId,omitempty" json:"orgId,omitempty"`
	Context   bson.M             `bson:"context,omitempty" json:"context,omitempty"`
}
