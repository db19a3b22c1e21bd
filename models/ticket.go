// models/ticket.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
)

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved:
		return true
	default:
		return false
	}
}

// TicketPriority classifies the urgency of a ticket.
type TicketPriority string

const (
	PriorityNormal   TicketPriority = "NORMAL"
	PriorityCritical TicketPriority = "CRITICAL"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityNormal, PriorityCritical:
		return true
	default:
		return false
	}
}

// TicketFlow tags the origin/destination channel of a ticket.
type TicketFlow string

const (
	FlowClientToQuality TicketFlow = "CLIENT_TO_QUALITY"
	FlowQualityToAdmin  TicketFlow = "QUALITY_TO_ADMIN"
)

// Valid reports whether f is a known flow.
func (f TicketFlow) Valid() bool {
	switch f {
	case FlowClientToQuality, FlowQualityToAdmin:
		return true
	default:
		return false
	}
}

// Escalation records the raising of a ticket from the client-quality channel
// to the quality-admin channel.
type Escalation struct {
	Reason      string             `bson:"reason" json:"reason"`
	EscalatedAt time.Time          `bson:"escalatedAt" json:"escalatedAt"`
	EscalatedBy primitive.ObjectID `bson:"escalatedBy" json:"escalatedBy"`
}

// SupportTicket is a service request tied to a document or a general
// inquiry. RESOLVED is terminal.
type SupportTicket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject     string             `bson:"subject" json:"subject"`
	Description string             `bson:"description" json:"description"`
	Priority    TicketPriority     `bson:"priority" json:"priority"`
	Status      TicketStatus       `bson:"status" json:"status"`
	Flow        TicketFlow         `bson:"flow" json:"flow"`

	DocumentID *primitive.ObjectID `bson:"documentId,omitempty" json:"documentId,omitempty"`

	RaisedByID   primitive.ObjectID `bson:"raisedById" json:"raisedById"`
	RaisedByName string             `bson:"raisedByName" json:"raisedByName"`
	OrgID        primitive.ObjectID `bson:"orgId,omitempty" json:"orgId,omitempty"`
	ClientName   string             `bson:"clientName,omitempty" json:"clientName,omitempty"`

	ResolutionNote string      `bson:"resolutionNote,omitempty" json:"resolutionNote,omitempty"`
	Escalation     *Escalation `bson:"escalation,omitempty" json:"escalation,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
