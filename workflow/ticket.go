// workflow/ticket.go
package workflow

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

// Ticket lifecycle: OPEN → IN_PROGRESS → RESOLVED, with OPEN → RESOLVED as
// a direct edge. RESOLVED is terminal; status never moves backwards.
// Re-opening a resolved ticket is deliberately not a transition here — a
// follow-up is raised as a new ticket instead.

// TicketInput carries the caller-supplied fields for a new ticket.
type TicketInput struct {
	Subject     string
	Description string
	Priority    models.TicketPriority
	Flow        models.TicketFlow
	DocumentID  *primitive.ObjectID
	ClientName  string
}

// ticketEdgeAllowed reports whether a ticket status change is legal.
func ticketEdgeAllowed(from, to models.TicketStatus) bool {
	switch from {
	case models.TicketOpen:
		return to == models.TicketInProgress || to == models.TicketResolved
	case models.TicketInProgress:
		return to == models.TicketResolved
	case models.TicketResolved:
		return false
	default:
		return false
	}
}

// NewTicket builds a ticket in the OPEN state on behalf of a client or
// quality actor. Clients may only open tickets toward the quality team.
func NewTicket(actor models.Actor, input TicketInput) (*models.SupportTicket, error) {
	switch actor.Role {
	case models.RoleClient, models.RoleQuality:
	default:
		return nil, &ForbiddenError{Reason: "only client and quality accounts raise tickets"}
	}

	if strings.TrimSpace(input.Subject) == "" {
		return nil, &ValidationError{Field: "subject", Reason: "subject required"}
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, &ValidationError{Field: "description", Reason: "description required"}
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	if !priority.Valid() {
		return nil, &ValidationError{Field: "priority", Reason: "must be NORMAL or CRITICAL"}
	}

	flow := input.Flow
	if flow == "" {
		if actor.Role == models.RoleClient {
			flow = models.FlowClientToQuality
		} else {
			flow = models.FlowQualityToAdmin
		}
	}
	if !flow.Valid() {
		return nil, &ValidationError{Field: "flow", Reason: "unknown ticket flow"}
	}
	if actor.Role == models.RoleClient && flow != models.FlowClientToQuality {
		return nil, &ForbiddenError{Reason: "clients may only open tickets toward the quality team"}
	}

	now := time.Now().UTC()
	return &models.SupportTicket{
		Subject:      strings.TrimSpace(input.Subject),
		Description:  strings.TrimSpace(input.Description),
		Priority:     priority,
		Status:       models.TicketOpen,
		Flow:         flow,
		DocumentID:   input.DocumentID,
		RaisedByID:   actor.ID,
		RaisedByName: actor.Name,
		OrgID:        actor.OrganizationID,
		ClientName:   input.ClientName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ApplyTicketStatus moves a ticket along the lifecycle. Entering RESOLVED
// requires a non-empty resolution note; any other target needs none.
func ApplyTicketStatus(actor models.Actor, ticket *models.SupportTicket, newStatus models.TicketStatus, resolutionNote string) error {
	switch actor.Role {
	case models.RoleQuality, models.RoleAdmin:
	default:
		return &ForbiddenError{Reason: "only quality and admin staff update ticket status"}
	}

	if !newStatus.Valid() {
		return &ValidationError{Field: "status", Reason: "unknown ticket status"}
	}

	resolutionNote = strings.TrimSpace(resolutionNote)
	if newStatus == models.TicketResolved && resolutionNote == "" {
		return &ValidationError{Field: "resolutionNote", Reason: "resolution note required"}
	}

	if !ticketEdgeAllowed(ticket.Status, newStatus) {
		return &InvalidTransitionError{Entity: "ticket", From: string(ticket.Status), To: string(newStatus)}
	}

	ticket.Status = newStatus
	if newStatus == models.TicketResolved {
		ticket.ResolutionNote = resolutionNote
	}
	ticket.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyEscalation raises a client-quality ticket to the quality-admin
// channel. The permission rule lives in EscalationDecision.
func ApplyEscalation(actor models.Actor, ticket *models.SupportTicket, reason string) error {
	decision := EscalationDecision(actor.Role, ticket.Flow, models.FlowQualityToAdmin)
	if !decision.Allowed {
		return &ForbiddenError{Reason: decision.Reason}
	}

	reason = strings.TrimSpace(reason)
	for _, field := range decision.RequiredFields {
		if field == "reason" && reason == "" {
			return &ValidationError{Field: "reason", Reason: "escalation reason required"}
		}
	}

	if ticket.Status == models.TicketResolved {
		return &InvalidTransitionError{Entity: "ticket", From: string(ticket.Status), To: "escalated"}
	}

	now := time.Now().UTC()
	ticket.Flow = models.FlowQualityToAdmin
	ticket.Escalation = &models.Escalation{
		Reason:      reason,
		EscalatedAt: now,
		EscalatedBy: actor.ID,
	}
	ticket.UpdatedAt = now
	return nil
}
