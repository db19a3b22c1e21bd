// workflow/orchestrator.go
package workflow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

// Audit action tags written by the orchestrator.
const (
	ActionClientFeedback   = "document_client_feedback"
	ActionTechnicalVerdict = "document_technical_verdict"
	ActionFirstView        = "document_first_view"
	ActionTicketCreate     = "ticket_create"
	ActionTicketStatus     = "ticket_status_update"
	ActionTicketEscalate   = "ticket_escalate"
)

// Orchestrator binds an actor, a target entity and a requested transition
// into one logical operation: load, run the state machine, persist, audit,
// notify. Persistence strictly precedes the audit append — "update
// succeeded, audit write failed" is tolerated, never the reverse.
type Orchestrator struct {
	docs    DocumentStore
	tickets TicketStore
	audit   *Recorder
	notify  Notifier
}

func NewOrchestrator(docs DocumentStore, tickets TicketStore, audit *Recorder, notify Notifier) *Orchestrator {
	return &Orchestrator{docs: docs, tickets: tickets, audit: audit, notify: notify}
}

// auditFailure records a FAILURE entry for business-meaningful errors only.
// Infrastructure faults are surfaced to the caller without an audit record.
func (o *Orchestrator) auditFailure(ctx context.Context, actor models.Actor, action string, target models.AuditTarget, orgID primitive.ObjectID, opErr error) {
	if !IsBusinessError(opErr) {
		return
	}
	o.audit.Record(ctx, Entry{
		Actor:    actor,
		Action:   action,
		Category: models.CategoryData,
		Severity: models.SeverityWarning,
		Outcome:  models.OutcomeFailure,
		Target:   target,
		OrgID:    orgID,
		Context:  bson.M{"reason": opErr.Error()},
	})
}

// scopeFor narrows listings to the actor's own organization for clients;
// quality and admin staff see every organization.
func scopeFor(actor models.Actor) Scope {
	if actor.Role == models.RoleClient {
		return Scope{OrgID: actor.OrganizationID}
	}
	return Scope{}
}

// ---- document operations ----

// SubmitClientFeedback runs the client review transition on a document.
func (o *Orchestrator) SubmitClientFeedback(ctx context.Context, actor models.Actor, docID primitive.ObjectID, decision models.DocumentStatus, observations string, flags []string) (*models.QualityDocument, error) {
	doc, err := o.docs.Get(ctx, docID)
	if err != nil {
		return nil, &InfrastructureError{Op: "document lookup", Err: err}
	}
	target := models.AuditTarget{EntityType: "document", EntityID: doc.ID}

	previous := doc.Status
	if err := ApplyClientFeedback(actor, doc, decision, observations, flags); err != nil {
		o.auditFailure(ctx, actor, ActionClientFeedback, target, doc.OwnerOrgID, err)
		return nil, err
	}

	updated, err := o.docs.Update(ctx, doc)
	if err != nil {
		return nil, &InfrastructureError{Op: "document update", Err: err}
	}

	severity := models.SeverityInfo
	if decision == models.StatusRejected {
		severity = models.SeverityWarning
	}
	o.audit.Record(ctx, Entry{
		Actor:    actor,
		Action:   ActionClientFeedback,
		Category: models.CategoryData,
		Severity: severity,
		Outcome:  models.OutcomeSuccess,
		Target:   target,
		OrgID:    updated.OwnerOrgID,
		Context: bson.M{
			"previousStatus": previous,
			"decision":       decision,
			"flags":          flags,
		},
	})
	o.notify.EntityChanged(updated.OwnerOrgID, "document", updated.ID)
	return updated, nil
}

// SubmitTechnicalVerdict runs the quality inspection transition.
func (o *Orchestrator) SubmitTechnicalVerdict(ctx context.Context, actor models.Actor, docID primitive.ObjectID, decision models.DocumentStatus, rejectionReason string) (*models.QualityDocument, error) {
	doc, err := o.docs.Get(ctx, docID)
	if err != nil {
		return nil, &InfrastructureError{Op: "document lookup", Err: err}
	}
	target := models.AuditTarget{EntityType: "document", EntityID: doc.ID}

	previous := doc.Status
	if err := ApplyTechnicalVerdict(actor, doc, decision, rejectionReason); err != nil {
		o.auditFailure(ctx, actor, ActionTechnicalVerdict, target, doc.OwnerOrgID, err)
		return nil, err
	}

	updated, err := o.docs.Update(ctx, doc)
	if err != nil {
		return nil, &InfrastructureError{Op: "document update", Err: err}
	}

	severity := models.SeverityInfo
	if decision == models.StatusRejected {
		severity = models.SeverityWarning
	}
	o.audit.Record(ctx, Entry{
		Actor:    actor,
		Action:   ActionTechnicalVerdict,
		Category: models.CategoryData,
		Severity: severity,
		Outcome:  models.OutcomeSuccess,
		Target:   target,
		OrgID:    updated.OwnerOrgID,
		Context: bson.M{
			"previousStatus":  previous,
			"decision":        decision,
			"rejectionReason": rejectionReason,
		},
	})
	o.notify.EntityChanged(updated.OwnerOrgID, "document", updated.ID)
	return updated, nil
}

// RecordFirstView marks the first client view of an approved document.
// Safe under concurrent duplicate calls: the store's conditional mark
// decides a single winner and every other caller sees a plain success
// with no extra audit record.
func (o *Orchestrator) RecordFirstView(ctx context.Context, actor models.Actor, docID primitive.ObjectID) (*models.QualityDocument, error) {
	doc, err := o.docs.Get(ctx, docID)
	if err != nil {
		return nil, &InfrastructureError{Op: "document lookup", Err: err}
	}
	target := models.AuditTarget{EntityType: "document", EntityID: doc.ID}

	changed, err := ApplyFirstView(actor, doc)
	if err != nil {
		o.auditFailure(ctx, actor, ActionFirstView, target, doc.OwnerOrgID, err)
		return nil, err
	}
	if !changed {
		// Already viewed: idempotent success.
		return doc, nil
	}

	won, err := o.docs.MarkFirstView(ctx, doc.ID, actor.ID, *doc.ViewedAt)
	if err != nil {
		return nil, &InfrastructureError{Op: "document update", Err: err}
	}
	if !won {
		// A concurrent call set the marker first; reload and report success.
		current, err := o.docs.Get(ctx, docID)
		if err != nil {
			return nil, &InfrastructureError{Op: "document lookup", Err: err}
		}
		return current, nil
	}

	o.audit.Record(ctx, Entry{
		Actor:    actor,
		Action:   ActionFirstView,
		Category: models.CategoryData,
		Severity: models.SeverityInfo,
		Outcome:  models.OutcomeSuccess,
		Target:   target,
		OrgID:    doc.OwnerOrgID,
	})
	o.notify.EntityChanged(doc.OwnerOrgID, "document", doc.ID)
	return doc, nil
}

// PendingDocuments lists documents awaiting review within the actor's scope.
func (o *Orchestrator) PendingDocuments(ctx context.Context, actor models.Actor) ([]models.QualityDocument, error) {
	docs, err := o.docs.ListPending(ctx, scopeFor(actor))
	if err != nil {
		return nil, &InfrastructureError{Op: "document listing", Err: err}
	}
	return docs, nil
}

// RejectedDocuments lists contested documents within the actor's scope.
func (o *Orchestrator) RejectedDocuments(ctx context.Context, actor models.Actor) ([]models.QualityDocument, error) {
	docs, err := o.docs.ListRejected(ctx, scopeFor(actor))
	if err != nil {
		return nil, &InfrastructureError{Op: "document listing", Err: err}
	}
	return docs, nil
}

// ---- ticket operations ----

// CreateTicket opens a new support ticket.
func (o *Orchestrator) CreateTicket(ctx context.Context, actor models.Actor, input TicketInput) (*models.SupportTicket, error) {
	ticket, err := NewTicket(actor, input)
	if err != nil {
		o.auditFailure(ctx, actor, ActionTicketCreate, models.AuditTarget{EntityType: "ticket"}, actor.OrganizationID, err)
		return nil, err
	}

	inserted, err := o.tickets.Insert(ctx, ticket)
	if err != nil {
		return nil, &InfrastructureError{Op: "ticket insert", Err: err}
	}

	severity := models.SeverityInfo
	if inserted.Priority == models.PriorityCritical {
		severity = models.SeverityWarning
	}
	o.audit.Record(ctx, Entry{
		Actor:    actor,
		Action:   ActionTicketCreate,
		Category: models.CategoryData,
		Severity: severity,
		Outcome:  models.OutcomeSuccess,
		Target:   models.AuditTarget{EntityType: "ticket", EntityID: inserted.ID},
		OrgID:    inserted.OrgID,
		Context: bson.M{
			"subject":  inserted.Subject,
			"priority": inserted.Priority,
			"flow":     inserted.Flow,
		},
	})
	o.notify.EntityChanged(inserted.OrgID, "ticket", inserted.ID)
	return inserted, nil
}

// UpdateTicketStatus moves a ticket along its lifecycle.
func (o *Orchestrator) UpdateTicketStatus(ctx context.Context, actor models.Actor, ticketID primitive.ObjectID, newStatus models.TicketStatus, resolutionNote string) (*models.SupportTicket, error) {
	ticket, err := o.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, &InfrastructureError{Op: "ticket lookup", Err: err}
	}
	target := models.AuditTarget{EntityType: "ticket", EntityID: ticket.ID}

	previous := ticket.Status
	if err := ApplyTicketStatus(actor, ticket, newStatus, resolutionNote); err != nil {
		o.auditFailure(ctx, actor, ActionTicketStatus, target, ticket.OrgID, err)
		return nil, err
	}

	updated, err := o.tickets.Update(ctx, ticket)
	if err != nil {
		return nil, &InfrastructureError{Op: "ticket update", Err: err}
	}

	o.audit.Record(ctx, Entry{
		Actor:    actor,
		Action:   ActionTicketStatus,
		Category: models.CategoryData,
		Severity: models.SeverityInfo,
		Outcome:  models.OutcomeSuccess,
		Target:   target,
		OrgID:    updated.OrgID,
		Context: bson.M{
			"previousStatus": previous,
			"newStatus":      newStatus,
		},
	})
	o.notify.EntityChanged(updated.OrgID, "ticket", updated.ID)
	return updated, nil
}

// EscalateTicket raises a client-quality ticket to administration.
func (o *Orchestrator) EscalateTicket(ctx context.Context, actor models.Actor, ticketID primitive.ObjectID, reason string) (*models.SupportTicket, error) {
	ticket, err := o.tickets.Get(ctx, ticketID)
	if err != nil {
		return nil, &InfrastructureError{Op: "ticket lookup", Err: err}
	}
	target := models.AuditTarget{EntityType: "ticket", EntityID: ticket.ID}

	if err := ApplyEscalation(actor, ticket, reason); err != nil {
		o.auditFailure(ctx, actor, ActionTicketEscalate, target, ticket.OrgID, err)
		return nil, err
	}

	updated, err := o.tickets.Update(ctx, ticket)
	if err != nil {
		return nil, &InfrastructureError{Op: "ticket update", Err: err}
	}

	o.audit.Record(ctx, Entry{
		Actor:    actor,
		Action:   ActionTicketEscalate,
		Category: models.CategoryData,
		Severity: models.SeverityWarning,
		Outcome:  models.OutcomeSuccess,
		Target:   target,
		OrgID:    updated.OrgID,
		Context: bson.M{
			"reason": reason,
			"flow":   updated.Flow,
		},
	})
	o.notify.EntityChanged(updated.OrgID, "ticket", updated.ID)
	return updated, nil
}

// Tickets lists tickets visible to the actor. Clients are pinned to their
// own organization regardless of the requested filter.
func (o *Orchestrator) Tickets(ctx context.Context, actor models.Actor, filter TicketFilter) ([]models.SupportTicket, error) {
	if actor.Role == models.RoleClient {
		filter.OrgID = actor.OrganizationID
	}
	tickets, err := o.tickets.List(ctx, filter)
	if err != nil {
		return nil, &InfrastructureError{Op: "ticket listing", Err: err}
	}
	return tickets, nil
}
