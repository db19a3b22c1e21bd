// workflow/document.go
package workflow

import (
	"strings"
	"time"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

// The document compliance lifecycle. Legal edges:
//
//	PENDING  → APPROVED | REJECTED | TO_DELETE   (client review or verdict)
//	APPROVED → REJECTED | TO_DELETE              (client contest after the fact)
//	REJECTED, TO_DELETE → APPROVED | REJECTED    (quality re-inspection)
//
// REJECTED and TO_DELETE are terminal for clients; only a new inspection
// cycle moves a document out of them. The persisted Status field is a cache
// of current state; the audit trail is the authoritative history.

// clientEdgeAllowed reports whether a client decision may be applied from
// the current status.
func clientEdgeAllowed(from, to models.DocumentStatus) bool {
	switch from {
	case models.StatusPending:
		return to == models.StatusApproved || to == models.StatusRejected || to == models.StatusToDelete
	case models.StatusApproved:
		return to == models.StatusRejected || to == models.StatusToDelete
	case models.StatusRejected, models.StatusToDelete:
		return false
	default:
		return false
	}
}

// verdictEdgeAllowed reports whether a quality verdict may be applied from
// the current status.
func verdictEdgeAllowed(from, to models.DocumentStatus) bool {
	switch from {
	case models.StatusPending, models.StatusRejected, models.StatusToDelete:
		return to == models.StatusApproved || to == models.StatusRejected
	case models.StatusApproved:
		return false
	default:
		return false
	}
}

// ApplyClientFeedback applies a client review decision to doc in memory.
// The caller persists the mutated document and writes the audit record.
func ApplyClientFeedback(actor models.Actor, doc *models.QualityDocument, decision models.DocumentStatus, observations string, flags []string) error {
	if actor.Role != models.RoleClient {
		return &ForbiddenError{Reason: "only client accounts may review documents"}
	}
	if doc.IsFolder {
		return &ValidationError{Field: "documentId", Reason: "folders carry no compliance status"}
	}
	if actor.OrganizationID != doc.OwnerOrgID {
		return &ForbiddenError{Reason: "document belongs to another organization"}
	}

	switch decision {
	case models.StatusApproved, models.StatusRejected, models.StatusToDelete:
	default:
		return &ValidationError{Field: "decision", Reason: "must be APPROVED, REJECTED or TO_DELETE"}
	}

	if decision != models.StatusApproved && strings.TrimSpace(observations) == "" {
		return &ValidationError{Field: "observations", Reason: "observations required when contesting a document"}
	}

	if !clientEdgeAllowed(doc.Status, decision) {
		return &InvalidTransitionError{Entity: "document", From: string(doc.Status), To: string(decision)}
	}

	now := time.Now().UTC()
	doc.Status = decision
	doc.ClientFeedback = &models.ClientFeedback{
		Observations:      strings.TrimSpace(observations),
		Flags:             flags,
		LastInteractionAt: now,
		LastInteractionBy: actor.ID,
	}
	doc.UpdatedAt = now
	return nil
}

// ApplyTechnicalVerdict applies a quality inspector's compliance verdict.
// A REJECTED verdict requires a non-empty rejection reason. Re-approval
// clears the client's contestation markers; the audit trail keeps them.
func ApplyTechnicalVerdict(actor models.Actor, doc *models.QualityDocument, decision models.DocumentStatus, rejectionReason string) error {
	if actor.Role != models.RoleQuality {
		return &ForbiddenError{Reason: "only quality staff may issue verdicts"}
	}
	if doc.IsFolder {
		return &ValidationError{Field: "documentId", Reason: "folders carry no compliance status"}
	}

	switch decision {
	case models.StatusApproved, models.StatusRejected:
	default:
		return &ValidationError{Field: "decision", Reason: "must be APPROVED or REJECTED"}
	}

	rejectionReason = strings.TrimSpace(rejectionReason)
	if decision == models.StatusRejected && rejectionReason == "" {
		return &ValidationError{Field: "rejectionReason", Reason: "rejection reason required"}
	}

	if !verdictEdgeAllowed(doc.Status, decision) {
		return &InvalidTransitionError{Entity: "document", From: string(doc.Status), To: string(decision)}
	}

	now := time.Now().UTC()
	inspection := &models.Inspection{
		InspectedAt:   now,
		InspectedBy:   actor.ID,
		InspectorName: actor.Name,
	}
	if decision == models.StatusRejected {
		inspection.RejectionReason = rejectionReason
	}
	doc.Inspection = inspection

	if decision == models.StatusApproved && doc.ClientFeedback != nil {
		doc.ClientFeedback.Flags = nil
		doc.ClientFeedback.Observations = ""
	}

	doc.Status = decision
	doc.UpdatedAt = now
	return nil
}

// ApplyFirstView records the first client view of an approved document.
// It is idempotent: when the view marker is already set it reports
// changed=false and no error.
func ApplyFirstView(actor models.Actor, doc *models.QualityDocument) (changed bool, err error) {
	if actor.Role != models.RoleClient {
		return false, &ForbiddenError{Reason: "only client accounts record document views"}
	}
	if doc.IsFolder {
		return false, &ValidationError{Field: "documentId", Reason: "folders carry no compliance status"}
	}
	if actor.OrganizationID != doc.OwnerOrgID {
		return false, &ForbiddenError{Reason: "document belongs to another organization"}
	}

	if doc.ViewedAt != nil {
		return false, nil
	}

	if doc.Status != models.StatusApproved {
		return false, &InvalidTransitionError{Entity: "document", From: string(doc.Status), To: "first view"}
	}

	now := time.Now().UTC()
	doc.ViewedAt = &now
	doc.ViewedBy = actor.ID
	doc.UpdatedAt = now
	return true, nil
}

// CanDelete reports whether the actor may destroy the document or folder.
// Root folders are never individually destructible; clients never delete
// anything directly (they mark certificates TO_DELETE through review).
func CanDelete(actor models.Actor, doc *models.QualityDocument) bool {
	if doc.IsRootFolder() {
		return false
	}
	switch actor.Role {
	case models.RoleQuality, models.RoleAdmin:
		return true
	case models.RoleClient:
		return false
	default:
		return false
	}
}
