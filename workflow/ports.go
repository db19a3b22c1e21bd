// workflow/ports.go
package workflow

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

// Scope narrows a listing to one organization. The zero value means all
// organizations (quality and admin staff views).
type Scope struct {
	OrgID primitive.ObjectID
}

// TicketFilter narrows ticket listings. Zero-valued fields are ignored.
type TicketFilter struct {
	OrgID  primitive.ObjectID
	Status models.TicketStatus
	Flow   models.TicketFlow
}

// DocumentStore is the persistence port for certificate documents.
// Update persists only the fields the workflow core may mutate (status,
// inspection, client feedback, view markers); composition and mechanical
// records set at upload are never rewritten.
type DocumentStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.QualityDocument, error)
	Update(ctx context.Context, doc *models.QualityDocument) (*models.QualityDocument, error)
	// MarkFirstView sets the view marker only if it is still unset and
	// reports whether this call won. Concurrent duplicates must converge on
	// exactly one true result.
	MarkFirstView(ctx context.Context, id, viewedBy primitive.ObjectID, viewedAt time.Time) (bool, error)
	ListPending(ctx context.Context, scope Scope) ([]models.QualityDocument, error)
	ListRejected(ctx context.Context, scope Scope) ([]models.QualityDocument, error)
}

// TicketStore is the persistence port for support tickets.
type TicketStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.SupportTicket, error)
	Insert(ctx context.Context, ticket *models.SupportTicket) (*models.SupportTicket, error)
	Update(ctx context.Context, ticket *models.SupportTicket) (*models.SupportTicket, error)
	List(ctx context.Context, filter TicketFilter) ([]models.SupportTicket, error)
}

// AuditSink receives append-only audit records. From the orchestrator's
// perspective the append is fire-and-forget; a sink failure never rolls
// back the state transition it describes.
type AuditSink interface {
	Append(ctx context.Context, record *models.AuditRecord) error
}

// Notifier is invoked after every successful mutation so dependent views
// can refresh. There is no payload contract beyond "something changed".
type Notifier interface {
	EntityChanged(orgID primitive.ObjectID, entityType string, id primitive.ObjectID)
}
