// workflow/recorder.go
package workflow

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

// Entry is what a completed operation hands to the recorder.
type Entry struct {
	Actor    models.Actor
	Action   string
	Category models.AuditCategory
	Severity models.AuditSeverity
	Outcome  models.AuditOutcome
	Target   models.AuditTarget
	OrgID    primitive.ObjectID
	Context  bson.M
}

// Recorder appends immutable audit records through the sink port.
// Append failures are logged and swallowed: a failed audit write must
// never roll back the state transition it describes.
type Recorder struct {
	sink AuditSink
}

func NewRecorder(sink AuditSink) *Recorder {
	return &Recorder{sink: sink}
}

// Record builds and appends one audit record.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	record := &models.AuditRecord{
		ID:        primitive.NewObjectID(),
		Timestamp: time.Now().UTC(),
		ActorID:   entry.Actor.ID,
		ActorName: entry.Actor.Name,
		ActorRole: entry.Actor.Role,
		Action:    entry.Action,
		Category:  entry.Category,
		Severity:  entry.Severity,
		Outcome:   entry.Outcome,
		Target:    entry.Target,
		OrgID:     entry.OrgID,
		Context:   entry.Context,
	}

	if err := r.sink.Append(ctx, record); err != nil {
		log.Printf("audit append failed (action=%s target=%s): %v", entry.Action, entry.Target.EntityType, err)
	}
}
