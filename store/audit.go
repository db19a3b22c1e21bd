// store/audit.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
)

// AuditStore appends immutable audit records to the "audit_records"
// collection. There is no update or delete path; the collection is
// append-only by construction.
type AuditStore struct {
	col *mongo.Collection
}

func NewAuditStore(db *mongo.Database) *AuditStore {
	return &AuditStore{col: db.Collection("audit_records")}
}

// EnsureIndexes creates the listing indexes. Called once at startup.
func (s *AuditStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "orgId", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "target.entityType", Value: 1}, {Key: "target.entityId", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "actorId", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	return err
}

// Append implements workflow.AuditSink.
func (s *AuditStore) Append(ctx context.Context, record *models.AuditRecord) error {
	_, err := s.col.InsertOne(ctx, record)
	return err
}

// AuditFilter narrows audit listings for the trail endpoints.
type AuditFilter struct {
	OrgID      primitive.ObjectID
	EntityType string
	EntityID   primitive.ObjectID
	Outcome    models.AuditOutcome
	Limit      int64
	Skip       int64
}

// List returns audit records newest first.
func (s *AuditStore) List(ctx context.Context, filter AuditFilter) ([]models.AuditRecord, error) {
	query := bson.M{}
	if !filter.OrgID.IsZero() {
		query["orgId"] = filter.OrgID
	}
	if filter.EntityType != "" {
		query["target.entityType"] = filter.EntityType
	}
	if !filter.EntityID.IsZero() {
		query["target.entityId"] = filter.EntityID
	}
	if filter.Outcome != "" {
		query["outcome"] = filter.Outcome
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Skip)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.AuditRecord{}
	}
	return records, nil
}
