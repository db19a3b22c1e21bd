// store/documents.go
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/workflow"
)

// DocumentStore persists certificate documents in the "documents"
// collection and implements workflow.DocumentStore.
type DocumentStore struct {
	col *mongo.Collection
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{col: db.Collection("documents")}
}

func (s *DocumentStore) Get(ctx context.Context, id primitive.ObjectID) (*models.QualityDocument, error) {
	var doc models.QualityDocument
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update persists only the fields the workflow core mutates. Composition
// and mechanical records attached at upload are never rewritten here.
// Last writer wins on the persisted record; history lives in the audit trail.
func (s *DocumentStore) Update(ctx context.Context, doc *models.QualityDocument) (*models.QualityDocument, error) {
	set := bson.M{
		"status":    doc.Status,
		"updatedAt": doc.UpdatedAt,
	}
	unset := bson.M{}

	if doc.Inspection != nil {
		set["inspection"] = doc.Inspection
	}
	if doc.ClientFeedback != nil {
		set["clientFeedback"] = doc.ClientFeedback
	} else {
		unset["clientFeedback"] = ""
	}
	if doc.ViewedAt != nil {
		set["viewedAt"] = doc.ViewedAt
		set["viewedBy"] = doc.ViewedBy
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, workflow.ErrNotFound
	}
	return s.Get(ctx, doc.ID)
}

// MarkFirstView sets the view marker atomically, filtering on the marker
// still being unset. Exactly one concurrent caller wins.
func (s *DocumentStore) MarkFirstView(ctx context.Context, id, viewedBy primitive.ObjectID, viewedAt time.Time) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "viewedAt": nil},
		bson.M{"$set": bson.M{
			"viewedAt":  viewedAt,
			"viewedBy":  viewedBy,
			"updatedAt": viewedAt,
		}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (s *DocumentStore) ListPending(ctx context.Context, scope workflow.Scope) ([]models.QualityDocument, error) {
	return s.listByStatus(ctx, scope, models.StatusPending)
}

func (s *DocumentStore) ListRejected(ctx context.Context, scope workflow.Scope) ([]models.QualityDocument, error) {
	return s.listByStatus(ctx, scope, models.StatusRejected)
}

func (s *DocumentStore) listByStatus(ctx context.Context, scope workflow.Scope, status models.DocumentStatus) ([]models.QualityDocument, error) {
	filter := bson.M{"status": status, "isFolder": false}
	if !scope.OrgID.IsZero() {
		filter["ownerOrgId"] = scope.OrgID
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}).SetLimit(200)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.QualityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.QualityDocument{}
	}
	return docs, nil
}
