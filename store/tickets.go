// store/tickets.go
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NathanLuccaAcosvital/qualidade-sub001/models"
	"github.com/NathanLuccaAcosvital/qualidade-sub001/workflow"
)

// TicketStore persists support tickets in the "tickets" collection and
// implements workflow.TicketStore.
type TicketStore struct {
	col *mongo.Collection
}

func NewTicketStore(db *mongo.Database) *TicketStore {
	return &TicketStore{col: db.Collection("tickets")}
}

func (s *TicketStore) Get(ctx context.Context, id primitive.ObjectID) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketStore) Insert(ctx context.Context, ticket *models.SupportTicket) (*models.SupportTicket, error) {
	if ticket.ID.IsZero() {
		ticket.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketStore) Update(ctx context.Context, ticket *models.SupportTicket) (*models.SupportTicket, error) {
	set := bson.M{
		"status":    ticket.Status,
		"flow":      ticket.Flow,
		"updatedAt": ticket.UpdatedAt,
	}
	if ticket.ResolutionNote != "" {
		set["resolutionNote"] = ticket.ResolutionNote
	}
	if ticket.Escalation != nil {
		set["escalation"] = ticket.Escalation
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": ticket.ID}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, workflow.ErrNotFound
	}
	return s.Get(ctx, ticket.ID)
}

func (s *TicketStore) List(ctx context.Context, filter workflow.TicketFilter) ([]models.SupportTicket, error) {
	query := bson.M{}
	if !filter.OrgID.IsZero() {
		query["orgId"] = filter.OrgID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Flow != "" {
		query["flow"] = filter.Flow
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(200)
	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []models.SupportTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []models.SupportTicket{}
	}
	return tickets, nil
}
