package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hostelfood/internal/db"
	"hostelfood/internal/model"
)

type mongoTicketRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoTicketRepository builds a MongoDB-backed ticket repository.
func NewMongoTicketRepository(mdb *mongo.Database, timeout time.Duration) TicketRepository {
	return &mongoTicketRepository{coll: mdb.Collection(db.CollTickets), timeout: timeout}
}

func (r *mongoTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, ticket)
	return mongoErr(err)
}

func (r *mongoTicketRepository) List(ctx context.Context) ([]model.Ticket, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoTicketRepository) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *mongoTicketRepository) find(ctx context.Context, filter bson.M) ([]model.Ticket, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mongoErr(err)
	}
	tickets := make([]model.Ticket, 0)
	if err := cur.All(ctx, &tickets); err != nil {
		return nil, mongoErr(err)
	}
	return tickets, nil
}

func (r *mongoTicketRepository) UpdateStatus(ctx context.Context, id string, status model.TicketStatus) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
