package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hostelfood/internal/db"
	"hostelfood/internal/model"
)

type mongoMenuItemRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoMenuItemRepository builds a MongoDB-backed menu item repository.
func NewMongoMenuItemRepository(mdb *mongo.Database, timeout time.Duration) MenuItemRepository {
	return &mongoMenuItemRepository{coll: mdb.Collection(db.CollMenuItems), timeout: timeout}
}

func (r *mongoMenuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, item)
	return mongoErr(err)
}

func (r *mongoMenuItemRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var item model.MenuItem
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&item); err != nil {
		return nil, mongoErr(err)
	}
	return &item, nil
}

func (r *mongoMenuItemRepository) FindByIDs(ctx context.Context, ids []string) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return make([]model.MenuItem, 0), nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *mongoMenuItemRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoMenuItemRepository) find(ctx context.Context, filter bson.M) ([]model.MenuItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, mongoErr(err)
	}
	items := make([]model.MenuItem, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, mongoErr(err)
	}
	return items, nil
}

func (r *mongoMenuItemRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return mongoErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
