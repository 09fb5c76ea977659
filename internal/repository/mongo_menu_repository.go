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

type mongoMenuRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoMenuRepository builds a MongoDB-backed menu repository.
func NewMongoMenuRepository(mdb *mongo.Database, timeout time.Duration) MenuRepository {
	return &mongoMenuRepository{coll: mdb.Collection(db.CollMenus), timeout: timeout}
}

func (r *mongoMenuRepository) Create(ctx context.Context, menu *model.Menu) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if menu.ID == "" {
		menu.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, menu)
	return mongoErr(err)
}

func (r *mongoMenuRepository) FindByID(ctx context.Context, id string) (*model.Menu, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var menu model.Menu
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&menu); err != nil {
		return nil, mongoErr(err)
	}
	return &menu, nil
}

func (r *mongoMenuRepository) List(ctx context.Context) ([]model.Menu, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoMenuRepository) ListPublishedByDates(ctx context.Context, dates []string) ([]model.Menu, error) {
	if len(dates) == 0 {
		return make([]model.Menu, 0), nil
	}
	filter := bson.M{
		"status": model.MenuStatusPublished,
		"date":   bson.M{"$in": dates},
	}
	return r.find(ctx, filter, options.Find())
}

func (r *mongoMenuRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Menu, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mongoErr(err)
	}
	menus := make([]model.Menu, 0)
	if err := cur.All(ctx, &menus); err != nil {
		return nil, mongoErr(err)
	}
	return menus, nil
}
