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

type mongoSelectionRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoSelectionRepository builds a MongoDB-backed selection repository.
func NewMongoSelectionRepository(mdb *mongo.Database, timeout time.Duration) SelectionRepository {
	return &mongoSelectionRepository{coll: mdb.Collection(db.CollSelections), timeout: timeout}
}

// Upsert folds the existence check and the write into one UpdateOne so two
// racing requests cannot both insert. The unique (user_id, menu_id) index can
// still reject the losing upsert; that attempt is retried as an update.
func (r *mongoSelectionRepository) Upsert(ctx context.Context, sel *model.UserSelection) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if sel.ID == "" {
		sel.ID = uuid.NewString()
	}
	if sel.CreatedAt.IsZero() {
		sel.CreatedAt = time.Now().UTC()
	}
	filter := bson.M{"user_id": sel.UserID, "menu_id": sel.MenuID}
	update := bson.M{
		"$set": bson.M{"selected_item_ids": sel.SelectedItemIDs},
		"$setOnInsert": bson.M{
			"id":         sel.ID,
			"created_at": sel.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)

	res, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		res, err = r.coll.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return false, mongoErr(err)
	}

	if err := r.coll.FindOne(ctx, filter).Decode(sel); err != nil {
		return false, mongoErr(err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *mongoSelectionRepository) FindByUserAndMenu(ctx context.Context, userID, menuID string) (*model.UserSelection, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var sel model.UserSelection
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "menu_id": menuID}).Decode(&sel); err != nil {
		return nil, mongoErr(err)
	}
	return &sel, nil
}

func (r *mongoSelectionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.UserSelection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *mongoSelectionRepository) ListByMenu(ctx context.Context, menuID string) ([]model.UserSelection, error) {
	return r.find(ctx, bson.M{"menu_id": menuID}, options.Find())
}

func (r *mongoSelectionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.UserSelection, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mongoErr(err)
	}
	sels := make([]model.UserSelection, 0)
	if err := cur.All(ctx, &sels); err != nil {
		return nil, mongoErr(err)
	}
	return sels, nil
}
