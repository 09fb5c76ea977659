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

type mongoUserRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoUserRepository builds a MongoDB-backed user repository.
func NewMongoUserRepository(mdb *mongo.Database, timeout time.Duration) UserRepository {
	return &mongoUserRepository{coll: mdb.Collection(db.CollUsers), timeout: timeout}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return mongoErr(err)
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var user model.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mongoErr(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	users := make([]model.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, mongoErr(err)
	}
	if err := cur.All(ctx, &users); err != nil {
		return nil, mongoErr(err)
	}
	return users, nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) error {
	fields := update.Fields()
	if len(fields) == 0 {
		return nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return mongoErr(err)
	}
	// MatchedCount, not ModifiedCount: rewriting identical values is not a miss
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
