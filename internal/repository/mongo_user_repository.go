package repository

import (
	"context"
	"errors"

	"account-service/internal/domain/user"
	account_errors "account-service/pkg/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoUserRepository stores one document per user, keyed by _id, with a
// unique index on email.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(coll *mongo.Collection) UserRepository {
	return &MongoUserRepository{coll: coll}
}

func (r *MongoUserRepository) Create(ctx context.Context, u *user.User) error {
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return account_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, account_errors.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *MongoUserRepository) UpdateUser(ctx context.Context, u user.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return account_errors.ErrAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return account_errors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return account_errors.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
