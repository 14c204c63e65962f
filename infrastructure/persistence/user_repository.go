package persistence

import (
	"context"
	"errors"

	"tubenotes/domain/model"
	"tubenotes/domain/repository"
	"tubenotes/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

// UserRepository is the Mongo-backed account store.
type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(client *mongo.Client, dbName string) repository.IUser {
	return &UserRepository{db: client.Database(dbName)}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var user model.User
	err = r.collection().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("Error while fetching user by id")
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	var user model.User
	err := r.collection().FindOne(ctx, bson.D{{Key: "googleId", Value: googleID}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.GetLogger().WithField("error", err).Error("Error while fetching user by google id")
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	filter := bson.D{{Key: "googleId", Value: user.GoogleID}}
	res, err := r.collection().ReplaceOne(ctx, filter, user, options.Replace().SetUpsert(true))
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":    err,
			"googleId": user.GoogleID,
		}).Error("Error while upserting user")
		return nil, err
	}
	if oid, ok := res.UpsertedID.(bson.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}
