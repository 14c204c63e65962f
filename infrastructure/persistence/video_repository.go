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

const videosCollection = "videos"

// VideoRepository is the Mongo-backed Video aggregate store. Aggregates are
// replaced whole on write; there is no per-field update path.
type VideoRepository struct {
	db *mongo.Database
}

func NewVideoRepository(client *mongo.Client, dbName string) repository.IVideo {
	return &VideoRepository{db: client.Database(dbName)}
}

func (r *VideoRepository) collection() *mongo.Collection {
	return r.db.Collection(videosCollection)
}

func (r *VideoRepository) FindByOwnerAndVideoID(ctx context.Context, ownerID, videoID string) (*model.Video, error) {
	var video model.Video
	filter := bson.D{{Key: "ownerId", Value: ownerID}, {Key: "videoId", Value: videoID}}
	err := r.collection().FindOne(ctx, filter).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":   err,
			"videoId": videoID,
		}).Error("Error while fetching video aggregate")
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) Upsert(ctx context.Context, video *model.Video) (*model.Video, error) {
	filter := bson.D{{Key: "ownerId", Value: video.OwnerID}, {Key: "videoId", Value: video.VideoID}}
	res, err := r.collection().ReplaceOne(ctx, filter, video, options.Replace().SetUpsert(true))
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":   err,
			"videoId": video.VideoID,
		}).Error("Error while upserting video aggregate")
		return nil, err
	}
	if oid, ok := res.UpsertedID.(bson.ObjectID); ok {
		video.ID = oid
	}
	return video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, ownerID, videoID string) error {
	filter := bson.D{{Key: "ownerId", Value: ownerID}, {Key: "videoId", Value: videoID}}
	if _, err := r.collection().DeleteOne(ctx, filter); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":   err,
			"videoId": videoID,
		}).Error("Error while deleting video aggregate")
		return err
	}
	return nil
}

func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID string, filter repository.VideoFilter) ([]model.Video, error) {
	query := bson.D{{Key: "ownerId", Value: ownerID}}
	if filter.FavoriteOnly {
		query = append(query, bson.E{Key: "favorite", Value: true})
	}
	cursor, err := r.collection().Find(ctx, query, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing videos")
		return nil, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	videos := []model.Video{}
	for cursor.Next(ctx) {
		var video model.Video
		if err := cursor.Decode(&video); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding video")
			continue
		}
		videos = append(videos, video)
	}
	return videos, cursor.Err()
}
