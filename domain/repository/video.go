package repository

import (
	"context"

	"tubenotes/domain/model"
)

// VideoFilter narrows ListByOwner; zero value means no filtering.
type VideoFilter struct {
	FavoriteOnly bool
}

// IVideo persists Video aggregates keyed by (ownerId, videoId). Aggregates
// are read and written whole; last writer wins.
type IVideo interface {
	FindByOwnerAndVideoID(ctx context.Context, ownerID, videoID string) (*model.Video, error)
	Upsert(ctx context.Context, video *model.Video) (*model.Video, error)
	Delete(ctx context.Context, ownerID, videoID string) error
	ListByOwner(ctx context.Context, ownerID string, filter VideoFilter) ([]model.Video, error)
}
