package repository

import (
	"context"

	"tubenotes/domain/model"
)

// IVideoCache caches per-owner video listings. A nil or unreachable cache
// must never fail a request; callers fall through to the store.
type IVideoCache interface {
	GetList(ctx context.Context, ownerID string) ([]model.Video, error)
	SetList(ctx context.Context, ownerID string, videos []model.Video)
	Invalidate(ctx context.Context, ownerID string)
}
