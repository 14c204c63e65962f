package usecase

import (
	"context"

	"tubenotes/domain/model"
	"tubenotes/domain/repository"
	"tubenotes/infrastructure/utils"
)

// IVideoUsecase covers aggregate-level operations: listing, favorites and
// whole-video deletion (which sweeps every screenshot blob first).
type IVideoUsecase interface {
	ListVideos(ctx context.Context, user *model.User, filter repository.VideoFilter) ([]model.Video, error)
	ToggleFavorite(ctx context.Context, user *model.User, videoID string, favorite bool) (*model.Video, error)
	DeleteVideo(ctx context.Context, user *model.User, videoID string) error
}

type VideoUsecase struct {
	videoRepo repository.IVideo
	storage   repository.IBlobStorage
	cache     repository.IVideoCache // optional
}

func NewVideoUsecase(videoRepo repository.IVideo, storage repository.IBlobStorage) IVideoUsecase {
	return &VideoUsecase{videoRepo: videoRepo, storage: storage}
}

// NewVideoUsecaseWithCache creates the usecase with the listing cache
// configured.
func NewVideoUsecaseWithCache(videoRepo repository.IVideo, storage repository.IBlobStorage, cache repository.IVideoCache) IVideoUsecase {
	return (&VideoUsecase{videoRepo: videoRepo, storage: storage}).WithCache(cache)
}

// WithCache enables the Redis-backed listing cache (fluent).
func (u *VideoUsecase) WithCache(cache repository.IVideoCache) *VideoUsecase {
	u.cache = cache
	return u
}

func (u *VideoUsecase) ListVideos(ctx context.Context, user *model.User, filter repository.VideoFilter) ([]model.Video, error) {
	ownerID := user.ID.Hex()

	// Cache only serves the unfiltered listing; favorites are a scan.
	if u.cache != nil && !filter.FavoriteOnly {
		if videos, err := u.cache.GetList(ctx, ownerID); err == nil && videos != nil {
			return videos, nil
		}
	}

	videos, err := u.videoRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.Video{}
	}
	if u.cache != nil && !filter.FavoriteOnly {
		u.cache.SetList(ctx, ownerID, videos)
	}
	return videos, nil
}

func (u *VideoUsecase) ToggleFavorite(ctx context.Context, user *model.User, videoID string, favorite bool) (*model.Video, error) {
	ownerID := user.ID.Hex()
	video, err := u.videoRepo.FindByOwnerAndVideoID(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrNotFound
	}
	video.Favorite = favorite
	video.UpdatedAt = utils.GetCurrentTime()
	saved, err := u.videoRepo.Upsert(ctx, video)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Invalidate(ctx, ownerID)
	}
	return saved, nil
}

// DeleteVideo sweeps every screenshot blob best-effort, continuing past
// individual failures, then deletes the aggregate unconditionally.
func (u *VideoUsecase) DeleteVideo(ctx context.Context, user *model.User, videoID string) error {
	ownerID := user.ID.Hex()
	video, err := u.videoRepo.FindByOwnerAndVideoID(ctx, ownerID, videoID)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrNotFound
	}

	for i := range video.Screenshots {
		evictBlob(ctx, u.storage, user, video.Screenshots[i])
	}

	if err := u.videoRepo.Delete(ctx, ownerID, videoID); err != nil {
		return err
	}
	if u.cache != nil {
		u.cache.Invalidate(ctx, ownerID)
	}
	return nil
}
