package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"strings"

	"tubenotes/domain/dto"
	"tubenotes/domain/model"
	"tubenotes/domain/repository"
	"tubenotes/infrastructure/logger"
	"tubenotes/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const screenshotsFolder = "screenshots"

// IBookmarkUsecase is the note/screenshot lifecycle engine. It is the only
// component touching both the video store and the blob provider within one
// logical operation.
type IBookmarkUsecase interface {
	GetNotes(ctx context.Context, user *model.User, videoID string) ([]model.Note, error)
	CreateNote(ctx context.Context, user *model.User, req *dto.CreateBookmarkRequest) (*model.Video, error)
	EditNoteText(ctx context.Context, user *model.User, videoID string, noteIdx int, text string) (*model.Video, error)
	ToggleNoteLike(ctx context.Context, user *model.User, videoID string, noteIdx int, liked bool) (*model.Video, error)
	// DeleteNote removes the note and its paired screenshot (remote blob
	// included, best-effort). The bool result reports whether the whole
	// aggregate was deleted because both lists became empty.
	DeleteNote(ctx context.Context, user *model.User, videoID string, noteIdx int) (*model.Video, bool, error)
	GetScreenshots(ctx context.Context, user *model.User, videoID string) ([]model.Screenshot, error)
	DeleteScreenshot(ctx context.Context, user *model.User, videoID string, screenshotIdx int) (*model.Video, bool, error)
}

// BookmarkUsecase implements IBookmarkUsecase.
type BookmarkUsecase struct {
	videoRepo  repository.IVideo
	storage    repository.IBlobStorage
	cache      repository.IVideoCache // optional
	rootFolder string
}

// NewBookmarkUsecase creates the engine. rootFolder names the provider-side
// container folder under which per-video screenshots are stored.
func NewBookmarkUsecase(videoRepo repository.IVideo, storage repository.IBlobStorage, rootFolder string) IBookmarkUsecase {
	return &BookmarkUsecase{videoRepo: videoRepo, storage: storage, rootFolder: rootFolder}
}

// NewBookmarkUsecaseWithCache creates the engine with listing-cache
// invalidation configured.
func NewBookmarkUsecaseWithCache(videoRepo repository.IVideo, storage repository.IBlobStorage, rootFolder string, cache repository.IVideoCache) IBookmarkUsecase {
	return (&BookmarkUsecase{videoRepo: videoRepo, storage: storage, rootFolder: rootFolder}).WithCache(cache)
}

// WithCache enables listing-cache invalidation on mutations (fluent).
func (u *BookmarkUsecase) WithCache(cache repository.IVideoCache) *BookmarkUsecase {
	u.cache = cache
	return u
}

func (u *BookmarkUsecase) GetNotes(ctx context.Context, user *model.User, videoID string) ([]model.Note, error) {
	video, err := u.videoRepo.FindByOwnerAndVideoID(ctx, user.ID.Hex(), videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return []model.Note{}, nil
	}
	return video.Notes, nil
}

func (u *BookmarkUsecase) GetScreenshots(ctx context.Context, user *model.User, videoID string) ([]model.Screenshot, error) {
	video, err := u.videoRepo.FindByOwnerAndVideoID(ctx, user.ID.Hex(), videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return []model.Screenshot{}, nil
	}
	return video.Screenshots, nil
}

func (u *BookmarkUsecase) CreateNote(ctx context.Context, user *model.User, req *dto.CreateBookmarkRequest) (*model.Video, error) {
	if strings.TrimSpace(req.VideoID) == "" {
		return nil, newValidationError("videoId is required")
	}
	if strings.TrimSpace(req.VideoTitle) == "" {
		return nil, newValidationError("videoTitle is required")
	}
	if math.IsNaN(req.Timestamp) || math.IsInf(req.Timestamp, 0) || req.Timestamp < 0 {
		return nil, newValidationError("timestamp must be a non-negative number")
	}
	text := strings.TrimSpace(req.Note)
	if text == "" {
		return nil, newValidationError("note text is required")
	}
	timestamp := int64(math.Floor(req.Timestamp))
	ownerID := user.ID.Hex()

	video, err := u.videoRepo.FindByOwnerAndVideoID(ctx, ownerID, req.VideoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		video = &model.Video{
			OwnerID:     ownerID,
			VideoID:     req.VideoID,
			Title:       req.VideoTitle,
			Notes:       []model.Note{},
			Screenshots: []model.Screenshot{},
			CreatedAt:   utils.GetCurrentTime(),
		}
	}

	note := model.Note{
		Timestamp: timestamp,
		Text:      text,
		CreatedAt: utils.GetCurrentTime(),
	}

	if req.Screenshot != "" {
		if shot := u.uploadScreenshot(ctx, user, req.VideoID, timestamp, req.Screenshot); shot != nil {
			note.ScreenshotID = shot.ID
			note.ScreenshotPath = shot.Path
			video.Screenshots = append(video.Screenshots, *shot)
		}
	}

	video.Notes = append(video.Notes, note)
	video.UpdatedAt = utils.GetCurrentTime()
	saved, err := u.videoRepo.Upsert(ctx, video)
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx, ownerID)
	return saved, nil
}

// uploadScreenshot runs the provider leg of note creation. Any failure -
// missing tokens, undecodable payload, provider error - returns nil and the
// note is saved without a screenshot.
func (u *BookmarkUsecase) uploadScreenshot(ctx context.Context, user *model.User, videoID string, timestamp int64, payload string) *model.Screenshot {
	if !user.HasDriveTokens() {
		logger.GetLogger().WithField("user", user.ID.Hex()).Info("Drive tokens missing - saving note without screenshot")
		return nil
	}
	data, mimeType, err := decodeDataURL(payload)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Screenshot payload not decodable - saving note without screenshot")
		return nil
	}
	creds := repository.Credentials{AccessToken: user.AccessToken, RefreshToken: user.RefreshToken}

	rootID, err := u.storage.EnsureFolder(ctx, creds, "", u.rootFolder)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Ensure root folder failed - saving note without screenshot")
		return nil
	}
	folderID, err := u.storage.EnsureFolder(ctx, creds, rootID, screenshotsFolder)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Ensure screenshots folder failed - saving note without screenshot")
		return nil
	}
	filename := ScreenshotFilename(videoID, timestamp)
	fileID, err := u.storage.Upload(ctx, creds, folderID, data, filename, mimeType)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Screenshot upload failed - saving note without screenshot")
		return nil
	}
	publicURL, err := u.storage.Publish(ctx, creds, fileID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Screenshot publish failed - saving note without screenshot")
		return nil
	}
	return &model.Screenshot{
		ID:        bson.NewObjectID().Hex(),
		Timestamp: timestamp,
		Path:      publicURL,
		CreatedAt: utils.GetCurrentTime(),
	}
}

func (u *BookmarkUsecase) EditNoteText(ctx context.Context, user *model.User, videoID string, noteIdx int, text string) (*model.Video, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newValidationError("note text is required")
	}
	video, err := u.loadWithNote(ctx, user, videoID, noteIdx)
	if err != nil {
		return nil, err
	}
	video.Notes[noteIdx].Text = text
	return u.persist(ctx, user, video)
}

func (u *BookmarkUsecase) ToggleNoteLike(ctx context.Context, user *model.User, videoID string, noteIdx int, liked bool) (*model.Video, error) {
	video, err := u.loadWithNote(ctx, user, videoID, noteIdx)
	if err != nil {
		return nil, err
	}
	video.Notes[noteIdx].Liked = liked
	return u.persist(ctx, user, video)
}

func (u *BookmarkUsecase) DeleteNote(ctx context.Context, user *model.User, videoID string, noteIdx int) (*model.Video, bool, error) {
	video, err := u.loadWithNote(ctx, user, videoID, noteIdx)
	if err != nil {
		return nil, false, err
	}
	note := video.Notes[noteIdx]

	if idx := video.ScreenshotIndexFor(note); idx >= 0 {
		evictBlob(ctx, u.storage, user, video.Screenshots[idx])
		video.Screenshots = append(video.Screenshots[:idx], video.Screenshots[idx+1:]...)
	}
	video.Notes = append(video.Notes[:noteIdx], video.Notes[noteIdx+1:]...)

	return u.persistOrDelete(ctx, user, video)
}

func (u *BookmarkUsecase) DeleteScreenshot(ctx context.Context, user *model.User, videoID string, screenshotIdx int) (*model.Video, bool, error) {
	video, err := u.videoRepo.FindByOwnerAndVideoID(ctx, user.ID.Hex(), videoID)
	if err != nil {
		return nil, false, err
	}
	if video == nil || screenshotIdx < 0 || screenshotIdx >= len(video.Screenshots) {
		return nil, false, ErrNotFound
	}
	shot := video.Screenshots[screenshotIdx]

	evictBlob(ctx, u.storage, user, shot)
	if idx := video.NoteIndexFor(shot); idx >= 0 {
		video.Notes = append(video.Notes[:idx], video.Notes[idx+1:]...)
	}
	video.Screenshots = append(video.Screenshots[:screenshotIdx], video.Screenshots[screenshotIdx+1:]...)

	return u.persistOrDelete(ctx, user, video)
}

// evictBlob removes a screenshot's backing binary, remote or local. It is
// shared by note/screenshot deletes and the whole-video sweep. Failures are
// logged and ignored; the aggregate is the source of truth.
func evictBlob(ctx context.Context, storage repository.IBlobStorage, user *model.User, shot model.Screenshot) {
	if shot.IsRemote() {
		fileID := storage.FileIDFromURL(shot.Path)
		if fileID == "" {
			logger.GetLogger().WithField("path", shot.Path).Warn("Could not derive file id from screenshot URL - skipping remote delete")
			return
		}
		if !user.HasDriveTokens() {
			logger.GetLogger().WithField("user", user.ID.Hex()).Info("Drive tokens missing - skipping remote delete")
			return
		}
		creds := repository.Credentials{AccessToken: user.AccessToken, RefreshToken: user.RefreshToken}
		if err := storage.Delete(ctx, creds, fileID); err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"error":  err,
				"fileId": fileID,
			}).Warn("Remote screenshot delete failed - continuing with local removal")
		}
		return
	}
	if err := os.Remove(shot.Path); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error": err,
			"path":  shot.Path,
		}).Warn("Local screenshot delete failed - continuing")
	}
}

func (u *BookmarkUsecase) loadWithNote(ctx context.Context, user *model.User, videoID string, noteIdx int) (*model.Video, error) {
	video, err := u.videoRepo.FindByOwnerAndVideoID(ctx, user.ID.Hex(), videoID)
	if err != nil {
		return nil, err
	}
	if video == nil || noteIdx < 0 || noteIdx >= len(video.Notes) {
		return nil, ErrNotFound
	}
	return video, nil
}

func (u *BookmarkUsecase) persist(ctx context.Context, user *model.User, video *model.Video) (*model.Video, error) {
	video.UpdatedAt = utils.GetCurrentTime()
	saved, err := u.videoRepo.Upsert(ctx, video)
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx, user.ID.Hex())
	return saved, nil
}

// persistOrDelete applies the empty-aggregate rule: a video with no notes
// and no screenshots is deleted instead of persisted.
func (u *BookmarkUsecase) persistOrDelete(ctx context.Context, user *model.User, video *model.Video) (*model.Video, bool, error) {
	if video.Empty() {
		if err := u.videoRepo.Delete(ctx, video.OwnerID, video.VideoID); err != nil {
			return nil, false, err
		}
		u.invalidate(ctx, user.ID.Hex())
		return nil, true, nil
	}
	saved, err := u.persist(ctx, user, video)
	if err != nil {
		return nil, false, err
	}
	return saved, false, nil
}

func (u *BookmarkUsecase) invalidate(ctx context.Context, ownerID string) {
	if u.cache != nil {
		u.cache.Invalidate(ctx, ownerID)
	}
}

// ScreenshotFilename derives a stable, human-recognizable name from the
// video id and the note's offset, e.g. "dQw4w9WgXcQ-00h02m05s.png".
// Collisions are allowed and simply produce two distinct provider files.
func ScreenshotFilename(videoID string, timestamp int64) string {
	h := timestamp / 3600
	m := (timestamp % 3600) / 60
	s := timestamp % 60
	return fmt.Sprintf("%s-%02dh%02dm%02ds.png", videoID, h, m, s)
}

// decodeDataURL splits a "data:<mime>;base64,<payload>" capture into bytes
// and mime type. Bare base64 is accepted and assumed to be PNG.
func decodeDataURL(payload string) ([]byte, string, error) {
	mimeType := "image/png"
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data url")
		}
		header := payload[len("data:"):idx]
		if semi := strings.Index(header, ";"); semi >= 0 {
			header = header[:semi]
		}
		if header != "" {
			mimeType = header
		}
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}
