package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tubenotes/domain/dto"
	"tubenotes/domain/repository"
	"tubenotes/interfaces/middleware"
	"tubenotes/usecase"
)

// IVideoHandler maps the video-level routes (listing, favorite, delete).
type IVideoHandler interface {
	ListVideos(ctx *gin.Context)
	ToggleFavorite(ctx *gin.Context)
	DeleteVideo(ctx *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase}
}

// ListVideos handles GET /api/videos (?favorite=true narrows to favorites)
func (h *VideoHandler) ListVideos(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	filter := repository.VideoFilter{FavoriteOnly: ctx.Query("favorite") == "true"}
	videos, err := h.videoUsecase.ListVideos(ctx.Request.Context(), user, filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, videos)
}

// ToggleFavorite handles PATCH /api/videos/:videoId/favorite
func (h *VideoHandler) ToggleFavorite(ctx *gin.Context) {
	var req dto.FavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(ctx)
	video, err := h.videoUsecase.ToggleFavorite(ctx.Request.Context(), user, ctx.Param("videoId"), req.Favorite)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, video)
}

// DeleteVideo handles DELETE /api/videos/:videoId
func (h *VideoHandler) DeleteVideo(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if err := h.videoUsecase.DeleteVideo(ctx.Request.Context(), user, ctx.Param("videoId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "video and screenshots deleted"})
}
