package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tubenotes/domain/dto"
	"tubenotes/infrastructure/logger"
	"tubenotes/interfaces/middleware"
	"tubenotes/usecase"
)

// IBookmarkHandler maps the bookmark routes onto the reconciliation engine.
type IBookmarkHandler interface {
	GetNotes(ctx *gin.Context)
	CreateNote(ctx *gin.Context)
	EditNote(ctx *gin.Context)
	DeleteNote(ctx *gin.Context)
	ToggleLike(ctx *gin.Context)
	GetScreenshots(ctx *gin.Context)
	DeleteScreenshot(ctx *gin.Context)
}

type BookmarkHandler struct {
	bookmarkUsecase usecase.IBookmarkUsecase
}

func NewBookmarkHandler(bookmarkUsecase usecase.IBookmarkUsecase) IBookmarkHandler {
	return &BookmarkHandler{bookmarkUsecase: bookmarkUsecase}
}

// GetNotes handles GET /api/bookmark/:videoId
func (h *BookmarkHandler) GetNotes(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	notes, err := h.bookmarkUsecase.GetNotes(ctx.Request.Context(), user, ctx.Param("videoId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, notes)
}

// CreateNote handles POST /api/bookmark
func (h *BookmarkHandler) CreateNote(ctx *gin.Context) {
	var req dto.CreateBookmarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while unmarshal")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(ctx)
	video, err := h.bookmarkUsecase.CreateNote(ctx.Request.Context(), user, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// EditNote handles PATCH /api/bookmark/:videoId/:noteIdx
func (h *BookmarkHandler) EditNote(ctx *gin.Context) {
	noteIdx, ok := indexParam(ctx, "noteIdx")
	if !ok {
		return
	}
	var req dto.EditNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(ctx)
	video, err := h.bookmarkUsecase.EditNoteText(ctx.Request.Context(), user, ctx.Param("videoId"), noteIdx, req.Note)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// ToggleLike handles PATCH /api/bookmark/:videoId/:noteIdx/like
func (h *BookmarkHandler) ToggleLike(ctx *gin.Context) {
	noteIdx, ok := indexParam(ctx, "noteIdx")
	if !ok {
		return
	}
	var req dto.LikeNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(ctx)
	video, err := h.bookmarkUsecase.ToggleNoteLike(ctx.Request.Context(), user, ctx.Param("videoId"), noteIdx, req.Liked)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// DeleteNote handles DELETE /api/bookmark/:videoId/:noteIdx
func (h *BookmarkHandler) DeleteNote(ctx *gin.Context) {
	noteIdx, ok := indexParam(ctx, "noteIdx")
	if !ok {
		return
	}

	user := middleware.CurrentUser(ctx)
	video, videoDeleted, err := h.bookmarkUsecase.DeleteNote(ctx.Request.Context(), user, ctx.Param("videoId"), noteIdx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if videoDeleted {
		ctx.JSON(http.StatusOK, gin.H{"success": true, "videoDeleted": true})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

// GetScreenshots handles GET /api/bookmark/:videoId/screenshots
func (h *BookmarkHandler) GetScreenshots(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	screenshots, err := h.bookmarkUsecase.GetScreenshots(ctx.Request.Context(), user, ctx.Param("videoId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "screenshots": screenshots})
}

// DeleteScreenshot handles DELETE /api/bookmark/:videoId/screenshots/:idx.
// Routed through the :noteIdx wildcard, so the literal segment is verified
// here.
func (h *BookmarkHandler) DeleteScreenshot(ctx *gin.Context) {
	if ctx.Param("noteIdx") != "screenshots" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	idx, ok := indexParam(ctx, "idx")
	if !ok {
		return
	}

	user := middleware.CurrentUser(ctx)
	video, videoDeleted, err := h.bookmarkUsecase.DeleteScreenshot(ctx.Request.Context(), user, ctx.Param("videoId"), idx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if videoDeleted {
		ctx.JSON(http.StatusOK, gin.H{"success": true, "videoDeleted": true})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "video": video})
}

func indexParam(ctx *gin.Context, name string) (int, bool) {
	idx, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return idx, true
}
