package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"tubenotes/domain/dto"
	"tubenotes/domain/model"
	httpHandler "tubenotes/interfaces/http"
	"tubenotes/usecase"
)

type MockBookmarkUsecase struct {
	mock.Mock
}

func (m *MockBookmarkUsecase) GetNotes(ctx context.Context, user *model.User, videoID string) ([]model.Note, error) {
	args := m.Called(ctx, user, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockBookmarkUsecase) CreateNote(ctx context.Context, user *model.User, req *dto.CreateBookmarkRequest) (*model.Video, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockBookmarkUsecase) EditNoteText(ctx context.Context, user *model.User, videoID string, noteIdx int, text string) (*model.Video, error) {
	args := m.Called(ctx, user, videoID, noteIdx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockBookmarkUsecase) ToggleNoteLike(ctx context.Context, user *model.User, videoID string, noteIdx int, liked bool) (*model.Video, error) {
	args := m.Called(ctx, user, videoID, noteIdx, liked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockBookmarkUsecase) DeleteNote(ctx context.Context, user *model.User, videoID string, noteIdx int) (*model.Video, bool, error) {
	args := m.Called(ctx, user, videoID, noteIdx)
	var video *model.Video
	if args.Get(0) != nil {
		video = args.Get(0).(*model.Video)
	}
	return video, args.Bool(1), args.Error(2)
}

func (m *MockBookmarkUsecase) GetScreenshots(ctx context.Context, user *model.User, videoID string) ([]model.Screenshot, error) {
	args := m.Called(ctx, user, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Screenshot), args.Error(1)
}

func (m *MockBookmarkUsecase) DeleteScreenshot(ctx context.Context, user *model.User, videoID string, screenshotIdx int) (*model.Video, bool, error) {
	args := m.Called(ctx, user, videoID, screenshotIdx)
	var video *model.Video
	if args.Get(0) != nil {
		video = args.Get(0).(*model.Video)
	}
	return video, args.Bool(1), args.Error(2)
}

func newTestUser() *model.User {
	return &model.User{ID: bson.NewObjectID(), GoogleID: "g-1", Email: "u@example.com"}
}

// bookmarkRouter mirrors the production route registrations, with the auth
// middleware replaced by one that injects a fixed user.
func bookmarkRouter(handler httpHandler.IBookmarkHandler, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set("current_user", user)
	})
	bookmark := router.Group("/api/bookmark")
	{
		bookmark.POST("", handler.CreateNote)
		bookmark.GET("/:videoId", handler.GetNotes)
		bookmark.PATCH("/:videoId/:noteIdx", handler.EditNote)
		bookmark.PATCH("/:videoId/:noteIdx/like", handler.ToggleLike)
		bookmark.GET("/:videoId/screenshots", handler.GetScreenshots)
		bookmark.DELETE("/:videoId/:noteIdx", handler.DeleteNote)
		bookmark.DELETE("/:videoId/:noteIdx/:idx", handler.DeleteScreenshot)
	}
	return router
}

func perform(router *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestCreateNoteHandler_Success(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()
	video := &model.Video{VideoID: "abc", Title: "T", Notes: []model.Note{{Timestamp: 10, Text: "x"}}}

	bookmarkUsecase.On("CreateNote", mock.Anything, user, mock.AnythingOfType("*dto.CreateBookmarkRequest")).Return(video, nil).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodPost, "/api/bookmark", gin.H{
		"videoId": "abc", "videoTitle": "T", "timestamp": 10, "note": "x",
	})

	assert.Equal(t, http.StatusOK, res.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["video"])
	bookmarkUsecase.AssertExpectations(t)
}

func TestCreateNoteHandler_ValidationErrorIs400(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	bookmarkUsecase.On("CreateNote", mock.Anything, user, mock.Anything).
		Return(nil, &usecase.ValidationError{Message: "note text is required"}).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodPost, "/api/bookmark", gin.H{
		"videoId": "abc", "videoTitle": "T", "timestamp": 10, "note": "   ",
	})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "note text is required", body["error"])
}

func TestGetNotesHandler_ReturnsPlainArray(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	bookmarkUsecase.On("GetNotes", mock.Anything, user, "abc").Return([]model.Note{{Timestamp: 5, Text: "n"}}, nil).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodGet, "/api/bookmark/abc", nil)

	assert.Equal(t, http.StatusOK, res.Code)
	var notes []model.Note
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &notes))
	assert.Len(t, notes, 1)
	assert.Equal(t, "n", notes[0].Text)
}

func TestEditNoteHandler_NotFoundIs404(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	bookmarkUsecase.On("EditNoteText", mock.Anything, user, "abc", 7, "new text").Return(nil, usecase.ErrNotFound).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodPatch, "/api/bookmark/abc/7", gin.H{"note": "new text"})

	assert.Equal(t, http.StatusNotFound, res.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "not found", body["error"])
}

func TestEditNoteHandler_NonIntegerIndexIs400(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodPatch, "/api/bookmark/abc/first", gin.H{"note": "x"})

	assert.Equal(t, http.StatusBadRequest, res.Code)
	bookmarkUsecase.AssertNotCalled(t, "EditNoteText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLikeHandler_Success(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()
	video := &model.Video{VideoID: "abc", Notes: []model.Note{{Text: "n", Liked: true}}}

	bookmarkUsecase.On("ToggleNoteLike", mock.Anything, user, "abc", 0, true).Return(video, nil).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodPatch, "/api/bookmark/abc/0/like", gin.H{"liked": true})

	assert.Equal(t, http.StatusOK, res.Code)
	bookmarkUsecase.AssertExpectations(t)
}

func TestDeleteNoteHandler_ReportsVideoDeleted(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	bookmarkUsecase.On("DeleteNote", mock.Anything, user, "abc", 0).Return(nil, true, nil).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodDelete, "/api/bookmark/abc/0", nil)

	assert.Equal(t, http.StatusOK, res.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["videoDeleted"])
	assert.NotContains(t, body, "video")
}

func TestDeleteScreenshotHandler_RoutesThroughWildcard(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()
	video := &model.Video{VideoID: "abc", Notes: []model.Note{{Text: "n"}}}

	bookmarkUsecase.On("DeleteScreenshot", mock.Anything, user, "abc", 2).Return(video, false, nil).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodDelete, "/api/bookmark/abc/screenshots/2", nil)

	assert.Equal(t, http.StatusOK, res.Code)
	bookmarkUsecase.AssertExpectations(t)
}

func TestDeleteScreenshotHandler_WrongLiteralSegmentIs404(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodDelete, "/api/bookmark/abc/notes/2", nil)

	assert.Equal(t, http.StatusNotFound, res.Code)
	bookmarkUsecase.AssertNotCalled(t, "DeleteScreenshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetScreenshotsHandler_Envelope(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	bookmarkUsecase.On("GetScreenshots", mock.Anything, user, "abc").Return([]model.Screenshot{{ID: "s1", Path: "p"}}, nil).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodGet, "/api/bookmark/abc/screenshots", nil)

	assert.Equal(t, http.StatusOK, res.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["screenshots"], 1)
}

func TestGetNotesHandler_StoreFailureIs500(t *testing.T) {
	bookmarkUsecase := new(MockBookmarkUsecase)
	user := newTestUser()

	bookmarkUsecase.On("GetNotes", mock.Anything, user, "abc").Return(nil, assert.AnError).Once()

	router := bookmarkRouter(httpHandler.NewBookmarkHandler(bookmarkUsecase), user)
	res := perform(router, http.MethodGet, "/api/bookmark/abc", nil)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
}
