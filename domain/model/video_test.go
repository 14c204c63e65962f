package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tubenotes/domain/model"
)

func TestScreenshotIsRemote(t *testing.T) {
	remote := model.Screenshot{Path: "https://drive.google.com/uc?id=x&export=download"}
	insecure := model.Screenshot{Path: "http://example.com/shot.png"}
	local := model.Screenshot{Path: "screenshots/abc-00h00m10s.png"}

	assert.True(t, remote.IsRemote())
	assert.True(t, insecure.IsRemote())
	assert.False(t, local.IsRemote())
}

func TestVideoEmpty(t *testing.T) {
	video := model.Video{}
	assert.True(t, video.Empty())

	video.Notes = []model.Note{{Text: "x"}}
	assert.False(t, video.Empty())

	video.Notes = nil
	video.Screenshots = []model.Screenshot{{ID: "s"}}
	assert.False(t, video.Empty())
}

func TestScreenshotIndexFor_PrefersIDOverPath(t *testing.T) {
	shared := "https://drive.google.com/uc?id=dup&export=download"
	video := model.Video{
		Screenshots: []model.Screenshot{
			{ID: "a", Path: shared},
			{ID: "b", Path: shared},
		},
	}

	assert.Equal(t, 1, video.ScreenshotIndexFor(model.Note{ScreenshotID: "b", ScreenshotPath: shared}))
	// Documents written before ids: first path match wins.
	assert.Equal(t, 0, video.ScreenshotIndexFor(model.Note{ScreenshotPath: shared}))
	assert.Equal(t, -1, video.ScreenshotIndexFor(model.Note{}))
	assert.Equal(t, -1, video.ScreenshotIndexFor(model.Note{ScreenshotID: "zzz"}))
}

func TestNoteIndexFor_IDFirstThenPath(t *testing.T) {
	video := model.Video{
		Notes: []model.Note{
			{Text: "plain"},
			{Text: "legacy", ScreenshotPath: "p1"},
			{Text: "modern", ScreenshotID: "s1", ScreenshotPath: "p1"},
		},
	}

	assert.Equal(t, 2, video.NoteIndexFor(model.Screenshot{ID: "s1", Path: "p1"}))
	assert.Equal(t, 1, video.NoteIndexFor(model.Screenshot{ID: "other", Path: "p1"}))
	assert.Equal(t, -1, video.NoteIndexFor(model.Screenshot{ID: "none", Path: "nope"}))
}
