package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Video is the aggregate root holding a user's notes and screenshots for one
// YouTube video. It is always read and written as a whole document; notes and
// screenshots are addressed by list position.
type Video struct {
	ID          bson.ObjectID `json:"id"          bson:"_id,omitempty"`
	OwnerID     string        `json:"owner_id"    bson:"ownerId"`
	VideoID     string        `json:"video_id"    bson:"videoId"`
	Title       string        `json:"title"       bson:"title"`
	Favorite    bool          `json:"favorite"    bson:"favorite"`
	Notes       []Note        `json:"notes"       bson:"notes"`
	Screenshots []Screenshot  `json:"screenshots" bson:"screenshots"`
	CreatedAt   time.Time     `json:"created_at"  bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updated_at"  bson:"updatedAt"`
}

// Note is a timestamped annotation. ScreenshotID references the paired
// Screenshot's generated id; ScreenshotPath duplicates its path so clients
// can render the image without resolving the reference.
type Note struct {
	Timestamp      int64     `json:"timestamp"                 bson:"timestamp"`
	Text           string    `json:"text"                      bson:"text"`
	ScreenshotID   string    `json:"screenshot_id,omitempty"   bson:"screenshotId,omitempty"`
	ScreenshotPath string    `json:"screenshot_path,omitempty" bson:"screenshotPath,omitempty"`
	Liked          bool      `json:"liked"                     bson:"liked"`
	CreatedAt      time.Time `json:"created_at"                bson:"createdAt"`
}

// Screenshot is an uploaded frame capture. Path is either a public Drive
// content URL or a local relative path.
type Screenshot struct {
	ID        string    `json:"id"         bson:"id"`
	Timestamp int64     `json:"timestamp"  bson:"timestamp"`
	Path      string    `json:"path"       bson:"path"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// IsRemote reports whether the screenshot lives with the blob provider
// rather than on the local filesystem.
func (s *Screenshot) IsRemote() bool {
	return strings.HasPrefix(s.Path, "http://") || strings.HasPrefix(s.Path, "https://")
}

// Empty reports whether the aggregate holds no notes and no screenshots.
// An empty aggregate must not persist; callers delete it instead.
func (v *Video) Empty() bool {
	return len(v.Notes) == 0 && len(v.Screenshots) == 0
}

// ScreenshotIndexFor locates the screenshot paired with the given note:
// by id when the note carries one, otherwise first path match (documents
// written before ids were introduced). Returns -1 when there is no pair.
func (v *Video) ScreenshotIndexFor(n Note) int {
	if n.ScreenshotID != "" {
		for i := range v.Screenshots {
			if v.Screenshots[i].ID == n.ScreenshotID {
				return i
			}
		}
	}
	if n.ScreenshotPath != "" {
		for i := range v.Screenshots {
			if v.Screenshots[i].Path == n.ScreenshotPath {
				return i
			}
		}
	}
	return -1
}

// NoteIndexFor locates the note referencing the given screenshot, id first
// then path fallback. Returns -1 when no note references it.
func (v *Video) NoteIndexFor(s Screenshot) int {
	for i := range v.Notes {
		if v.Notes[i].ScreenshotID != "" && v.Notes[i].ScreenshotID == s.ID {
			return i
		}
	}
	for i := range v.Notes {
		if v.Notes[i].ScreenshotPath != "" && v.Notes[i].ScreenshotPath == s.Path {
			return i
		}
	}
	return -1
}
