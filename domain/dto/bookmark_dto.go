package dto

// CreateBookmarkRequest is the body of POST /api/bookmark. Screenshot is an
// optional base64 data URL captured by the extension; Timestamp arrives as a
// float from the player and is floored server-side.
type CreateBookmarkRequest struct {
	VideoID    string  `json:"videoId"`
	VideoTitle string  `json:"videoTitle"`
	Timestamp  float64 `json:"timestamp"`
	Note       string  `json:"note"`
	Screenshot string  `json:"screenshot,omitempty"`
}

// EditNoteRequest is the body of PATCH /api/bookmark/:videoId/:noteIdx.
type EditNoteRequest struct {
	Note string `json:"note"`
}

// LikeNoteRequest is the body of PATCH /api/bookmark/:videoId/:noteIdx/like.
type LikeNoteRequest struct {
	Liked bool `json:"liked"`
}

// FavoriteRequest is the body of PATCH /api/videos/:videoId/favorite.
type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}
