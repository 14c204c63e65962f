package repository

import "context"

// Credentials is the per-call access/refresh token pair for the blob
// provider, sourced from the acting user. There is no process-wide token.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// IBlobStorage wraps the external binary storage provider (Google Drive).
// All calls are best-effort from the engine's point of view: upload/publish
// failures degrade note creation to note-without-screenshot, delete failures
// are logged and ignored.
type IBlobStorage interface {
	// EnsureFolder looks up a non-trashed folder by name (and parent, when
	// parentID is non-empty) before creating one. Repeated calls with the
	// same arguments return the same id, absent a race.
	EnsureFolder(ctx context.Context, creds Credentials, parentID, name string) (string, error)
	// Upload streams data into a new file in the given folder and returns
	// the provider file id.
	Upload(ctx context.Context, creds Credentials, folderID string, data []byte, filename, mimeType string) (string, error)
	// Publish grants anyone-with-link read access and returns a directly
	// fetchable content URL.
	Publish(ctx context.Context, creds Credentials, fileID string) (string, error)
	Delete(ctx context.Context, creds Credentials, fileID string) error
	// FileIDFromURL recovers the provider file id from a published content
	// URL; empty string when the URL is not one of the provider's shapes.
	FileIDFromURL(rawURL string) string
}
