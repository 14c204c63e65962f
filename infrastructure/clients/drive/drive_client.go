package drive

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"tubenotes/domain/repository"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Client implements repository.IBlobStorage against Google Drive. A Drive
// service is built per call from the acting user's token pair; the client
// itself holds only the OAuth app credentials.
type Client struct {
	clientID     string
	clientSecret string

	// opts, when set, replace the per-user authenticated transport so the
	// service can be pointed at a stub backend.
	opts []option.ClientOption
}

func NewDriveClient(clientID, clientSecret string) repository.IBlobStorage {
	return &Client{clientID: clientID, clientSecret: clientSecret}
}

// service builds a Drive service authenticated as the calling user. Expiry
// is set in the past so the token source refreshes on first use.
func (c *Client) service(ctx context.Context, creds repository.Credentials) (*gdrive.Service, error) {
	opts := c.opts
	if opts == nil {
		conf := &oauth2.Config{
			ClientID:     c.clientID,
			ClientSecret: c.clientSecret,
			Scopes:       []string{gdrive.DriveFileScope},
			Endpoint:     google.Endpoint,
		}
		token := &oauth2.Token{
			AccessToken:  creds.AccessToken,
			RefreshToken: creds.RefreshToken,
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(-1 * time.Minute),
		}
		opts = []option.ClientOption{option.WithHTTPClient(conf.Client(ctx, token))}
	}
	svc, err := gdrive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

func (c *Client) EnsureFolder(ctx context.Context, creds repository.Credentials, parentID, name string) (string, error) {
	svc, err := c.service(ctx, creds)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", "\\'"), folderMimeType)
	if parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", parentID)
	}
	list, err := svc.Files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("folder lookup failed: %w", err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, nil
	}

	folder := &gdrive.File{Name: name, MimeType: folderMimeType}
	if parentID != "" {
		folder.Parents = []string{parentID}
	}
	created, err := svc.Files.Create(folder).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("folder create failed: %w", err)
	}
	return created.Id, nil
}

func (c *Client) Upload(ctx context.Context, creds repository.Credentials, folderID string, data []byte, filename, mimeType string) (string, error) {
	svc, err := c.service(ctx, creds)
	if err != nil {
		return "", err
	}
	file := &gdrive.File{
		Name:    filename,
		Parents: []string{folderID},
	}
	created, err := svc.Files.Create(file).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return created.Id, nil
}

func (c *Client) Publish(ctx context.Context, creds repository.Credentials, fileID string) (string, error) {
	svc, err := c.service(ctx, creds)
	if err != nil {
		return "", err
	}
	perm := &gdrive.Permission{Role: "reader", Type: "anyone"}
	if _, err := svc.Permissions.Create(fileID, perm).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("permission grant failed: %w", err)
	}
	return ContentURL(fileID), nil
}

func (c *Client) Delete(ctx context.Context, creds repository.Credentials, fileID string) error {
	svc, err := c.service(ctx, creds)
	if err != nil {
		return err
	}
	if err := svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("file delete failed: %w", err)
	}
	return nil
}

// ContentURL is the directly fetchable form of a Drive file, as opposed to
// the human-facing view URL.
func ContentURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?id=%s&export=download", fileID)
}

// FileIDFromURL recovers the file id from the content URL shape and from
// the /file/d/<id>/ view shape. Empty string when neither matches.
func (c *Client) FileIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(u.Host, "drive.google.com") {
		return ""
	}
	if id := u.Query().Get("id"); id != "" {
		return id
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "d" {
			return parts[i+1]
		}
	}
	return ""
}
