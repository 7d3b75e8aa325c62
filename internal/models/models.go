package models

import (
	"time"
)

// Bookmark is a single tile in the local store. IDs are server-assigned
// integers once synced; freshly created bookmarks carry a provisional id
// (see NewProvisionalID) until the create is acknowledged.
type Bookmark struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Favicon     string `json:"favicon,omitempty"`
	DateAdded   string `json:"dateAdded"`
	FolderID    int64  `json:"folderId,omitempty"` // 0 = root
	Position    int    `json:"position"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Folder groups bookmarks. Folders do not nest.
type Folder struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DateCreated string `json:"dateCreated"`
	Position    int    `json:"position"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Settings is the singleton display-settings record.
type Settings struct {
	ShowTitles    bool   `json:"showTitles"`
	TilesPerRow   int    `json:"tilesPerRow"`
	TileGap       int    `json:"tileGap"`
	ShowAddButton bool   `json:"showAddButton"`
	LastUpdated   string `json:"lastUpdated,omitempty"`
}

// DefaultSettings returns the settings used before any sync has happened.
func DefaultSettings() Settings {
	return Settings{
		ShowTitles:    true,
		TilesPerRow:   8,
		TileGap:       1,
		ShowAddButton: true,
	}
}

// User identifies the authenticated account as reported by the server.
type User struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthState records the last known authentication status.
type AuthState struct {
	Authenticated bool      `json:"authenticated"`
	User          *User     `json:"user,omitempty"`
	LastChecked   time.Time `json:"lastChecked"`
}

// Backoff is the retry state of the queue processor.
type Backoff struct {
	RetryCount  int        `json:"retryCount"`
	NextRetryAt *time.Time `json:"nextRetryAt,omitempty"`
}

// SyncState holds the pull cursor and backoff state. The cursor is the
// opaque Last-Modified value from the most recent successful delta pull;
// empty means "full pull next time".
type SyncState struct {
	LastPullCursor string  `json:"lastPullCursor,omitempty"`
	Backoff        Backoff `json:"backoff"`
}

// NewProvisionalID derives a placeholder id from the creation instant.
// The server assigns small autoincrement ids, so epoch-millisecond values
// never collide with it. Callers creating several entities in one batch
// should offset to keep ids unique.
func NewProvisionalID(now time.Time) int64 {
	return now.UnixMilli()
}

// IsProvisional reports whether id looks like a locally generated
// placeholder rather than a server-assigned row id.
func IsProvisional(id int64) bool {
	return id >= 1_000_000_000_000 // epoch ms since 2001
}

// Timestamp formats t the way the store and the server exchange times.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
