// Package remote is the HTTP client for the QuiClick server. The API
// interface is the port the sync engine consumes; Client is the real
// implementation, and tests substitute in-memory fakes.
package remote

import (
	"context"

	"github.com/quiclick/qc/internal/models"
)

// API is the remote service port.
type API interface {
	// Auth
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error

	// Bookmarks
	ListBookmarks(ctx context.Context, folderID *int64) ([]Item, error)
	CreateBookmark(ctx context.Context, req BookmarkCreate) (*Item, error)
	UpdateBookmark(ctx context.Context, id int64, patch BookmarkPatch) (*Item, error)
	DeleteBookmark(ctx context.Context, id int64) error

	// Folders
	ListFolders(ctx context.Context) ([]Item, error)
	CreateFolder(ctx context.Context, req FolderCreate) (*Item, error)
	UpdateFolder(ctx context.Context, id int64, req FolderPut) (*Item, error)
	DeleteFolder(ctx context.Context, id int64) error
	GetFolder(ctx context.Context, id int64) (*FolderWithBookmarks, error)

	// Ordering
	Reorder(ctx context.Context, items []ReorderItem) error
	ReorderBookmarks(ctx context.Context, items []ReorderItem) error

	// Settings
	GetSettings(ctx context.Context) (*Settings, error)
	PatchSettings(ctx context.Context, patch SettingsPatch) (*Settings, error)

	// Bulk transfer
	Export(ctx context.Context) (*ExportData, error)
	Import(ctx context.Context, data ExportData) error

	// Delta sync. ifModifiedSince is the opaque cursor from a previous
	// pull; empty requests a full pull. A 401 surfaces as ErrUnauthorized.
	Changes(ctx context.Context, ifModifiedSince string) (*ChangesResult, error)
}
