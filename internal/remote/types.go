package remote

import (
	"github.com/quiclick/qc/internal/models"
)

// Item is a bookmark or folder as the server represents it. Folders carry
// their name in Title and have no URL.
type Item struct {
	ID          int64  `json:"id"`
	Type        string `json:"type,omitempty"` // "bookmark" or "folder"
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
	DateAdded   string `json:"date_added"`
	ParentID    *int64 `json:"parent_id"`
	Position    int    `json:"position"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Timestamp returns the item's effective update time: the explicit update
// time when present, the creation time otherwise.
func (it Item) Timestamp() string {
	if it.LastUpdated != "" {
		return it.LastUpdated
	}
	return it.DateAdded
}

// ToBookmark converts a wire item to the local field names.
func (it Item) ToBookmark() models.Bookmark {
	var folderID int64
	if it.ParentID != nil {
		folderID = *it.ParentID
	}
	return models.Bookmark{
		ID:          it.ID,
		Title:       it.Title,
		URL:         it.URL,
		Favicon:     it.Favicon,
		DateAdded:   it.DateAdded,
		FolderID:    folderID,
		Position:    it.Position,
		LastUpdated: it.Timestamp(),
	}
}

// ToFolder converts a wire item to the local field names.
func (it Item) ToFolder() models.Folder {
	return models.Folder{
		ID:          it.ID,
		Name:        it.Title,
		DateCreated: it.DateAdded,
		Position:    it.Position,
		LastUpdated: it.Timestamp(),
	}
}

// BookmarkCreate is the body of POST /bookmarks.
type BookmarkCreate struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Favicon  string `json:"favicon,omitempty"`
	ParentID *int64 `json:"parent_id"`
	Position *int   `json:"position,omitempty"`
}

// BookmarkPatch is the body of PATCH /bookmarks/:id. Only fields present in
// the originating payload are sent.
type BookmarkPatch struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	Favicon  *string `json:"favicon,omitempty"`
	ParentID *int64  `json:"parent_id,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// FolderCreate is the body of POST /folders.
type FolderCreate struct {
	Title    string `json:"title"`
	Position *int   `json:"position,omitempty"`
}

// FolderPut is the body of PUT /folders/:id.
type FolderPut struct {
	Title    string `json:"title"`
	Position *int   `json:"position,omitempty"`
}

// FolderWithBookmarks is the response of GET /folders/:id.
type FolderWithBookmarks struct {
	Item
	Bookmarks []Item `json:"bookmarks"`
}

// ReorderItem is one positional assignment in a reorder batch.
type ReorderItem struct {
	ID       int64 `json:"id"`
	Position int   `json:"position"`
}

// Settings is the settings record on the wire.
type Settings struct {
	ShowTitles    bool   `json:"show_titles"`
	TilesPerRow   int    `json:"tiles_per_row"`
	TileGap       int    `json:"tile_gap"`
	ShowAddButton bool   `json:"show_add_button"`
	LastUpdated   string `json:"last_updated,omitempty"`
}

// ToLocal converts wire settings to the local field names.
func (s Settings) ToLocal() models.Settings {
	return models.Settings{
		ShowTitles:    s.ShowTitles,
		TilesPerRow:   s.TilesPerRow,
		TileGap:       s.TileGap,
		ShowAddButton: s.ShowAddButton,
		LastUpdated:   s.LastUpdated,
	}
}

// SettingsPatch is the body of PATCH /settings.
type SettingsPatch struct {
	ShowTitles    *bool `json:"show_titles,omitempty"`
	TilesPerRow   *int  `json:"tiles_per_row,omitempty"`
	TileGap       *int  `json:"tile_gap,omitempty"`
	ShowAddButton *bool `json:"show_add_button,omitempty"`
}

// ExportSettings is the settings shape inside export/import payloads.
type ExportSettings struct {
	ShowTitles    bool `json:"show_titles"`
	TilesPerRow   int  `json:"tiles_per_row"`
	TileGap       int  `json:"tile_gap"`
	ShowAddButton bool `json:"show_add_button"`
}

// ExportItem is a bookmark or folder inside export/import payloads. IDs are
// omitted for entities the server has never seen.
type ExportItem struct {
	ID        *int64 `json:"id,omitempty"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
	Favicon   string `json:"favicon,omitempty"`
	DateAdded string `json:"date_added"`
	ParentID  *int64 `json:"parent_id"`
	Position  int    `json:"position"`
}

// ExportData is the payload of GET /export and POST /import.
type ExportData struct {
	Bookmarks  []ExportItem    `json:"bookmarks"`
	Folders    []ExportItem    `json:"folders"`
	Settings   *ExportSettings `json:"settings"`
	ExportDate string          `json:"export_date,omitempty"`
	Version    int             `json:"version,omitempty"`
}

// ChangesResponse is the body of a 200 from GET /changes.
type ChangesResponse struct {
	User       models.User `json:"user"`
	Bookmarks  []Item      `json:"bookmarks"`
	Folders    []Item      `json:"folders"`
	Settings   *Settings   `json:"settings"`
	DeletedIDs []int64     `json:"deleted_ids"`
}

// ChangesResult carries the three non-error outcomes of a delta fetch.
// NotModified means the server answered 304; otherwise Data is set and
// LastModified holds the freshness marker for the next conditional fetch.
type ChangesResult struct {
	NotModified  bool
	LastModified string
	Data         *ChangesResponse
}
