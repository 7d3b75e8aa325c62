package engine

import (
	"fmt"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
)

// Actions apply a mutation to the local store first, then enqueue the
// matching remote operation. The local write always succeeds regardless of
// connectivity; the queue carries the change to the server eventually.

// AddBookmark creates a bookmark under a provisional id and queues its
// creation. folderID of zero means root.
func (e *Engine) AddBookmark(title, url, favicon string, folderID int64) (models.Bookmark, error) {
	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("load bookmarks: %w", err)
	}

	now := e.now()
	b := models.Bookmark{
		ID:          models.NewProvisionalID(now),
		Title:       title,
		URL:         url,
		Favicon:     favicon,
		DateAdded:   models.Timestamp(now),
		FolderID:    folderID,
		Position:    len(bookmarks),
		LastUpdated: models.Timestamp(now),
	}
	bookmarks = append(bookmarks, b)
	if err := store.SetBookmarks(e.store, bookmarks); err != nil {
		return models.Bookmark{}, fmt.Errorf("save bookmarks: %w", err)
	}

	pos := b.Position
	return b, e.Enqueue(&CreateBookmark{
		LocalID:  b.ID,
		Title:    title,
		URL:      url,
		Favicon:  favicon,
		FolderID: folderID,
		Position: &pos,
	})
}

// EditBookmark applies a partial update locally and queues the patch.
func (e *Engine) EditBookmark(id int64, updates BookmarkUpdates) (models.Bookmark, error) {
	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("load bookmarks: %w", err)
	}
	idx := -1
	for i := range bookmarks {
		if bookmarks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Bookmark{}, fmt.Errorf("bookmark %d not found", id)
	}

	b := &bookmarks[idx]
	if updates.Title != nil {
		b.Title = *updates.Title
	}
	if updates.URL != nil {
		b.URL = *updates.URL
	}
	if updates.Favicon != nil {
		b.Favicon = *updates.Favicon
	}
	if updates.FolderID != nil {
		b.FolderID = *updates.FolderID
	}
	if updates.Position != nil {
		b.Position = *updates.Position
	}
	b.LastUpdated = models.Timestamp(e.now())
	if err := store.SetBookmarks(e.store, bookmarks); err != nil {
		return models.Bookmark{}, fmt.Errorf("save bookmarks: %w", err)
	}

	return *b, e.Enqueue(&UpdateBookmark{ID: id, Updates: updates})
}

// RemoveBookmark deletes a bookmark locally and queues the delete.
func (e *Engine) RemoveBookmark(id int64) error {
	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	kept := bookmarks[:0]
	found := false
	for _, b := range bookmarks {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return fmt.Errorf("bookmark %d not found", id)
	}
	if err := store.SetBookmarks(e.store, kept); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return e.Enqueue(&DeleteBookmark{ID: id})
}

// AddFolder creates a folder under a provisional id and queues its creation.
func (e *Engine) AddFolder(name string) (models.Folder, error) {
	folders, err := store.Folders(e.store)
	if err != nil {
		return models.Folder{}, fmt.Errorf("load folders: %w", err)
	}

	now := e.now()
	f := models.Folder{
		ID:          models.NewProvisionalID(now),
		Name:        name,
		DateCreated: models.Timestamp(now),
		Position:    len(folders),
		LastUpdated: models.Timestamp(now),
	}
	folders = append(folders, f)
	if err := store.SetFolders(e.store, folders); err != nil {
		return models.Folder{}, fmt.Errorf("save folders: %w", err)
	}

	pos := f.Position
	return f, e.Enqueue(&CreateFolder{LocalID: f.ID, Name: name, Position: &pos})
}

// RenameFolder renames a folder locally and queues the update.
func (e *Engine) RenameFolder(id int64, name string) error {
	folders, err := store.Folders(e.store)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}
	found := false
	for i := range folders {
		if folders[i].ID == id {
			folders[i].Name = name
			folders[i].LastUpdated = models.Timestamp(e.now())
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("folder %d not found", id)
	}
	if err := store.SetFolders(e.store, folders); err != nil {
		return fmt.Errorf("save folders: %w", err)
	}
	return e.Enqueue(&UpdateFolder{ID: id, Updates: FolderUpdates{Name: &name}})
}

// RemoveFolder deletes a folder, moves its bookmarks to root, and queues the
// delete. The server applies the same orphan rule.
func (e *Engine) RemoveFolder(id int64) error {
	folders, err := store.Folders(e.store)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}
	kept := folders[:0]
	found := false
	for _, f := range folders {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return fmt.Errorf("folder %d not found", id)
	}
	if err := store.SetFolders(e.store, kept); err != nil {
		return fmt.Errorf("save folders: %w", err)
	}

	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	changed := false
	for i := range bookmarks {
		if bookmarks[i].FolderID == id {
			bookmarks[i].FolderID = 0
			changed = true
		}
	}
	if changed {
		if err := store.SetBookmarks(e.store, bookmarks); err != nil {
			return fmt.Errorf("save bookmarks: %w", err)
		}
	}

	return e.Enqueue(&DeleteFolder{ID: id})
}

// MoveBookmark places a bookmark at a new root position and queues a
// reorder covering every root-level item's resulting position.
func (e *Engine) MoveBookmark(id int64, position int) error {
	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	idx := -1
	for i := range bookmarks {
		if bookmarks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("bookmark %d not found", id)
	}
	if position < 0 {
		position = 0
	}
	if position >= len(bookmarks) {
		position = len(bookmarks) - 1
	}

	moved := bookmarks[idx]
	rest := append(append([]models.Bookmark{}, bookmarks[:idx]...), bookmarks[idx+1:]...)
	reordered := append(append(append([]models.Bookmark{}, rest[:position]...), moved), rest[position:]...)
	now := models.Timestamp(e.now())
	items := make([]remote.ReorderItem, len(reordered))
	for i := range reordered {
		reordered[i].Position = i
		reordered[i].LastUpdated = now
		items[i] = remote.ReorderItem{ID: reordered[i].ID, Position: i}
	}
	if err := store.SetBookmarks(e.store, reordered); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}

	return e.Enqueue(&Reorder{Items: items})
}

// SaveSettings replaces the settings locally and queues the replacement.
func (e *Engine) SaveSettings(s models.Settings) error {
	s.LastUpdated = models.Timestamp(e.now())
	if err := store.SetSettings(e.store, s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return e.Enqueue(&UpdateSettings{Settings: s})
}

// PushAll queues a full-store push, used after a fresh login when the server
// has never seen this client's data.
func (e *Engine) PushAll() error {
	return e.Enqueue(&FullPush{})
}
