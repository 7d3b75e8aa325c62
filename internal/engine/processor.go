package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
)

// ProcessQueue drains the mutation queue one operation at a time. A second
// wake arriving while a drain is active returns immediately — the guard is
// a flag, not a lock, because triggers may fire while an operation awaits
// I/O. Draining requires authentication; an unauthenticated engine leaves
// the queue intact and stays idle.
func (e *Engine) ProcessQueue() {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.draining = false
		e.mu.Unlock()
	}()

	auth, err := store.AuthState(e.store)
	if err != nil {
		e.log.Warn("drain: read auth state", "err", err)
		return
	}
	if !auth.Authenticated {
		return
	}

	ctx := context.Background()
	for {
		// Reload every iteration: a reconcile may have rewritten entries
		// behind the head.
		q, err := loadQueue(e.store)
		if err != nil {
			e.log.Warn("drain: load queue", "err", err)
			return
		}
		if len(q) == 0 {
			return
		}

		op := q[0]
		err = e.processOp(ctx, op)
		switch {
		case err == nil:
			if err := e.dropHead(op.ID); err != nil {
				e.log.Warn("drain: drop head", "err", err)
				return
			}
			e.resetBackoff()

		case errors.Is(err, remote.ErrUnauthorized):
			// Pause, never drop: the queue resumes after re-authentication.
			e.log.Warn("drain paused: unauthorized", "op", string(op.Type))
			if err := store.SetAuthState(e.store, models.AuthState{LastChecked: e.now()}); err != nil {
				e.log.Warn("drain: save auth state", "err", err)
			}
			return

		case remote.Retryable(err):
			e.log.Warn("drain: retryable failure", "op", string(op.Type), "err", err)
			e.incrementBackoff()
			return

		default:
			// Non-retryable: the server refused the operation; drop it.
			e.log.Error("drain: dropping op", "op", string(op.Type), "id", op.ID, "err", err)
			if err := e.dropHead(op.ID); err != nil {
				e.log.Warn("drain: drop head", "err", err)
				return
			}
		}
	}
}

// dropHead removes the head operation, verifying it is still the op that
// was processed.
func (e *Engine) dropHead(opID string) error {
	q, err := loadQueue(e.store)
	if err != nil {
		return err
	}
	if len(q) == 0 || q[0].ID != opID {
		return fmt.Errorf("queue head changed during drain (want %s)", opID)
	}
	return saveQueue(e.store, q[1:])
}

// processOp dispatches one operation to the remote service.
func (e *Engine) processOp(ctx context.Context, op QueueOp) error {
	switch p := op.Payload.(type) {
	case *CreateBookmark:
		return e.processCreateBookmark(ctx, p)
	case *UpdateBookmark:
		return e.processUpdateBookmark(ctx, p)
	case *DeleteBookmark:
		return e.processDelete(ctx, p.ID, false)
	case *CreateFolder:
		return e.processCreateFolder(ctx, p)
	case *UpdateFolder:
		return e.processUpdateFolder(ctx, p)
	case *DeleteFolder:
		return e.processDelete(ctx, p.ID, true)
	case *Reorder:
		return e.processReorder(ctx, p)
	case *UpdateSettings:
		return e.processUpdateSettings(ctx, p)
	case *FullPush:
		return e.processFullPush(ctx)
	default:
		return fmt.Errorf("unknown queue op type: %s", op.Type)
	}
}

func (e *Engine) processCreateBookmark(ctx context.Context, p *CreateBookmark) error {
	req := remote.BookmarkCreate{
		Title:    p.Title,
		URL:      p.URL,
		Favicon:  p.Favicon,
		Position: p.Position,
	}
	if p.FolderID != 0 {
		folderID := resolveID(e.store, p.FolderID)
		req.ParentID = &folderID
	}
	item, err := e.api.CreateBookmark(ctx, req)
	if err != nil {
		return err
	}
	if p.LocalID != 0 && item.ID != p.LocalID {
		return e.reconcile(kindBookmarks, p.LocalID, item.ID)
	}
	return nil
}

func (e *Engine) processUpdateBookmark(ctx context.Context, p *UpdateBookmark) error {
	id := resolveID(e.store, p.ID)
	patch := remote.BookmarkPatch{
		Title:    p.Updates.Title,
		URL:      p.Updates.URL,
		Favicon:  p.Updates.Favicon,
		Position: p.Updates.Position,
	}
	if p.Updates.FolderID != nil {
		folderID := resolveID(e.store, *p.Updates.FolderID)
		patch.ParentID = &folderID
	}
	_, err := e.api.UpdateBookmark(ctx, id, patch)
	return err
}

func (e *Engine) processCreateFolder(ctx context.Context, p *CreateFolder) error {
	item, err := e.api.CreateFolder(ctx, remote.FolderCreate{Title: p.Name, Position: p.Position})
	if err != nil {
		return err
	}
	if p.LocalID != 0 && item.ID != p.LocalID {
		return e.reconcile(kindFolders, p.LocalID, item.ID)
	}
	return nil
}

func (e *Engine) processUpdateFolder(ctx context.Context, p *UpdateFolder) error {
	id := resolveID(e.store, p.ID)
	req := remote.FolderPut{Position: p.Updates.Position}
	if p.Updates.Name != nil {
		req.Title = *p.Updates.Name
	} else {
		// PUT requires the full record; fall back to the local name.
		folders, err := store.Folders(e.store)
		if err != nil {
			return fmt.Errorf("load folders: %w", err)
		}
		for _, f := range folders {
			if f.ID == id || f.ID == p.ID {
				req.Title = f.Name
				break
			}
		}
	}
	_, err := e.api.UpdateFolder(ctx, id, req)
	return err
}

// processDelete sends a delete, treating "not found" as success — the
// entity being gone is the desired end state.
func (e *Engine) processDelete(ctx context.Context, id int64, folder bool) error {
	resolved := resolveID(e.store, id)
	var err error
	if folder {
		err = e.api.DeleteFolder(ctx, resolved)
	} else {
		err = e.api.DeleteBookmark(ctx, resolved)
	}
	if errors.Is(err, remote.ErrNotFound) {
		return nil
	}
	return err
}

func (e *Engine) processReorder(ctx context.Context, p *Reorder) error {
	items := make([]remote.ReorderItem, len(p.Items))
	for i, entry := range p.Items {
		items[i] = remote.ReorderItem{ID: resolveID(e.store, entry.ID), Position: entry.Position}
	}
	return e.api.Reorder(ctx, items)
}

func (e *Engine) processUpdateSettings(ctx context.Context, p *UpdateSettings) error {
	s := p.Settings
	patch := remote.SettingsPatch{
		ShowTitles:    &s.ShowTitles,
		TilesPerRow:   &s.TilesPerRow,
		TileGap:       &s.TileGap,
		ShowAddButton: &s.ShowAddButton,
	}
	_, err := e.api.PatchSettings(ctx, patch)
	return err
}

// processFullPush serializes the whole store into the server's import
// shape, then pulls once to absorb server-assigned ids and timestamps.
func (e *Engine) processFullPush(ctx context.Context) error {
	data, err := e.BuildExport()
	if err != nil {
		return err
	}
	if err := e.api.Import(ctx, *data); err != nil {
		return err
	}
	if err := e.Pull(ctx, false); err != nil {
		e.log.Warn("post-push pull failed", "err", err)
	}
	return nil
}

// BuildExport serializes the local store into the server's bulk-import
// shape. Provisional ids are omitted so the server assigns fresh ones.
func (e *Engine) BuildExport() (*remote.ExportData, error) {
	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	folders, err := store.Folders(e.store)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	settings, err := store.Settings(e.store)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	data := &remote.ExportData{
		Bookmarks:  make([]remote.ExportItem, 0, len(bookmarks)),
		Folders:    make([]remote.ExportItem, 0, len(folders)),
		ExportDate: models.Timestamp(e.now()),
		Version:    1,
	}
	for _, b := range bookmarks {
		item := remote.ExportItem{
			Title:     b.Title,
			URL:       b.URL,
			Favicon:   b.Favicon,
			DateAdded: orNow(b.DateAdded, e.now()),
			Position:  b.Position,
		}
		if !models.IsProvisional(b.ID) && b.ID != 0 {
			id := b.ID
			item.ID = &id
		}
		if b.FolderID != 0 {
			folderID := b.FolderID
			item.ParentID = &folderID
		}
		data.Bookmarks = append(data.Bookmarks, item)
	}
	for _, f := range folders {
		item := remote.ExportItem{
			Title:     f.Name,
			DateAdded: orNow(f.DateCreated, e.now()),
			Position:  f.Position,
		}
		if !models.IsProvisional(f.ID) && f.ID != 0 {
			id := f.ID
			item.ID = &id
		}
		data.Folders = append(data.Folders, item)
	}
	data.Settings = &remote.ExportSettings{
		ShowTitles:    settings.ShowTitles,
		TilesPerRow:   settings.TilesPerRow,
		TileGap:       settings.TileGap,
		ShowAddButton: settings.ShowAddButton,
	}
	return data, nil
}

func orNow(ts string, now time.Time) string {
	if ts != "" {
		return ts
	}
	return models.Timestamp(now)
}
