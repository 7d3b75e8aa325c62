package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
)

// Pull performs one conditional delta fetch and merges the result into the
// local store. Unless forced, it is a no-op when unauthenticated. Network
// failures leave all persisted state untouched; callers retry pulls
// opportunistically rather than on a schedule.
func (e *Engine) Pull(ctx context.Context, forced bool) error {
	auth, err := store.AuthState(e.store)
	if err != nil {
		return fmt.Errorf("read auth state: %w", err)
	}
	if !forced && !auth.Authenticated {
		return nil
	}

	state, err := store.SyncState(e.store)
	if err != nil {
		return fmt.Errorf("read sync state: %w", err)
	}

	result, err := e.api.Changes(ctx, state.LastPullCursor)
	if err != nil {
		if errors.Is(err, remote.ErrUnauthorized) {
			if err := store.SetAuthState(e.store, models.AuthState{LastChecked: e.now()}); err != nil {
				return fmt.Errorf("save auth state: %w", err)
			}
			return nil
		}
		// Transport or server failure: nothing persisted changes.
		return fmt.Errorf("fetch changes: %w", err)
	}

	if result.NotModified {
		// Still authenticated, no data changes, cursor stays put.
		auth.Authenticated = true
		auth.LastChecked = e.now()
		if err := store.SetAuthState(e.store, auth); err != nil {
			return fmt.Errorf("save auth state: %w", err)
		}
		return nil
	}

	data := result.Data
	user := data.User
	if err := store.SetAuthState(e.store, models.AuthState{
		Authenticated: true,
		User:          &user,
		LastChecked:   e.now(),
	}); err != nil {
		return fmt.Errorf("save auth state: %w", err)
	}

	if err := e.merge(data); err != nil {
		return err
	}

	// Advance the cursor only on the OK path so a 304 can never regress it.
	if result.LastModified != "" {
		state, err = store.SyncState(e.store)
		if err != nil {
			return fmt.Errorf("read sync state: %w", err)
		}
		state.LastPullCursor = result.LastModified
		if err := store.SetSyncState(e.store, state); err != nil {
			return fmt.Errorf("save sync state: %w", err)
		}
	}

	e.log.Debug("pull complete",
		"bookmarks", len(data.Bookmarks),
		"folders", len(data.Folders),
		"deleted", len(data.DeletedIDs))
	return nil
}

// merge applies a changes payload to the local collections with
// last-write-wins per entity and tombstone removal, then re-sorts each
// collection by position.
func (e *Engine) merge(data *remote.ChangesResponse) error {
	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	folders, err := store.Folders(e.store)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}

	for _, item := range data.Bookmarks {
		idx := -1
		for i := range bookmarks {
			if bookmarks[i].ID == item.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			bookmarks = append(bookmarks, item.ToBookmark())
		} else if remoteNewer(item.Timestamp(), bookmarks[idx].LastUpdated) {
			bookmarks[idx] = item.ToBookmark()
		}
		// else: local is at least as new, keep local
	}

	for _, item := range data.Folders {
		idx := -1
		for i := range folders {
			if folders[i].ID == item.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			folders = append(folders, item.ToFolder())
		} else if remoteNewer(item.Timestamp(), folders[idx].LastUpdated) {
			folders[idx] = item.ToFolder()
		}
	}

	if data.Settings != nil {
		local, err := store.Settings(e.store)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if remoteNewer(data.Settings.LastUpdated, local.LastUpdated) {
			if err := store.SetSettings(e.store, data.Settings.ToLocal()); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
		}
	}

	if len(data.DeletedIDs) > 0 {
		deleted := make(map[int64]bool, len(data.DeletedIDs))
		for _, id := range data.DeletedIDs {
			deleted[id] = true
		}
		kept := bookmarks[:0]
		for _, b := range bookmarks {
			if !deleted[b.ID] {
				kept = append(kept, b)
			}
		}
		bookmarks = kept
		keptFolders := folders[:0]
		for _, f := range folders {
			if !deleted[f.ID] {
				keptFolders = append(keptFolders, f)
			}
		}
		folders = keptFolders
	}

	sortBookmarks(bookmarks)
	sortFolders(folders)

	if err := store.SetBookmarks(e.store, bookmarks); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := store.SetFolders(e.store, folders); err != nil {
		return fmt.Errorf("save folders: %w", err)
	}
	return nil
}

// remoteNewer implements the merge rule: the remote version wins only when
// strictly newer; a tie keeps local. Simultaneous edits with identical
// timestamps therefore keep the local copy — a known limitation, preserved
// deliberately.
func remoteNewer(remoteTS, localTS string) bool {
	if localTS == "" {
		return true
	}
	return remoteTS > localTS
}

// sortBookmarks orders by position (stably, so ties keep encounter order)
// and renumbers positions densely from zero.
func sortBookmarks(bookmarks []models.Bookmark) {
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].Position < bookmarks[j].Position
	})
	for i := range bookmarks {
		bookmarks[i].Position = i
	}
}

func sortFolders(folders []models.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Position < folders[j].Position
	})
	for i := range folders {
		folders[i].Position = i
	}
}
