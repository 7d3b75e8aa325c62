package engine

import (
	"fmt"

	"github.com/quiclick/qc/internal/store"
)

// collectionKind names the entity collection a reconcile targets.
type collectionKind string

const (
	kindBookmarks collectionKind = "bookmarks"
	kindFolders   collectionKind = "folders"
)

// resolveID maps a provisional id to its server-assigned counterpart when
// the mapping is known. Unknown ids pass through unchanged: if they are
// genuinely provisional the remote rejects the operation and the processor
// drops it as non-retryable.
func resolveID(s store.Store, id int64) int64 {
	m, err := store.IDMap(s)
	if err != nil {
		return id
	}
	if serverID, ok := m[id]; ok {
		return serverID
	}
	return id
}

// reconcile rewrites every reference to provisionalID after the remote
// acknowledged a create with serverID. The entity itself, sibling
// collections referencing it, and all queued payloads are rewritten before
// the mapping is recorded; the processor must not advance past a dependent
// queue entry until this returns.
func (e *Engine) reconcile(kind collectionKind, provisionalID, serverID int64) error {
	switch kind {
	case kindBookmarks:
		bookmarks, err := store.Bookmarks(e.store)
		if err != nil {
			return fmt.Errorf("load bookmarks: %w", err)
		}
		for i := range bookmarks {
			if bookmarks[i].ID == provisionalID {
				bookmarks[i].ID = serverID
				if err := store.SetBookmarks(e.store, bookmarks); err != nil {
					return fmt.Errorf("save bookmarks: %w", err)
				}
				break
			}
		}
	case kindFolders:
		folders, err := store.Folders(e.store)
		if err != nil {
			return fmt.Errorf("load folders: %w", err)
		}
		for i := range folders {
			if folders[i].ID == provisionalID {
				folders[i].ID = serverID
				if err := store.SetFolders(e.store, folders); err != nil {
					return fmt.Errorf("save folders: %w", err)
				}
				break
			}
		}
		// Bookmarks may point at the folder that just got its real id.
		if err := e.rewriteFolderRefs(provisionalID, serverID); err != nil {
			return err
		}
	}

	if err := e.rewriteQueueRefs(provisionalID, serverID); err != nil {
		return err
	}

	idMap, err := store.IDMap(e.store)
	if err != nil {
		return fmt.Errorf("load id map: %w", err)
	}
	idMap[provisionalID] = serverID
	if err := store.SetIDMap(e.store, idMap); err != nil {
		return fmt.Errorf("save id map: %w", err)
	}

	e.log.Debug("reconciled id", "kind", string(kind), "local", provisionalID, "server", serverID)
	return nil
}

// rewriteFolderRefs updates bookmarks whose folderId points at the old id.
func (e *Engine) rewriteFolderRefs(oldID, newID int64) error {
	bookmarks, err := store.Bookmarks(e.store)
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	changed := false
	for i := range bookmarks {
		if bookmarks[i].FolderID == oldID {
			bookmarks[i].FolderID = newID
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := store.SetBookmarks(e.store, bookmarks); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

// rewriteQueueRefs rewrites every payload field in the pending queue that
// could carry the old id.
func (e *Engine) rewriteQueueRefs(oldID, newID int64) error {
	q, err := loadQueue(e.store)
	if err != nil {
		return fmt.Errorf("load queue: %w", err)
	}
	changed := false
	for i := range q {
		if q[i].Payload.rewriteID(oldID, newID) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := saveQueue(e.store, q); err != nil {
		return fmt.Errorf("save queue: %w", err)
	}
	return nil
}
