package engine

import (
	"testing"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
)

func TestReconcileFolderRewritesAllReferences(t *testing.T) {
	e, s, _, _ := newTestEngine(t)

	const provisional = int64(1750000000000)
	const serverID = int64(500)

	if err := store.SetFolders(s, []models.Folder{{ID: provisional, Name: "work"}}); err != nil {
		t.Fatalf("seed folders: %v", err)
	}
	if err := store.SetBookmarks(s, []models.Bookmark{
		{ID: 1, Title: "in folder", FolderID: provisional},
		{ID: 2, Title: "root"},
	}); err != nil {
		t.Fatalf("seed bookmarks: %v", err)
	}
	newFolder := provisional
	if err := saveQueue(s, []QueueOp{
		{ID: "a", Type: OpCreateBookmark, Payload: &CreateBookmark{LocalID: 3, Title: "x", URL: "https://x", FolderID: provisional}},
		{ID: "b", Type: OpUpdateBookmark, Payload: &UpdateBookmark{ID: 1, Updates: BookmarkUpdates{FolderID: &newFolder}}},
		{ID: "c", Type: OpUpdateFolder, Payload: &UpdateFolder{ID: provisional, Updates: FolderUpdates{}}},
		{ID: "d", Type: OpDeleteFolder, Payload: &DeleteFolder{ID: provisional}},
		{ID: "e", Type: OpReorder, Payload: &Reorder{Items: []remote.ReorderItem{{ID: provisional, Position: 1}, {ID: 2, Position: 0}}}},
	}); err != nil {
		t.Fatalf("seed queue: %v", err)
	}

	if err := e.reconcile(kindFolders, provisional, serverID); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	folders, _ := store.Folders(s)
	if folders[0].ID != serverID {
		t.Errorf("folder id: got %d, want %d", folders[0].ID, serverID)
	}

	bookmarks, _ := store.Bookmarks(s)
	if bookmarks[0].FolderID != serverID {
		t.Errorf("bookmark folderId: got %d, want %d", bookmarks[0].FolderID, serverID)
	}
	if bookmarks[1].FolderID != 0 {
		t.Errorf("root bookmark touched: folderId=%d", bookmarks[1].FolderID)
	}

	q, _ := loadQueue(s)
	if got := q[0].Payload.(*CreateBookmark).FolderID; got != serverID {
		t.Errorf("queued create folderId: got %d, want %d", got, serverID)
	}
	if got := *q[1].Payload.(*UpdateBookmark).Updates.FolderID; got != serverID {
		t.Errorf("queued update folderId: got %d, want %d", got, serverID)
	}
	if got := q[2].Payload.(*UpdateFolder).ID; got != serverID {
		t.Errorf("queued folder update id: got %d, want %d", got, serverID)
	}
	if got := q[3].Payload.(*DeleteFolder).ID; got != serverID {
		t.Errorf("queued folder delete id: got %d, want %d", got, serverID)
	}
	items := q[4].Payload.(*Reorder).Items
	if items[0].ID != serverID {
		t.Errorf("queued reorder id: got %d, want %d", items[0].ID, serverID)
	}
	if items[1].ID != 2 {
		t.Errorf("unrelated reorder id touched: got %d", items[1].ID)
	}

	idMap, _ := store.IDMap(s)
	if idMap[provisional] != serverID {
		t.Errorf("id map: got %d, want %d", idMap[provisional], serverID)
	}
}

func TestReconcileBookmarkRewritesEntity(t *testing.T) {
	e, s, _, _ := newTestEngine(t)

	const provisional = int64(1750000000001)
	if err := store.SetBookmarks(s, []models.Bookmark{{ID: provisional, Title: "b", URL: "https://b"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := saveQueue(s, []QueueOp{
		{ID: "a", Type: OpDeleteBookmark, Payload: &DeleteBookmark{ID: provisional}},
	}); err != nil {
		t.Fatalf("seed queue: %v", err)
	}

	if err := e.reconcile(kindBookmarks, provisional, 9); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	bookmarks, _ := store.Bookmarks(s)
	if bookmarks[0].ID != 9 {
		t.Errorf("bookmark id: got %d, want 9", bookmarks[0].ID)
	}
	q, _ := loadQueue(s)
	if got := q[0].Payload.(*DeleteBookmark).ID; got != 9 {
		t.Errorf("queued delete id: got %d, want 9", got)
	}
}

func TestResolveIDUsesMapAndPassesThrough(t *testing.T) {
	s := store.NewMemory()
	if err := store.SetIDMap(s, map[int64]int64{100: 7}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if got := resolveID(s, 100); got != 7 {
		t.Errorf("mapped: got %d, want 7", got)
	}
	if got := resolveID(s, 55); got != 55 {
		t.Errorf("unmapped: got %d, want 55", got)
	}
}
