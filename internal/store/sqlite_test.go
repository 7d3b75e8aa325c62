package store

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/quiclick/qc/internal/models"
)

func setupMemDB(t *testing.T) *SQLite {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s, err := NewWithConn(conn)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteGetSetRoundTrip(t *testing.T) {
	s := setupMemDB(t)

	found, err := s.Get(KeyBookmarks, &[]models.Bookmark{})
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if found {
		t.Fatal("expected no value for fresh key")
	}

	in := []models.Bookmark{{ID: 1, Title: "a", URL: "https://a", Position: 0}}
	if err := s.Set(KeyBookmarks, in); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []models.Bookmark
	found, err = s.Get(KeyBookmarks, &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected value")
	}
	if len(out) != 1 || out[0].Title != "a" {
		t.Errorf("round trip: %+v", out)
	}

	// Overwrite replaces the snapshot.
	if err := s.Set(KeyBookmarks, []models.Bookmark{}); err != nil {
		t.Fatalf("set empty: %v", err)
	}
	out = nil
	if _, err := s.Get(KeyBookmarks, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("overwrite failed: %+v", out)
	}
}

func TestSQLiteSubscribeNotifiesOnSet(t *testing.T) {
	s := setupMemDB(t)

	var got []Key
	cancel := s.Subscribe(func(k Key) { got = append(got, k) })

	if err := s.Set(KeyQueue, []string{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(KeyFolders, []models.Folder{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(got) != 2 || got[0] != KeyQueue || got[1] != KeyFolders {
		t.Fatalf("notifications: %v", got)
	}

	cancel()
	if err := s.Set(KeyQueue, []string{"x"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("cancelled subscriber notified: %v", got)
	}
}

func TestOpenRequiresInit(t *testing.T) {
	dir := t.TempDir()

	if _, err := Open(dir); err == nil {
		t.Fatal("expected error opening uninitialized store")
	}

	s, err := Initialize(dir)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := s.Set(KeySyncState, models.SyncState{LastPullCursor: "c1"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	var state models.SyncState
	found, err := s2.Get(KeySyncState, &state)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found || state.LastPullCursor != "c1" {
		t.Errorf("durability: found=%v state=%+v", found, state)
	}
}
