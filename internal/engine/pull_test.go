package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
)

func TestPullMergesLastWriteWins(t *testing.T) {
	e, s, api, _ := newTestEngine(t)

	if err := store.SetBookmarks(s, []models.Bookmark{
		{ID: 1, Title: "local newer", LastUpdated: "2025-06-01T10:00:00Z", Position: 0},
		{ID: 2, Title: "local older", LastUpdated: "2025-06-01T08:00:00Z", Position: 1},
		{ID: 3, Title: "tied", LastUpdated: "2025-06-01T09:00:00Z", Position: 2},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	api.changes = func(ctx context.Context, since string) (*remote.ChangesResult, error) {
		return &remote.ChangesResult{
			LastModified: "Sun, 01 Jun 2025 12:00:00 GMT",
			Data: &remote.ChangesResponse{
				User: models.User{Email: "me@example.com"},
				Bookmarks: []remote.Item{
					{ID: 1, Title: "remote older", LastUpdated: "2025-06-01T09:00:00Z"},
					{ID: 2, Title: "remote newer", LastUpdated: "2025-06-01T09:30:00Z", Position: 1},
					{ID: 3, Title: "remote tied", LastUpdated: "2025-06-01T09:00:00Z"},
					{ID: 4, Title: "brand new", LastUpdated: "2025-06-01T11:00:00Z", Position: 3},
				},
			},
		}, nil
	}

	if err := e.Pull(context.Background(), false); err != nil {
		t.Fatalf("pull: %v", err)
	}

	bookmarks, _ := store.Bookmarks(s)
	byID := make(map[int64]models.Bookmark)
	for _, b := range bookmarks {
		byID[b.ID] = b
	}
	if byID[1].Title != "local newer" {
		t.Errorf("id 1: remote older must not win, got %q", byID[1].Title)
	}
	if byID[2].Title != "remote newer" {
		t.Errorf("id 2: remote newer must win, got %q", byID[2].Title)
	}
	if byID[3].Title != "tied" {
		t.Errorf("id 3: tie must keep local, got %q", byID[3].Title)
	}
	if _, ok := byID[4]; !ok {
		t.Error("id 4: new remote entity missing")
	}

	auth, _ := store.AuthState(s)
	if !auth.Authenticated || auth.User == nil || auth.User.Email != "me@example.com" {
		t.Errorf("auth state not refreshed: %+v", auth)
	}

	state, _ := store.SyncState(s)
	if state.LastPullCursor != "Sun, 01 Jun 2025 12:00:00 GMT" {
		t.Errorf("cursor: got %q", state.LastPullCursor)
	}
}

func TestPullRemovesTombstonesAndRenumbers(t *testing.T) {
	e, s, api, _ := newTestEngine(t)

	if err := store.SetBookmarks(s, []models.Bookmark{
		{ID: 5, Title: "a", Position: 0, LastUpdated: "2025-06-01T09:00:00Z"},
		{ID: 9, Title: "doomed", Position: 1, LastUpdated: "2025-06-01T09:00:00Z"},
		{ID: 7, Title: "b", Position: 2, LastUpdated: "2025-06-01T09:00:00Z"},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	api.changes = func(ctx context.Context, since string) (*remote.ChangesResult, error) {
		return &remote.ChangesResult{
			LastModified: "Sun, 01 Jun 2025 12:00:00 GMT",
			Data: &remote.ChangesResponse{
				Bookmarks: []remote.Item{
					{ID: 7, Title: "b moved first", Position: 0, LastUpdated: "2025-06-01T10:00:00Z"},
				},
				DeletedIDs: []int64{9},
			},
		}, nil
	}

	if err := e.Pull(context.Background(), false); err != nil {
		t.Fatalf("pull: %v", err)
	}

	bookmarks, _ := store.Bookmarks(s)
	if len(bookmarks) != 2 {
		t.Fatalf("len: got %d, want 2", len(bookmarks))
	}
	for _, b := range bookmarks {
		if b.ID == 9 {
			t.Fatal("tombstoned bookmark survived")
		}
	}
	// Sorted by position, densely renumbered from zero.
	if bookmarks[0].ID != 7 || bookmarks[0].Position != 0 {
		t.Errorf("first: got id=%d pos=%d, want id=7 pos=0", bookmarks[0].ID, bookmarks[0].Position)
	}
	if bookmarks[1].ID != 5 || bookmarks[1].Position != 1 {
		t.Errorf("second: got id=%d pos=%d, want id=5 pos=1", bookmarks[1].ID, bookmarks[1].Position)
	}
}

func TestPullNotModifiedBumpsAuthKeepsCursor(t *testing.T) {
	e, s, api, _ := newTestEngine(t)

	if err := store.SetSyncState(s, models.SyncState{LastPullCursor: "Sun, 01 Jun 2025 10:00:00 GMT"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	existing := models.User{Email: "kept@example.com"}
	if err := store.SetAuthState(s, models.AuthState{Authenticated: true, User: &existing}); err != nil {
		t.Fatalf("seed auth: %v", err)
	}

	var gotSince string
	api.changes = func(ctx context.Context, since string) (*remote.ChangesResult, error) {
		gotSince = since
		return &remote.ChangesResult{NotModified: true}, nil
	}

	if err := e.Pull(context.Background(), false); err != nil {
		t.Fatalf("pull: %v", err)
	}

	if gotSince != "Sun, 01 Jun 2025 10:00:00 GMT" {
		t.Errorf("If-Modified-Since: got %q", gotSince)
	}
	state, _ := store.SyncState(s)
	if state.LastPullCursor != "Sun, 01 Jun 2025 10:00:00 GMT" {
		t.Errorf("cursor moved on 304: %q", state.LastPullCursor)
	}
	auth, _ := store.AuthState(s)
	if !auth.Authenticated {
		t.Error("auth should stay confirmed on 304")
	}
	if auth.User == nil || auth.User.Email != "kept@example.com" {
		t.Error("304 must not discard the known user")
	}
	if !auth.LastChecked.Equal(testEpoch) {
		t.Errorf("LastChecked not bumped: %s", auth.LastChecked)
	}
}

func TestPullUnauthorizedFlipsAuthState(t *testing.T) {
	e, s, api, _ := newTestEngine(t)

	api.changes = func(ctx context.Context, since string) (*remote.ChangesResult, error) {
		return nil, remote.ErrUnauthorized
	}

	if err := e.Pull(context.Background(), false); err != nil {
		t.Fatalf("pull should swallow 401: %v", err)
	}

	auth, _ := store.AuthState(s)
	if auth.Authenticated {
		t.Error("expected unauthenticated after 401")
	}
}

func TestPullTransportErrorLeavesStateUntouched(t *testing.T) {
	e, s, api, _ := newTestEngine(t)

	if err := store.SetSyncState(s, models.SyncState{LastPullCursor: "cursor-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	api.changes = func(ctx context.Context, since string) (*remote.ChangesResult, error) {
		return nil, errors.New("connection refused")
	}

	if err := e.Pull(context.Background(), false); err == nil {
		t.Fatal("expected error")
	}

	state, _ := store.SyncState(s)
	if state.LastPullCursor != "cursor-1" {
		t.Errorf("cursor changed on failure: %q", state.LastPullCursor)
	}
	auth, _ := store.AuthState(s)
	if !auth.Authenticated {
		t.Error("transport failure must not flip auth state")
	}
}

func TestPullSkippedWhenUnauthenticated(t *testing.T) {
	e, s, api, _ := newTestEngine(t)
	if err := store.SetAuthState(s, models.AuthState{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	called := false
	api.changes = func(ctx context.Context, since string) (*remote.ChangesResult, error) {
		called = true
		return &remote.ChangesResult{NotModified: true}, nil
	}

	if err := e.Pull(context.Background(), false); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if called {
		t.Error("unforced pull must not hit the server while unauthenticated")
	}

	if err := e.Pull(context.Background(), true); err != nil {
		t.Fatalf("forced pull: %v", err)
	}
	if !called {
		t.Error("forced pull must hit the server")
	}
}

func TestPullMergesSettings(t *testing.T) {
	e, s, api, _ := newTestEngine(t)

	local := models.DefaultSettings()
	local.TilesPerRow = 4
	local.LastUpdated = "2025-06-01T09:00:00Z"
	if err := store.SetSettings(s, local); err != nil {
		t.Fatalf("seed: %v", err)
	}

	api.changes = func(ctx context.Context, since string) (*remote.ChangesResult, error) {
		return &remote.ChangesResult{
			LastModified: "Sun, 01 Jun 2025 12:00:00 GMT",
			Data: &remote.ChangesResponse{
				Settings: &remote.Settings{TilesPerRow: 12, LastUpdated: "2025-06-01T11:00:00Z"},
			},
		}, nil
	}

	if err := e.Pull(context.Background(), false); err != nil {
		t.Fatalf("pull: %v", err)
	}

	settings, _ := store.Settings(s)
	if settings.TilesPerRow != 12 {
		t.Errorf("settings not merged: tilesPerRow=%d", settings.TilesPerRow)
	}
}
