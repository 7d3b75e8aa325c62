package store

import (
	"github.com/quiclick/qc/internal/models"
)

// Typed accessors over the snapshot keys. Reads return zero values when a
// key has never been written; every read is fresh (no caching) because the
// puller and the processor may run close together.

// Bookmarks returns the bookmark collection.
func Bookmarks(s Store) ([]models.Bookmark, error) {
	var out []models.Bookmark
	if _, err := s.Get(KeyBookmarks, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetBookmarks replaces the bookmark collection.
func SetBookmarks(s Store, bookmarks []models.Bookmark) error {
	return s.Set(KeyBookmarks, bookmarks)
}

// Folders returns the folder collection.
func Folders(s Store) ([]models.Folder, error) {
	var out []models.Folder
	if _, err := s.Get(KeyFolders, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetFolders replaces the folder collection.
func SetFolders(s Store, folders []models.Folder) error {
	return s.Set(KeyFolders, folders)
}

// Settings returns the settings record, falling back to defaults when the
// store has never seen one.
func Settings(s Store) (models.Settings, error) {
	var out models.Settings
	ok, err := s.Get(KeySettings, &out)
	if err != nil {
		return models.Settings{}, err
	}
	if !ok {
		return models.DefaultSettings(), nil
	}
	return out, nil
}

// SetSettings replaces the settings record.
func SetSettings(s Store, settings models.Settings) error {
	return s.Set(KeySettings, settings)
}

// IDMap returns the provisional→server id mapping.
func IDMap(s Store) (map[int64]int64, error) {
	out := make(map[int64]int64)
	if _, err := s.Get(KeyIDMap, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetIDMap replaces the id mapping.
func SetIDMap(s Store, m map[int64]int64) error {
	return s.Set(KeyIDMap, m)
}

// SyncState returns the cursor and backoff state.
func SyncState(s Store) (models.SyncState, error) {
	var out models.SyncState
	if _, err := s.Get(KeySyncState, &out); err != nil {
		return models.SyncState{}, err
	}
	return out, nil
}

// SetSyncState replaces the cursor and backoff state.
func SetSyncState(s Store, state models.SyncState) error {
	return s.Set(KeySyncState, state)
}

// AuthState returns the last known authentication status.
func AuthState(s Store) (models.AuthState, error) {
	var out models.AuthState
	if _, err := s.Get(KeyAuthState, &out); err != nil {
		return models.AuthState{}, err
	}
	return out, nil
}

// SetAuthState replaces the authentication status.
func SetAuthState(s Store, state models.AuthState) error {
	return s.Set(KeyAuthState, state)
}
