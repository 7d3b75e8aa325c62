// Package store defines the durable key-value persistence port used by the
// sync engine and the CLI, plus its in-memory and SQLite implementations.
// Values are whole-collection JSON snapshots; there is no partial patching
// of a key.
package store

// Key names one stored collection or record.
type Key string

const (
	KeyBookmarks Key = "bookmarks"
	KeyFolders   Key = "folders"
	KeySettings  Key = "bookmarkSettings"
	KeyQueue     Key = "syncQueue"
	KeyIDMap     Key = "idMap"
	KeySyncState Key = "syncState"
	KeyAuthState Key = "authState"
)

// Store is the durable store port. Get decodes the stored JSON value into v
// and reports whether the key was present. Set replaces the value for key
// atomically relative to other Sets. Subscribe registers fn to be called
// after every Set, with the key that changed; the returned cancel removes
// the subscription.
type Store interface {
	Get(key Key, v any) (bool, error)
	Set(key Key, v any) error
	Subscribe(fn func(Key)) (cancel func())
}
