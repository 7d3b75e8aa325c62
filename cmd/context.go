package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/quiclick/qc/internal/engine"
	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
	"github.com/quiclick/qc/internal/syncconfig"
)

// openStore opens the local store in the current directory.
func openStore() (*store.SQLite, error) {
	return store.Open(getBaseDir())
}

// newClient builds a remote client from the active config.
func newClient() *remote.Client {
	return remote.New(syncconfig.GetServerURL(), syncconfig.GetSession())
}

// newEngine wires a sync engine over the store and the configured server.
func newEngine(s store.Store) *engine.Engine {
	e := engine.New(s, newClient(), slog.Default())
	e.SetAutoPush(syncconfig.GetAutoSync())
	return e
}

// parseID parses a numeric entity id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "~"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %s", arg)
	}
	return id, nil
}

// findBookmark returns the locally stored bookmark with the given id.
func findBookmark(s store.Store, id int64) (models.Bookmark, error) {
	bookmarks, err := store.Bookmarks(s)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("load bookmarks: %w", err)
	}
	for _, b := range bookmarks {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Bookmark{}, fmt.Errorf("bookmark %d not found", id)
}

// resolveFolder resolves a folder argument given as an id or a name.
// Returns zero when arg is empty (root).
func resolveFolder(s store.Store, arg string) (int64, error) {
	if arg == "" {
		return 0, nil
	}
	folders, err := store.Folders(s)
	if err != nil {
		return 0, fmt.Errorf("load folders: %w", err)
	}
	if id, err := strconv.ParseInt(strings.TrimPrefix(arg, "~"), 10, 64); err == nil {
		for _, f := range folders {
			if f.ID == id {
				return id, nil
			}
		}
	}
	for _, f := range folders {
		if strings.EqualFold(f.Name, arg) {
			return f.ID, nil
		}
	}
	return 0, fmt.Errorf("folder not found: %s", arg)
}
