// Package phonebook provides the public API for opening a phone book store.
// Backing implementations stay internal; callers depend on types.Store.
//
// Example:
//
//	store, err := phonebook.Open(types.Config{
//	    Backend:  types.BackendSQLite,
//	    Location: "phonebook.db",
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
package phonebook

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/phonebook/internal/flatfile"
	"github.com/mesh-intelligence/phonebook/internal/sqlite"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Version is the phonebook release version. Builds may override it with
// -ldflags "-X".
var Version = "0.3.0"

// Open validates cfg and opens the selected backing at cfg.Location. An
// empty location opens an in-memory store. A nil logger uses slog.Default.
func Open(cfg types.Config, logger *slog.Logger) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		store types.Store
		err   error
	)
	switch cfg.Backend {
	case types.BackendSQLite:
		store, err = openSQLite(cfg.Location, logger)
	case types.BackendFlatFile:
		store, err = openFlatFile(cfg.Location, logger)
	default:
		return nil, types.ErrBackendUnknown
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// The wrappers keep a nil *Store from becoming a non-nil types.Store.

func openSQLite(location string, logger *slog.Logger) (types.Store, error) {
	s, err := sqlite.Open(location, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openFlatFile(location string, logger *slog.Logger) (types.Store, error) {
	s, err := flatfile.Open(location, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultFileName returns the store file name used inside a data directory
// for backend.
func DefaultFileName(backend string) string {
	if backend == types.BackendFlatFile {
		return "phonebook.txt"
	}
	return "phonebook.db"
}
