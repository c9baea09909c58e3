package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/storage/sqlite"
)

const (
	// BackendSQLite selects the SQLite manifest.
	BackendSQLite = "sqlite"
	// BackendNone disables the manifest.
	BackendNone = "none"

	manifestDBFileName = "manifest.db"
)

var _ Store = (*sqlite.SQLiteStorage)(nil)

// NewFromConfig creates a store based on the loaded configuration.
func NewFromConfig() (Store, error) {
	return NewForBackend(config.Get("storage_backend", BackendSQLite), config.Get("state_dir", ""))
}

// NewForBackend creates a store for the provided backend name. A SQLite
// manifest that cannot be opened degrades to the no-op store with a warning,
// since generation must not fail because history is unavailable.
func NewForBackend(backend, stateDir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendNone:
		return NoopStore{}, nil
	case "", BackendSQLite:
		if stateDir == "" {
			return nil, fmt.Errorf("storage: state_dir not configured")
		}
		s, err := sqlite.NewSQLiteStorage(filepath.Join(stateDir, manifestDBFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite manifest, history disabled: %v", err))
			return NoopStore{}, nil
		}
		return s, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', history disabled", backend))
		return NoopStore{}, nil
	}
}
