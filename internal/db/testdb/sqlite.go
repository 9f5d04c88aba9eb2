package testdb

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/bridgescan/bridgenode/internal/db"
	"github.com/stretchr/testify/require"
)

// SetupTestDB opens a migrated SQLite database in a per-test temp directory.
func SetupTestDB(t *testing.T) (*sql.DB, func()) {
	path := filepath.Join(t.TempDir(), "sqlite", "test", "sqlite")
	sqlite, err := db.OpenSqlite(path)
	require.NoError(t, err)

	cleanup := func() {
		sqlite.Close()
	}
	return sqlite, cleanup
}
