package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"antika-pos/config"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated SQLite database in a temp dir, closed on cleanup
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { _ = config.Close(db) })
	return db
}

// Logger discards everything
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
