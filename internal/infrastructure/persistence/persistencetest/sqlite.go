// Package persistencetest opens throwaway ledger databases for tests.
package persistencetest

import (
	"context"
	"testing"

	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/paperfi/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// NewSQLite returns a migrated in-memory SQLite database closed at test end
func NewSQLite(t testing.TB) *persistence.Database {
	t.Helper()
	db, err := persistence.NewDatabase(
		&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		persistence.Options{Logger: zaptest.NewLogger(t)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })
	return db
}
