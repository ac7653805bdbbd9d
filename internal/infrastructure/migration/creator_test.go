package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add vault index", "add_vault_index"},
		{"Add-Vault-Index", "add_vault_index"},
		{"add__vault__index", "add_vault_index"},
		{"   spaces   ", "spaces"},
		{"fee!@#$change", "feechange"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreate_NumbersAfterExisting(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := Create(dir, "ledger schema", "initial tables", now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_ledger_schema.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_ledger_schema.down.sql"), first.DownPath)

	second, err := Create(dir, "badge index", "", now)
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- Migration: ledger_schema")
	assert.Contains(t, string(content), "-- Created: 2026-03-01")
	assert.Contains(t, string(content), "-- Description: initial tables")
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	_, err := Create(t.TempDir(), "!!!", "", time.Now())
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		files, err := List(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("orders by version and skips strays", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000010_later.up.sql",
			"000010_later.down.sql",
			"000002_early.up.sql",
			"000002_early.down.sql",
			"README.md",
			"notes.up.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

		files, err := List(dir)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, uint(2), files[0].Version)
		assert.Equal(t, "early", files[0].Name)
		assert.Equal(t, uint(10), files[1].Version)
	})
}

func TestRepositoryMigrationsAreListed(t *testing.T) {
	files, err := List(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, uint(1), files[0].Version)
	for _, f := range files {
		_, err := os.Stat(f.DownPath)
		assert.NoError(t, err, "missing rollback for %s", f.UpPath)
	}
}
