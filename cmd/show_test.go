package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/yomikazu/internal/kv"
	"github.com/brogergvhs/yomikazu/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAndDeleteOfUnknownNovelWriteNothing(t *testing.T) {
	db := filepath.Join(t.TempDir(), "progress.json")

	err := run(t, "show", "--ignore-config", "--storage-path", db, "typo-id")
	assert.ErrorIs(t, err, progress.ErrNotFound)

	err = run(t, "delete", "--ignore-config", "--storage-path", db, "other-typo", "5")
	assert.ErrorIs(t, err, progress.ErrNotFound)

	require.NoError(t, run(t, "list", "--ignore-config", "--storage-path", db))

	store, err := kv.NewFile(db)
	require.NoError(t, err)
	defer store.Close()

	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
