package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent_messenger/pkg/logger"
)

func TestFileMedium(t *testing.T) {
	ctx := context.Background()

	medium, err := NewFileMedium(t.TempDir(), logger.NewNop())
	require.NoError(t, err)

	t.Run("load missing record", func(t *testing.T) {
		_, ok, err := medium.Load(ctx, "conversations")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, medium.Save(ctx, "conversations", `{"version":1,"records":[]}`))

		payload, ok, err := medium.Load(ctx, "conversations")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, `{"version":1,"records":[]}`, payload)
	})

	t.Run("save replaces wholesale", func(t *testing.T) {
		require.NoError(t, medium.Save(ctx, "conversations", "second"))

		payload, ok, err := medium.Load(ctx, "conversations")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "second", payload)
	})
}

func TestFileMedium_NoTempLeftovers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	medium, err := NewFileMedium(dir, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, medium.Save(ctx, "messages", "payload"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "messages.json", entries[0].Name())
}
