package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent_messenger/internal/domain"
	apperrors "talent_messenger/pkg/errors"
)

func TestLoadAll_Bootstrap(t *testing.T) {
	ctx := context.Background()
	medium := NewMemoryMedium()

	records, err := LoadAll[domain.Conversation](ctx, medium, CollectionConversations)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveAllLoadAll_RoundTrip(t *testing.T) {
	ctx := context.Background()
	medium := NewMemoryMedium()

	original := []domain.Conversation{
		domain.NewConversation("u1", "u2"),
		domain.NewConversation("u1", "u3"),
	}
	original[0].LastMessage = "hey"
	original[0].UnreadBy = "u2"
	original[0].UnreadCount = 2

	require.NoError(t, SaveAll(ctx, medium, CollectionConversations, original))

	loaded, err := LoadAll[domain.Conversation](ctx, medium, CollectionConversations)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	// saving what was loaded must be the identity
	require.NoError(t, SaveAll(ctx, medium, CollectionConversations, loaded))
	again, err := LoadAll[domain.Conversation](ctx, medium, CollectionConversations)
	require.NoError(t, err)
	assert.Equal(t, loaded, again)
}

func TestLoadAll_LegacyBareArray(t *testing.T) {
	ctx := context.Background()
	medium := NewMemoryMedium()

	legacy := `[{"id":"m1","conversation_id":"c1","sender_id":"u1","receiver_id":"u2","content":"old","timestamp":"2024-01-01T00:00:00Z","read":false}]`
	require.NoError(t, medium.Save(ctx, CollectionMessages, legacy))

	messages, err := LoadAll[domain.Message](ctx, medium, CollectionMessages)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)

	// the next save upgrades the payload to the envelope format
	require.NoError(t, SaveAll(ctx, medium, CollectionMessages, messages))
	payload, ok, err := medium.Load(ctx, CollectionMessages)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, payload, `"version":1`)
}

func TestLoadAll_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	medium := NewMemoryMedium()

	require.NoError(t, medium.Save(ctx, CollectionConversations, "{not json"))

	_, err := LoadAll[domain.Conversation](ctx, medium, CollectionConversations)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCorruptStore))
}

func TestLoadAll_UnsupportedVersion(t *testing.T) {
	ctx := context.Background()
	medium := NewMemoryMedium()

	require.NoError(t, medium.Save(ctx, CollectionConversations, `{"version":99,"records":[]}`))

	_, err := LoadAll[domain.Conversation](ctx, medium, CollectionConversations)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCorruptStore))
}
