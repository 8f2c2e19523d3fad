package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent_messenger/internal/domain"
	"talent_messenger/internal/repository"
	"talent_messenger/internal/store"
	apperrors "talent_messenger/pkg/errors"
	"talent_messenger/pkg/logger"
)

func newMessagingService(t *testing.T) MessagingService {
	t.Helper()
	medium := store.NewMemoryMedium()
	log := logger.NewNop()
	return NewMessagingService(
		repository.NewConversationRepository(medium, log),
		repository.NewMessageRepository(medium, log),
		log,
	)
}

func TestGetOrCreateConversation(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(t)

	t.Run("rejects degenerate pairs", func(t *testing.T) {
		_, err := svc.GetOrCreateConversation(ctx, "u1", "u1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidParticipants)

		_, err = svc.GetOrCreateConversation(ctx, "u1", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidParticipants)

		conversations, err := svc.ListConversations(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, conversations, "rejected pairs must never be stored")
	})

	t.Run("idempotent per unordered pair", func(t *testing.T) {
		first, err := svc.GetOrCreateConversation(ctx, "u1", "u2")
		require.NoError(t, err)

		// same pair, either caller's perspective
		second, err := svc.GetOrCreateConversation(ctx, "u2", "u1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		all, err := svc.ListConversations(ctx, "u1")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("new conversation starts empty", func(t *testing.T) {
		conv, err := svc.GetOrCreateConversation(ctx, "u5", "u6")
		require.NoError(t, err)
		assert.Empty(t, conv.LastMessage)
		assert.Empty(t, conv.UnreadBy)
		assert.Zero(t, conv.UnreadCount)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(t)

	conv, err := svc.GetOrCreateConversation(ctx, "u1", "u2")
	require.NoError(t, err)

	t.Run("unknown conversation", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, "no-such-id", "u1", "u2", "x")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("sender and receiver must be the pair", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, conv.ID, "u1", "u9", "x")
		assert.ErrorIs(t, err, apperrors.ErrInvalidParticipants)

		_, err = svc.SendMessage(ctx, conv.ID, "u1", "u1", "x")
		assert.ErrorIs(t, err, apperrors.ErrInvalidParticipants)
	})

	t.Run("append updates the conversation summary", func(t *testing.T) {
		msg, err := svc.SendMessage(ctx, conv.ID, "u1", "u2", "x")
		require.NoError(t, err)
		assert.Equal(t, "u2", msg.ReceiverID)
		assert.False(t, msg.Read)

		messages, err := svc.ListMessages(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, msg.ID, messages[0].ID)

		updated, err := svc.ListConversations(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, updated, 1)
		assert.Equal(t, "x", updated[0].LastMessage)
		assert.Equal(t, "u2", updated[0].UnreadBy)
		assert.Equal(t, 1, updated[0].UnreadCount)
		assert.False(t, updated[0].LastMessageAt.IsZero())
	})
}

func TestUnreadPointer(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(t)

	conv, err := svc.GetOrCreateConversation(ctx, "a", "b")
	require.NoError(t, err)

	get := func() domain.Conversation {
		t.Helper()
		list, err := svc.ListConversations(ctx, "a")
		require.NoError(t, err)
		require.Len(t, list, 1)
		return list[0]
	}

	t.Run("accumulates for the same pending reader", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := svc.SendMessage(ctx, conv.ID, "a", "b", "ping")
			require.NoError(t, err)
		}
		c := get()
		assert.Equal(t, "b", c.UnreadBy)
		assert.Equal(t, 3, c.UnreadCount)
	})

	t.Run("resets when the direction flips", func(t *testing.T) {
		_, err := svc.SendMessage(ctx, conv.ID, "b", "a", "pong")
		require.NoError(t, err)

		c := get()
		assert.Equal(t, "a", c.UnreadBy)
		assert.Equal(t, 1, c.UnreadCount, "b's pending count is forgotten, the slot now tracks a")
	})

	t.Run("only the pending reader can clear the pointer", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(ctx, conv.ID, "b"))

		c := get()
		assert.Equal(t, "a", c.UnreadBy)
		assert.Equal(t, 1, c.UnreadCount)
	})

	t.Run("mark read clears and stays cleared", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(ctx, conv.ID, "a"))

		c := get()
		assert.Empty(t, c.UnreadBy)
		assert.Zero(t, c.UnreadCount)

		// idempotent
		require.NoError(t, svc.MarkRead(ctx, conv.ID, "a"))
		c = get()
		assert.Empty(t, c.UnreadBy)
		assert.Zero(t, c.UnreadCount)
	})

	t.Run("mark read flips message flags for the reader only", func(t *testing.T) {
		messages, err := svc.ListMessages(ctx, conv.ID)
		require.NoError(t, err)
		for _, m := range messages {
			if m.ReceiverID == "a" {
				assert.True(t, m.Read)
			}
		}
	})

	t.Run("unknown conversation is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.MarkRead(ctx, "no-such-id", "a"))
	})
}

func TestGetUnreadCount(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(t)

	c1, err := svc.GetOrCreateConversation(ctx, "me", "u1")
	require.NoError(t, err)
	c2, err := svc.GetOrCreateConversation(ctx, "me", "u2")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, c1.ID, "u1", "me", "one")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, c1.ID, "u1", "me", "two")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, c2.ID, "u2", "me", "three")
	require.NoError(t, err)
	// pending for u1, must not count toward me
	_, err = svc.SendMessage(ctx, c2.ID, "me", "u2", "reply")
	require.NoError(t, err)

	count, err := svc.GetUnreadCount(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.GetUnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteMessage_RecomputesSummary(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(t)

	conv, err := svc.GetOrCreateConversation(ctx, "u1", "u2")
	require.NoError(t, err)

	first, err := svc.SendMessage(ctx, conv.ID, "u1", "u2", "first")
	require.NoError(t, err)
	last, err := svc.SendMessage(ctx, conv.ID, "u1", "u2", "last")
	require.NoError(t, err)

	t.Run("unknown id", func(t *testing.T) {
		deleted, err := svc.DeleteMessage(ctx, "no-such-id")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("deleting the newest message rolls the summary back", func(t *testing.T) {
		deleted, err := svc.DeleteMessage(ctx, last.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		list, err := svc.ListConversations(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "first", list[0].LastMessage)
		assert.Equal(t, "u2", list[0].UnreadBy)
		assert.Equal(t, 1, list[0].UnreadCount)
	})

	t.Run("deleting the final message empties the summary", func(t *testing.T) {
		deleted, err := svc.DeleteMessage(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		list, err := svc.ListConversations(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Empty(t, list[0].LastMessage)
		assert.True(t, list[0].LastMessageAt.IsZero())
		assert.Empty(t, list[0].UnreadBy)
		assert.Zero(t, list[0].UnreadCount)
	})
}

func TestDeleteConversation_Cascades(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(t)

	conv, err := svc.GetOrCreateConversation(ctx, "u1", "u2")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, conv.ID, "u1", "u2", "one")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, conv.ID, "u2", "u1", "two")
	require.NoError(t, err)

	deleted, err := svc.DeleteConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	messages, err := svc.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages, "cascade must leave no orphaned messages")

	conversations, err := svc.ListConversations(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, conversations)

	deleted, err = svc.DeleteConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// End-to-end walk through the u1/u2 exchange.
func TestMessagingScenario(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(t)

	conv, err := svc.GetOrCreateConversation(ctx, "u1", "u2")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, conv.ID, "u1", "u2", "Hello")
	require.NoError(t, err)

	forU2, err := svc.ListConversations(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, forU2, 1)
	assert.Equal(t, conv.ID, forU2[0].ID)
	assert.Equal(t, "Hello", forU2[0].LastMessage)
	assert.Equal(t, "u2", forU2[0].UnreadBy)
	assert.Equal(t, 1, forU2[0].UnreadCount)

	require.NoError(t, svc.MarkRead(ctx, conv.ID, "u2"))
	count, err := svc.GetUnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, count)

	for i := 0; i < 3; i++ {
		_, err = svc.SendMessage(ctx, conv.ID, "u2", "u1", "reply")
		require.NoError(t, err)
	}

	forU1, err := svc.ListConversations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, forU1, 1)
	assert.Equal(t, "u1", forU1[0].UnreadBy)
	assert.Equal(t, 3, forU1[0].UnreadCount)

	deleted, err := svc.DeleteConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	messages, err := svc.ListMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
