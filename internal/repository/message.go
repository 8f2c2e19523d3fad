package repository

import (
	"context"

	"talent_messenger/internal/domain"
	"talent_messenger/internal/store"
	"talent_messenger/pkg/logger"
)

// MessageRepository owns the message collection. Messages are append-only
// except for the read flag; stored order is insertion order, which is
// chronological because timestamps are assigned at append time.
type MessageRepository interface {
	ListForConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
	Append(ctx context.Context, message domain.Message) error
	MarkRead(ctx context.Context, conversationID, userID string) error
	DeleteByID(ctx context.Context, messageID string) (*domain.Message, bool, error)
	DeleteByConversation(ctx context.Context, conversationID string) (int, error)
}

type messageRepository struct {
	medium store.Medium
	log    logger.Logger
}

func NewMessageRepository(medium store.Medium, log logger.Logger) MessageRepository {
	return &messageRepository{medium: medium, log: log}
}

func (r *messageRepository) listAll(ctx context.Context) ([]domain.Message, error) {
	return store.LoadAll[domain.Message](ctx, r.medium, store.CollectionMessages)
}

func (r *messageRepository) saveAll(ctx context.Context, messages []domain.Message) error {
	return store.SaveAll(ctx, r.medium, store.CollectionMessages, messages)
}

func (r *messageRepository) ListForConversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	all, err := r.listAll(ctx)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(all))
	for _, message := range all {
		if message.ConversationID == conversationID {
			messages = append(messages, message)
		}
	}

	return messages, nil
}

func (r *messageRepository) Append(ctx context.Context, message domain.Message) error {
	all, err := r.listAll(ctx)
	if err != nil {
		return err
	}

	all = append(all, message)

	if err := r.saveAll(ctx, all); err != nil {
		r.log.Error("Failed to persist message", "message_id", message.ID, "error", err)
		return err
	}

	return nil
}

// MarkRead flips the read flag on every message in the conversation
// addressed to userID. Re-invoking is a no-op.
func (r *messageRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	all, err := r.listAll(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range all {
		if all[i].ConversationID == conversationID && all[i].ReceiverID == userID && !all[i].Read {
			all[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}

	return r.saveAll(ctx, all)
}

func (r *messageRepository) DeleteByID(ctx context.Context, messageID string) (*domain.Message, bool, error) {
	all, err := r.listAll(ctx)
	if err != nil {
		return nil, false, err
	}

	var deleted *domain.Message
	remaining := make([]domain.Message, 0, len(all))
	for _, message := range all {
		if message.ID == messageID && deleted == nil {
			m := message
			deleted = &m
			continue
		}
		remaining = append(remaining, message)
	}
	if deleted == nil {
		return nil, false, nil
	}

	if err := r.saveAll(ctx, remaining); err != nil {
		r.log.Error("Failed to delete message", "message_id", messageID, "error", err)
		return nil, false, err
	}

	return deleted, true, nil
}

func (r *messageRepository) DeleteByConversation(ctx context.Context, conversationID string) (int, error) {
	all, err := r.listAll(ctx)
	if err != nil {
		return 0, err
	}

	remaining := make([]domain.Message, 0, len(all))
	removed := 0
	for _, message := range all {
		if message.ConversationID == conversationID {
			removed++
			continue
		}
		remaining = append(remaining, message)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := r.saveAll(ctx, remaining); err != nil {
		r.log.Error("Failed to cascade-delete messages", "conversation_id", conversationID, "error", err)
		return 0, err
	}

	return removed, nil
}
