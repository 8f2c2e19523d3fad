package repository

import (
	"context"

	"talent_messenger/internal/domain"
	"talent_messenger/internal/store"
	"talent_messenger/pkg/logger"
)

// ConversationRepository owns the conversation collection. Every mutation
// is a full read-modify-write of the collection through the medium;
// "not found" comes back as a bool, never an error.
type ConversationRepository interface {
	ListAll(ctx context.Context) ([]domain.Conversation, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Conversation, error)
	GetByID(ctx context.Context, id string) (*domain.Conversation, bool, error)
	FindByParticipants(ctx context.Context, userA, userB string) (*domain.Conversation, bool, error)
	Create(ctx context.Context, conversation domain.Conversation) error
	Update(ctx context.Context, conversation domain.Conversation) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type conversationRepository struct {
	medium store.Medium
	log    logger.Logger
}

func NewConversationRepository(medium store.Medium, log logger.Logger) ConversationRepository {
	return &conversationRepository{medium: medium, log: log}
}

func (r *conversationRepository) ListAll(ctx context.Context) ([]domain.Conversation, error) {
	return store.LoadAll[domain.Conversation](ctx, r.medium, store.CollectionConversations)
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	conversations := make([]domain.Conversation, 0, len(all))
	for _, conversation := range all {
		if conversation.HasParticipant(userID) {
			conversations = append(conversations, conversation)
		}
	}

	return conversations, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, bool, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, false, err
	}

	for i := range all {
		if all[i].ID == id {
			return &all[i], true, nil
		}
	}

	return nil, false, nil
}

// FindByParticipants searches the global collection, not one user's view,
// so a pair can never end up with duplicate conversation records.
func (r *conversationRepository) FindByParticipants(ctx context.Context, userA, userB string) (*domain.Conversation, bool, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, false, err
	}

	for i := range all {
		if all[i].IsBetween(userA, userB) {
			return &all[i], true, nil
		}
	}

	return nil, false, nil
}

func (r *conversationRepository) Create(ctx context.Context, conversation domain.Conversation) error {
	all, err := r.ListAll(ctx)
	if err != nil {
		return err
	}

	all = append(all, conversation)

	if err := store.SaveAll(ctx, r.medium, store.CollectionConversations, all); err != nil {
		r.log.Error("Failed to persist conversation", "conversation_id", conversation.ID, "error", err)
		return err
	}

	return nil
}

func (r *conversationRepository) Update(ctx context.Context, conversation domain.Conversation) (bool, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for i := range all {
		if all[i].ID == conversation.ID {
			all[i] = conversation
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	if err := store.SaveAll(ctx, r.medium, store.CollectionConversations, all); err != nil {
		r.log.Error("Failed to update conversation", "conversation_id", conversation.ID, "error", err)
		return false, err
	}

	return true, nil
}

func (r *conversationRepository) Delete(ctx context.Context, id string) (bool, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return false, err
	}

	remaining := make([]domain.Conversation, 0, len(all))
	found := false
	for _, conversation := range all {
		if conversation.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, conversation)
	}
	if !found {
		return false, nil
	}

	if err := store.SaveAll(ctx, r.medium, store.CollectionConversations, remaining); err != nil {
		r.log.Error("Failed to delete conversation", "conversation_id", id, "error", err)
		return false, err
	}

	return true, nil
}
