package service

import (
	"context"
	"sync"
	"time"

	"talent_messenger/internal/domain"
	"talent_messenger/internal/repository"
	apperrors "talent_messenger/pkg/errors"
	"talent_messenger/pkg/logger"
)

// MessagingService is the public contract of the conversation store:
// two reads, the unread badge, and four mutations.
type MessagingService interface {
	ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error)
	GetOrCreateConversation(ctx context.Context, userA, userB string) (*domain.Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderID, receiverID, content string) (*domain.Message, error)
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, userID string) error
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	DeleteMessage(ctx context.Context, messageID string) (bool, error)
	DeleteConversation(ctx context.Context, conversationID string) (bool, error)
}

type messagingService struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	log              logger.Logger

	// The store is a single-writer record store: every mutation rewrites a
	// whole collection, so concurrent handlers in this process must be
	// serialized. Writers in other processes sharing the same medium still
	// race; that is part of the contract, not something to fix here.
	mu sync.Mutex
}

func NewMessagingService(conversationRepo repository.ConversationRepository, messageRepo repository.MessageRepository, log logger.Logger) MessagingService {
	return &messagingService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		log:              log,
	}
}

func (s *messagingService) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return s.conversationRepo.ListForUser(ctx, userID)
}

func (s *messagingService) GetOrCreateConversation(ctx context.Context, userA, userB string) (*domain.Conversation, error) {
	if userA == "" || userB == "" || userA == userB {
		return nil, apperrors.ErrInvalidParticipants
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found, err := s.conversationRepo.FindByParticipants(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	conversation := domain.NewConversation(userA, userB)
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	s.log.Info("Conversation created", "conversation_id", conversation.ID)
	return &conversation, nil
}

func (s *messagingService) SendMessage(ctx context.Context, conversationID, senderID, receiverID, content string) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, found, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	if senderID == receiverID || !conversation.IsBetween(senderID, receiverID) {
		return nil, apperrors.ErrInvalidParticipants
	}

	message := domain.NewMessage(conversationID, senderID, receiverID, content)
	if err := s.messageRepo.Append(ctx, message); err != nil {
		return nil, err
	}

	conversation.LastMessage = message.Content
	conversation.LastMessageAt = message.Timestamp
	applyUnreadOnSend(conversation, receiverID)

	if _, err := s.conversationRepo.Update(ctx, *conversation); err != nil {
		// the message is persisted but the summary is not; report the
		// failure rather than pretend the send went through
		s.log.Error("Failed to update conversation after send", "conversation_id", conversationID, "error", err)
		return nil, err
	}

	return &message, nil
}

// applyUnreadOnSend maintains the single-slot unread pointer: unread
// accumulates while the same participant stays behind, and resets to 1
// when the message direction flips to the other side.
func applyUnreadOnSend(conversation *domain.Conversation, receiverID string) {
	if conversation.UnreadBy == receiverID {
		conversation.UnreadCount++
		return
	}
	conversation.UnreadBy = receiverID
	conversation.UnreadCount = 1
}

func (s *messagingService) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	return s.messageRepo.ListForConversation(ctx, conversationID)
}

// MarkRead clears the unread pointer only when it names the reading user;
// one participant cannot clear the other's pointer. Idempotent.
func (s *messagingService) MarkRead(ctx context.Context, conversationID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.messageRepo.MarkRead(ctx, conversationID, userID); err != nil {
		return err
	}

	conversation, found, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !found || conversation.UnreadBy != userID {
		return nil
	}

	conversation.UnreadBy = ""
	conversation.UnreadCount = 0
	_, err = s.conversationRepo.Update(ctx, *conversation)
	return err
}

func (s *messagingService) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	conversations, err := s.conversationRepo.ListForUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, conversation := range conversations {
		if conversation.UnreadBy == userID {
			total += conversation.UnreadCount
		}
	}

	return total, nil
}

func (s *messagingService) DeleteMessage(ctx context.Context, messageID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, found, err := s.messageRepo.DeleteByID(ctx, messageID)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	if err := s.recomputeConversation(ctx, deleted.ConversationID); err != nil {
		return false, err
	}

	return true, nil
}

// recomputeConversation rebuilds the denormalized summary from the
// surviving messages so last_message and the unread pointer never name
// data that no longer exists.
func (s *messagingService) recomputeConversation(ctx context.Context, conversationID string) error {
	conversation, found, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	messages, err := s.messageRepo.ListForConversation(ctx, conversationID)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		conversation.LastMessage = ""
		conversation.LastMessageAt = time.Time{}
	} else {
		last := messages[len(messages)-1]
		conversation.LastMessage = last.Content
		conversation.LastMessageAt = last.Timestamp
	}

	if conversation.UnreadBy != "" {
		unread := 0
		for _, message := range messages {
			if message.ReceiverID == conversation.UnreadBy && !message.Read {
				unread++
			}
		}
		conversation.UnreadCount = unread
		if unread == 0 {
			conversation.UnreadBy = ""
		}
	}

	_, err = s.conversationRepo.Update(ctx, *conversation)
	return err
}

func (s *messagingService) DeleteConversation(ctx context.Context, conversationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.conversationRepo.Delete(ctx, conversationID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	removed, err := s.messageRepo.DeleteByConversation(ctx, conversationID)
	if err != nil {
		return false, err
	}

	s.log.Info("Conversation deleted", "conversation_id", conversationID, "messages_removed", removed)
	return true, nil
}
