package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is append-only: after creation only the Read flag may change,
// and only from false to true.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
}

func NewMessage(conversationID, senderID, receiverID, content string) Message {
	return Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		Timestamp:      time.Now(),
		Read:           false,
	}
}
