package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation pairs exactly two participants and carries a denormalized
// summary of their exchange: the last message and a single-slot unread
// pointer. UnreadBy names the one participant with pending messages;
// an empty UnreadBy means no one is behind.
type Conversation struct {
	ID            string    `json:"id"`
	Participants  [2]string `json:"participants"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
	UnreadBy      string    `json:"unread_by"`
}

func NewConversation(userA, userB string) Conversation {
	return Conversation{
		ID:           uuid.NewString(),
		Participants: [2]string{userA, userB},
	}
}

func (c Conversation) HasParticipant(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// IsBetween compares the participant pair ignoring order.
func (c Conversation) IsBetween(userA, userB string) bool {
	return (c.Participants[0] == userA && c.Participants[1] == userB) ||
		(c.Participants[0] == userB && c.Participants[1] == userA)
}

func (c Conversation) OtherParticipant(userID string) string {
	if c.Participants[0] == userID {
		return c.Participants[1]
	}
	return c.Participants[0]
}
