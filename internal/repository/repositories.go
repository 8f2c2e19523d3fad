package repository

import (
	"github.com/redis/go-redis/v9"

	"talent_messenger/internal/store"
	"talent_messenger/pkg/logger"
)

type Repositories struct {
	Conversation ConversationRepository
	Message      MessageRepository
	RateLimit    RateLimitRepository
}

// NewRepositories wires the directory and ledger over the configured
// medium. The rate limiter needs redis and stays nil without it.
func NewRepositories(medium store.Medium, rdb *redis.Client, log logger.Logger) *Repositories {
	repos := &Repositories{
		Conversation: NewConversationRepository(medium, log),
		Message:      NewMessageRepository(medium, log),
	}

	if rdb != nil {
		repos.RateLimit = NewRateLimitRepository(rdb, log)
		log.Info("RateLimit repository initialized")
	} else {
		log.Warn("Redis not configured, rate limiting disabled")
	}

	return repos
}
