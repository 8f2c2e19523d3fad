package service

import (
	"talent_messenger/internal/config"
	"talent_messenger/internal/repository"
	"talent_messenger/pkg/logger"
)

type Services struct {
	Messaging MessagingService
	RateLimit RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log logger.Logger) *Services {
	services := &Services{
		Messaging: NewMessagingService(repos.Conversation, repos.Message, log),
	}

	if repos.RateLimit != nil {
		services.RateLimit = NewRateLimitService(repos.RateLimit, log)
		log.Info("RateLimit service initialized")
	}

	return services
}
