package handler

import (
	"talent_messenger/internal/config"
	"talent_messenger/internal/service"
	"talent_messenger/pkg/logger"
)

type Handlers struct {
	Health       *HealthHandler
	Conversation *ConversationHandler
	Message      *MessageHandler
}

func NewHandlers(services *service.Services, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(cfg),
		Conversation: NewConversationHandler(services.Messaging, log),
		Message:      NewMessageHandler(services.Messaging, log),
	}
}
