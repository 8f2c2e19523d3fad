package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talent_messenger/internal/config"
)

type HealthHandler struct {
	mediumDriver string
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		mediumDriver: cfg.Medium.Driver,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "talent-messenger",
		"medium":  h.mediumDriver,
	})
}
