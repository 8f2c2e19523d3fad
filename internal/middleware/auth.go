package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talent_messenger/internal/config"
	"talent_messenger/pkg/jwt"
	"talent_messenger/pkg/logger"
)

// ContextUserID is the gin context key carrying the authenticated actor.
const ContextUserID = "user_id"

type AuthMiddleware struct {
	jwtCfg config.JWTConfig
	log    logger.Logger
}

func NewAuthMiddleware(jwtCfg config.JWTConfig, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtCfg: jwtCfg,
		log:    log,
	}
}

// RequireAuth resolves the local actor from a bearer token. The store
// itself only ever sees the opaque user id.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(parts[1], m.jwtCfg.Secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// ActorID reads the authenticated user id set by RequireAuth.
func ActorID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}
