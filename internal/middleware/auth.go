package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	SessionCookie = "token"

	ContextUserID   = "userID"
	ContextUserName = "userName"
	ContextRole     = "role"
)

type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

type UserLoader interface {
	Me(ctx context.Context, userID string) (*domainUser.User, error)
}

// AuthMiddleware accepts the session cookie or a Bearer header. The user is
// reloaded on every request so role changes and deletions apply immediately.
func AuthMiddleware(verifier TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.Me(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, domainUser.ErrUserNotFound) {
				logger.Error("Failed to load session user",
					zap.String("request_id", GetRequestID(c)),
					zap.String("user_id", claims.UserID),
					zap.Error(err),
				)
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserName, user.Name)
		c.Set(ContextRole, user.Role)

		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetUserID returns the authenticated user id, or "" on public routes.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func GetUserName(c *gin.Context) string {
	return c.GetString(ContextUserName)
}
