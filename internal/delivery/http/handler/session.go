package handler

import (
	"net/http"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	"github.com/MohdOwais22/subaku-backend/internal/middleware"
	userUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/user"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// sessionCookies writes and clears the "token" cookie.
type sessionCookies struct {
	expire     time.Duration
	production bool
}

func newSessionCookies(cfg *config.Config) sessionCookies {
	return sessionCookies{
		expire:     time.Duration(cfg.Cookie.ExpireDays) * 24 * time.Hour,
		production: cfg.Server.IsProduction(),
	}
}

func (s sessionCookies) cookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// send sets the session cookie and echoes the token in the body.
func (s sessionCookies) send(c *gin.Context, status int, auth *userUsecase.AuthResponse) {
	cookie := s.cookie(auth.Token, time.Now().Add(s.expire))
	cookie.MaxAge = int(s.expire.Seconds())
	http.SetCookie(c.Writer, cookie)

	utils.SuccessResponse(c, status, gin.H{
		"user":  auth.User,
		"token": auth.Token,
	})
}

func (s sessionCookies) clear(c *gin.Context) {
	cookie := s.cookie("", time.Now())
	cookie.MaxAge = -1
	http.SetCookie(c.Writer, cookie)
}
