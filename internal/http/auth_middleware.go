package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/domain"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/service"
)

const (
	currentUserKey = "current_user"

	// SessionCookieName transporta el token crudo de sesion.
	SessionCookieName = "auth_token"
)

// SessionAuthMiddleware resuelve la cookie de sesion a un usuario autenticado.
// Un error del store no corta la request: sigue como anonima y se loguea.
func SessionAuthMiddleware(logger *zap.Logger, sessions *service.SessionService, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrNoSession) {
				// Cookie vieja o forjada: se limpia para no revalidarla en cada request.
				clearSessionCookie(c, secureCookie)
			} else if logger != nil {
				logger.Error("session validation failed", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireAuth corta con 401 si el middleware de sesion no adjunto identidad.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser obtiene el usuario autenticado desde el contexto.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

func setSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(service.SessionTTL.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
