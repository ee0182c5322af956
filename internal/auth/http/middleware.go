package http

import (
	"net/http"
	"strings"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/auth/domain"
	"github.com/gin-gonic/gin"
)

const (
	userKey  = "auth.user"
	tokenKey = "auth.token"
)

// RequireAuth resolves the bearer token to a user and aborts with 401
// when the session is missing or expired.
func RequireAuth(svc *app.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		user, ok, err := svc.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "INTERNAL",
				"message": "could not resolve session",
			})
			return
		}
		if !ok {
			abortUnauthorized(c)
			return
		}

		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "UNAUTHENTICATED",
		"message": "a valid session is required",
	})
}

// UserFrom returns the authenticated user set by RequireAuth.
func UserFrom(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}

// TokenFrom returns the session token set by RequireAuth.
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}
