package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"video-poker-service/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextPlayerIDKey = "playerID"
	ContextAdminIDKey  = "adminID"
)

// Authenticator resolves a bearer token to a player or admin id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return required(auth, ContextPlayerIDKey)
}

// AdminAuthRequired guards operator routes. Player tokens are rejected.
func AdminAuthRequired(auth Authenticator) gin.HandlerFunc {
	return required(auth, ContextAdminIDKey)
}

func required(auth Authenticator, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		id, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, response.StatusOf(err), "invalid token")
			return
		}

		c.Set(key, id)
		c.Next()
	}
}

// PlayerID returns the id set by AuthRequired.
func PlayerID(c *gin.Context) int64 {
	return c.GetInt64(ContextPlayerIDKey)
}

// BearerToken reads the Authorization header, falling back to a token query
// parameter for websocket clients that cannot set headers.
func BearerToken(c *gin.Context) (string, error) {
	if token := strings.TrimSpace(c.Query("token")); token != "" {
		return token, nil
	}
	return extractBearerToken(c.GetHeader("Authorization"))
}

func extractBearerToken(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
