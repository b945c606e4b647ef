package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/wb-go/wbf/ginext"
)

const (
	// ContextUserID is set by Auth once the bearer token checks out.
	ContextUserID = "user_id"
)

type userGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth validates the bearer JWT and stores the subject's user id in the
// request context. Token issuance is the auth provider's job; this only
// verifies the shared-secret signature. Missing or invalid credentials
// abort with 401 before any side effect runs.
func Auth(secret string) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": "unauthorized: missing token"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": "unauthorized: invalid token"})
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": "unauthorized: invalid token"})
			return
		}

		c.Set(ContextUserID, sub)
		c.Next()
	}
}

// RequireAdmin resolves the authenticated user and rejects non-admins.
// Runs after Auth.
func RequireAdmin(users userGetter) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		userID := c.GetString(ContextUserID)

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": "unauthorized: unknown user"})
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, ginext.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
