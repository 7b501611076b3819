package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
	// ContextUserID is the key used to store the authenticated user's ID.
	ContextUserID = "userID"

	// accessTokenQuery carries the token for clients that cannot set headers, such as browser websockets.
	accessTokenQuery = "access_token"
)

// Authoriz rejects requests without a valid access token and stores the
// token's claims and user ID in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		claims, err := ts.Decode(token)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		rawID, _ := claims["userID"].(string)
		userID, err := uuid.Parse(rawID)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the ID stored by Authoriz.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// extractToken reads a Bearer Authorization header, falling back to the
// access_token query parameter.
func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		token := c.Query(accessTokenQuery)
		return token, token != ""
	}

	// Split the "Bearer" prefix from the token.
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
