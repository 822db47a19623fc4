package middleware

import (
	"net/http"
	"strings"

	"founderhub/internal/utils"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionVerifier turns a bearer token into the session it stands for
type SessionVerifier interface {
	Verify(raw string) (*utils.SessionClaims, error)
}

// RequireSession rejects requests without a valid bearer session with 401.
// The verified claims are kept on the gin context for the rest of the chain.
func RequireSession(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		raw, ok := bearerToken(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(sessionKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != "" && !strings.ContainsAny(token, " \t")
}

// Session returns the claims RequireSession verified for this request
func Session(c *gin.Context) (*utils.SessionClaims, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.SessionClaims)
	return claims, ok && claims != nil
}

// AuthUserID is the account id of the current session, if any
func AuthUserID(c *gin.Context) (string, bool) {
	claims, ok := Session(c)
	if !ok || claims.UserID() == "" {
		return "", false
	}
	return claims.UserID(), true
}
