// Package identity guards the protected API routes with scoped bearer tokens.
package identity

import (
	"net/http"
	"slices"
	"strings"

	"github.com/beka-birhanu/vinom-mouse/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextClaims is the key used to store token claims in the Gin context.
	ContextClaims = "claims"
	// ContextViewer is the key used to store the token subject in the Gin context.
	ContextViewer = "viewer"

	// ScopeClaim holds the space separated scopes a token was issued for.
	ScopeClaim = "scope"
	// ScopeJourney grants access to recorded journeys.
	ScopeJourney = "journey"
)

// Authorize admits requests carrying a valid "Bearer <token>" Authorization
// header whose token was issued for scope. Missing or invalid tokens get 401,
// tokens lacking the scope get 403.
func Authorize(ts i.Tokenizer, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := ts.Decode(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if !HasScope(claims, scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token lacks scope " + scope})
			return
		}

		c.Set(ContextClaims, claims)
		if sub, ok := claims["sub"].(string); ok {
			c.Set(ContextViewer, sub)
		}
		c.Next()
	}
}

// HasScope reports whether the scope claim lists scope.
func HasScope(claims map[string]any, scope string) bool {
	granted, _ := claims[ScopeClaim].(string)
	return slices.Contains(strings.Fields(granted), scope)
}

func bearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
