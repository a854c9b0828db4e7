package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/services"
)

const (
	// SessionUserKey is the session value written on login.
	SessionUserKey = "user_id"
	// LegacySessionUserKey is the value name an older release wrote.
	// Sessions carrying it are still honored.
	LegacySessionUserKey = "uid"

	identityKey = "identity"
)

// Identity is the resolved caller attached to the request context.
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// IdentityResolver resolves the caller from, in order: the current
// session, the legacy session shape, and finally a bearer token. The
// first resolver that produces an identity wins; none of them aborts
// the request, that is RequireAuth's job.
func IdentityResolver(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident := resolveSession(c, authService); ident != nil {
			c.Set(identityKey, ident)
			c.Next()
			return
		}
		if ident := resolveLegacySession(c); ident != nil {
			c.Set(identityKey, ident)
			c.Next()
			return
		}
		if ident := resolveBearer(c, authService); ident != nil {
			c.Set(identityKey, ident)
		}
		c.Next()
	}
}

func resolveSession(c *gin.Context, authService services.AuthService) *Identity {
	session := sessions.Default(c)
	raw := session.Get(SessionUserKey)
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return nil
	}
	// Session ids are re-checked so a deleted or suspended user is
	// locked out without waiting for cookie expiry.
	user, err := authService.ResolveSessionUser(userID)
	if err != nil {
		return nil
	}
	return &Identity{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}
}

// resolveLegacySession accepts the bare user id an older release stored
// under "uid". The id is taken at face value without a store lookup,
// matching the prior behavior for cookies minted before the migration.
func resolveLegacySession(c *gin.Context) *Identity {
	session := sessions.Default(c)
	raw := session.Get(LegacySessionUserKey)
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return nil
	}
	return &Identity{UserID: userID}
}

func resolveBearer(c *gin.Context, authService services.AuthService) *Identity {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	user, err := authService.ResolveToken(token)
	if err != nil {
		return nil
	}
	return &Identity{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}
}

// RequireAuth aborts with 401 when no resolver produced an identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 for anonymous callers and 403 for
// authenticated non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !ident.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the resolved caller, or nil for anonymous requests.
func GetIdentity(c *gin.Context) *Identity {
	raw, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	ident, ok := raw.(*Identity)
	if !ok {
		return nil
	}
	return ident
}

// GetUserID returns the caller's user id, or "" when anonymous.
func GetUserID(c *gin.Context) string {
	if ident := GetIdentity(c); ident != nil {
		return ident.UserID
	}
	return ""
}
