package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lovemining/backend/internal/profile"
)

const profileKey = "auth.profile"

// ProfileLookup resolves a profile by email for authentication
type ProfileLookup interface {
	GetByEmail(ctx context.Context, email string) (*profile.Profile, error)
}

// Middleware authenticates requests with HTTP basic auth against the profile
// store. The resolved profile is stashed on the gin context.
func Middleware(profiles ProfileLookup, hasher *Hasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="lovemining"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		p, err := profiles.GetByEmail(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
			return
		}
		if p == nil || !hasher.Compare(p.Password, password) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.Set(profileKey, p)
		c.Next()
	}
}

// CurrentProfile returns the authenticated profile stashed by Middleware
func CurrentProfile(c *gin.Context) *profile.Profile {
	if v, ok := c.Get(profileKey); ok {
		if p, ok := v.(*profile.Profile); ok {
			return p
		}
	}
	return nil
}

// RequireUser blocks admin accounts from user-only endpoints
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentProfile(c)
		if p == nil || p.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admins cannot use this endpoint"})
			return
		}
		c.Next()
	}
}

// RequireAdmin blocks non-admin accounts from admin endpoints
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentProfile(c)
		if p == nil || !p.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
