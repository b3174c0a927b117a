package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxPrincipalUID   = "principal_uid"
	CtxPrincipalEmail = "principal_email"
	CtxPrincipalName  = "principal_name"
	CtxPrincipalPhoto = "principal_photo"
)

// RequireAuth validates the bearer credential on every request and stores
// the verified identity in the Gin context. Requests without a valid,
// email-bearing identity never reach a handler.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}
		if id.Email == "" {
			// Every ownership check keys off the principal email.
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "token has no email identity"})
			c.Abort()
			return
		}

		c.Set(CtxPrincipalUID, id.UID)
		c.Set(CtxPrincipalEmail, id.Email)
		c.Set(CtxPrincipalName, id.Name)
		c.Set(CtxPrincipalPhoto, id.PhotoURL)

		c.Next()
	}
}

// PrincipalEmail extracts the verified principal email from the Gin context.
// This is set by RequireAuth.
func PrincipalEmail(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxPrincipalEmail))
}

func PrincipalName(c *gin.Context) string {
	return c.GetString(CtxPrincipalName)
}

func PrincipalPhoto(c *gin.Context) string {
	return c.GetString(CtxPrincipalPhoto)
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
