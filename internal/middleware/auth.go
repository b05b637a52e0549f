// File: internal/middleware/auth.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homequest_backend/internal/common"
	"homequest_backend/internal/identity"
)

const (
	// IdentityKey is the context key for storing the authenticated identity.
	IdentityKey = "identity"
)

// AuthMiddleware creates a Gin middleware that resolves the bearer
// credential to an identity. Identity failures short-circuit before any
// profile or catalog access.
func AuthMiddleware(verifier identity.Verifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := verifier.Verify(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("Credential verification failed", zap.Error(err))
			if _, ok := common.IsAPIError(err); ok {
				common.RespondWithError(c, err)
			} else {
				common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Credential could not be verified."))
			}
			return
		}

		c.Set(IdentityKey, ident)

		logger.Debug("Caller authenticated",
			zap.String("userID", ident.ID),
			zap.String("email", ident.Email),
		)

		c.Next()
	}
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin
// context. Returns nil when the auth middleware did not run or failed.
func GetIdentityFromContext(c *gin.Context) *identity.Identity {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	ident, ok := val.(*identity.Identity)
	if !ok {
		return nil
	}
	return ident
}
