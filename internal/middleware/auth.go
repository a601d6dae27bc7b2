package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"market-helper-be/internal/apperror"
	"market-helper-be/internal/models"
	"market-helper-be/internal/service"
)

// Context keys for the authenticated identity
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// AuthMiddleware resolves the request's bearer token through the session
// service and attaches the minimal user identity to the context. The token is
// read from the Authorization header (Bearer scheme) or, failing that, from
// the auth_token header the original clients send.
func AuthMiddleware(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := sessions.Authenticate(extractToken(c))
		if err != nil {
			appErr := apperror.From(err)
			if appErr.Code == apperror.ServerError {
				log.Printf("authenticate failed: %v", appErr)
			}
			c.AbortWithStatusJSON(appErr.StatusCode(), gin.H{
				"authorized": false,
				"code":       appErr.Code.String(),
				"error":      appErr.Message,
			})
			return
		}

		c.Set(ContextUserID, identity.ID)
		c.Set(ContextUserEmail, identity.Email)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return token
		}
	}
	return c.GetHeader("auth_token")
}

// CurrentUser returns the identity the middleware attached to the context
func CurrentUser(c *gin.Context) (*models.UserIdentity, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return nil, false
	}
	email, _ := c.Get(ContextUserEmail)
	emailStr, _ := email.(string)
	return &models.UserIdentity{ID: id.(string), Email: emailStr}, true
}
