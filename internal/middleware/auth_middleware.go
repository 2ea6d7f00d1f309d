package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yhkang/stylehub-backend/internal/errors"
	"github.com/yhkang/stylehub-backend/pkg/util"
)

// Context keys for staff identity
const (
	SubjectKey     = "subject"
	PermissionsKey = "permissions"
)

// PermissionManageProducts guards every catalog mutation.
const PermissionManageProducts = "manage_products"

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the bearer token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authentication credentials were not provided")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Token has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(PermissionsKey, claims.Permissions)

		log.Debug("Staff authenticated", map[string]interface{}{
			"subject": claims.Subject,
		})

		c.Next()
	}
}

// RequirePermission checks that the authenticated staff member holds the
// given permission. Must run after Authenticate.
func (m *AuthMiddleware) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		granted, exists := c.Get(PermissionsKey)
		if !exists {
			log.Warn("Permission information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Forbidden(c, "Permission information not found")
			c.Abort()
			return
		}

		for _, p := range granted.([]string) {
			if p == permission {
				c.Next()
				return
			}
		}

		subject, _ := GetSubject(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"subject":             subject,
			"required_permission": permission,
			"path":                c.Request.URL.Path,
		})
		errors.Forbidden(c, "You need the "+permission+" permission to perform this action")
		c.Abort()
	}
}

// GetSubject extracts the authenticated subject from context
func GetSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get(SubjectKey)
	if !exists {
		return "", false
	}
	return subject.(string), true
}
