package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/foodgram/foodgram-backend/internal/app/model"
	"github.com/foodgram/foodgram-backend/internal/errors"
	"github.com/foodgram/foodgram-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for user information
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

// accepted Authorization schemes; "Token" is what older foodgram clients send
var authSchemes = []string{"Bearer", "Token"}

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the token issued by the identity provider (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "")
			c.Abort()
			return
		}

		token, ok := extractToken(authHeader)
		if !ok {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if stderrors.Is(err, util.ErrExpiredToken) {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Token has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid token")
			}
			c.Abort()
			return
		}

		setUser(c, claims)
		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate sets user info when a valid token is present and
// otherwise continues as an anonymous caller
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		token, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		setUser(c, claims)
		c.Next()
	}
}

func extractToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, s := range authSchemes {
		if strings.EqualFold(scheme, s) {
			return token, true
		}
	}
	return "", false
}

func setUser(c *gin.Context, claims *util.Claims) {
	role := model.UserRole(claims.Role)
	if role == "" {
		role = model.RoleUser
	}
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserRoleKey, role)
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserRole extracts user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(model.UserRole)
	return r, ok
}
