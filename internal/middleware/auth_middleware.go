package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/campushub/internal/app/models"
	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/auth"
	"github.com/mkaraca/campushub/internal/pkg/session"
)

// Context keys set by JWTAuth
const (
	ContextAccountID = "accountID"
	ContextEmail     = "email"
	ContextRole      = "roleType"
)

// AuthMiddleware validates tokens and enforces the inactivity timeout
type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   *session.Tracker
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, sessions *session.Tracker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// JWTAuth validates the bearer token, refreshes the session activity window
// and stores the claims on the request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		// Each token is one session; the jti keys its activity window
		if !m.sessions.Touch(claims.ID) {
			abortUnauthorized(c, dto.ErrorCodeSessionExpired, "Session expired due to inactivity, please log in again")
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.RoleType)
		c.Next()
	}
}

// RoleRequired gates a route group to one role. The role comes from the
// token claim written at login, not from a fresh lookup.
func (m *AuthMiddleware) RoleRequired(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(role) {
			detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "This dashboard belongs to another role")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
			return
		}
		c.Next()
	}
}

// CallerEmail returns the authenticated email from the request context
func CallerEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

// CallerAccountID returns the authenticated account ID from the request context
func CallerAccountID(c *gin.Context) int64 {
	return c.GetInt64(ContextAccountID)
}
