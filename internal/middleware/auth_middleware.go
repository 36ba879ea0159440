package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/oguzk/interntrack/internal/app/auth"
	"github.com/oguzk/interntrack/internal/app/models"
	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/auth"
)

// Context keys set by the middleware
const (
	ContextUserID    = "userID"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextPrincipal = "principal"
)

// PrincipalResolver builds the access principal for an authenticated user
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID int64, role models.Role) (appauth.Principal, error)
}

// AuthMiddleware handles authentication and role checks
type AuthMiddleware struct {
	jwtService *auth.JWTService
	resolver   PrincipalResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, resolver PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		resolver:   resolver,
	}
}

// JWTAuth validates the bearer token and attaches the caller's identity and
// principal to the request context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}
			errorDetail := dto.NewErrorDetail(code, "Authentication failed").WithDetails(details)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		principal, err := m.resolver.ResolvePrincipal(c.Request.Context(), claims.UserID, models.Role(claims.Role))
		if err != nil {
			abortUnauthorized(c, "User information not found")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, models.Role(claims.Role))
		c.Set(ContextPrincipal, principal)

		c.Next()
	}
}

// RoleRequired restricts an endpoint to the given roles. Must run after
// JWTAuth.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abortUnauthorized(c, "Authentication required")
			return
		}

		callerRole, ok := role.(models.Role)
		if ok {
			for _, allowed := range roles {
				if callerRole == allowed {
					c.Next()
					return
				}
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied").
			WithDetails("Insufficient role for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// GetPrincipal retrieves the caller's principal from the request context
func GetPrincipal(c *gin.Context) (appauth.Principal, bool) {
	value, exists := c.Get(ContextPrincipal)
	if !exists {
		return appauth.Principal{}, false
	}
	principal, ok := value.(appauth.Principal)
	return principal, ok
}

// GetUserID retrieves the authenticated user id from the request context
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, details string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
