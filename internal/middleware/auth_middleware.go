package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gpacalc/internal/app/models/dto"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
	"github.com/yigit/gpacalc/internal/pkg/auth"
)

// ContextKeySessionID is the gin context key holding the authenticated session id
const ContextKeySessionID = "sessionID"

// TokenValidator resolves a bearer token to a session id
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthMiddleware binds requests to the calculator session named by their token
type AuthMiddleware struct {
	tokens TokenValidator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// SessionAuth requires a valid session token in the Authorization header,
// or in the "token" query parameter for websocket clients.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			AbortUnauthorized(c, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			AbortUnauthorized(c, "Invalid token format")
			return
		}

		sessionID, err := m.tokens.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed").WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

// SessionIDFromContext returns the session id set by SessionAuth
func SessionIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(ContextKeySessionID)
	return id, id != ""
}
