package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gpacalc/internal/app/models/dto"
	"github.com/yigit/gpacalc/internal/pkg/apperrors"
	"github.com/yigit/gpacalc/internal/pkg/logger"
)

type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// apiErrors maps sentinels to responses, first match wins
var apiErrors = []apiError{
	{apperrors.ErrSessionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Session not found or expired"},
	{apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrSessionAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Session already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrInvalidTerm, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Term must be term1 or term2"},
	{apperrors.ErrInvalidView, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "View must be term1, term2 or combined"},
	{apperrors.ErrInvalidField, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Field must be name, credits or score"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, e := range apiErrors {
		if errors.Is(err, e.target) {
			detail := dto.NewErrorDetail(e.code, e.message)
			var custom *apperrors.CustomError
			if errors.As(err, &custom) && custom.Message != "" {
				detail = detail.WithDetails(custom.Message)
			}
			c.AbortWithStatusJSON(e.status, dto.NewErrorResponse(detail))
			return
		}
	}

	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("Unhandled API error")
	detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
		WithSeverity(dto.ErrorSeverityCritical)
	if gin.Mode() == gin.DebugMode {
		detail = detail.WithDebugInfo("%v", err)
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
}

// AbortBadRequest aborts with a VAL_001 error carrying details
func AbortBadRequest(c *gin.Context, message string, details interface{}) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if details != nil {
		detail = detail.WithDetails(details)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// AbortUnauthorized aborts with AUTH_008
func AbortUnauthorized(c *gin.Context, details string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}
