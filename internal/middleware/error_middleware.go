package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkaraca/campushub/internal/app/models/dto"
	"github.com/mkaraca/campushub/internal/pkg/apperrors"
	"github.com/mkaraca/campushub/internal/pkg/logger"
)

// messageOrDefault prefers the user-facing message of a CustomError
func messageOrDefault(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// notFoundErrors collapse to a single RES_001 response. Ownership failures
// land here too so callers cannot probe other users' resources.
var notFoundErrors = []error{
	apperrors.ErrResourceNotFound,
	apperrors.ErrAccountNotFound,
	apperrors.ErrStudentNotFound,
	apperrors.ErrInstructorNotFound,
	apperrors.ErrCourseNotFound,
	apperrors.ErrEnrollmentNotFound,
	apperrors.ErrAssignmentNotFound,
	apperrors.ErrSubmissionNotFound,
	apperrors.ErrAnnouncementNotFound,
	apperrors.ErrNotificationNotFound,
	apperrors.ErrSentEmailNotFound,
	apperrors.ErrScheduleNotFound,
}

var conflictErrors = []error{
	apperrors.ErrConflict,
	apperrors.ErrAlreadyEnrolled,
	apperrors.ErrEmailAlreadyExists,
	apperrors.ErrUsernameTaken,
	apperrors.ErrCourseAlreadyExists,
	apperrors.ErrStudentIDAlreadyExists,
}

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOrDefault(err, "Resource not found"))
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
			return
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOrDefault(err, "Resource already exists"))
			c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))
			return
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrEmailNotProvisioned),
		errors.Is(err, apperrors.ErrUnknownAction):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOrDefault(err, err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrPaymentExceedsBalance):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOrDefault(err, "Payment exceeds remaining balance")).WithField("amount")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrTokenExpired):
		detail := dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrSessionExpired):
		detail := dto.NewErrorDetail(dto.ErrorCodeSessionExpired, "Session expired due to inactivity, please log in again")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrMailDelivery):
		detail := dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Email could not be delivered")
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(detail))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}

// HandleBindingError reports a request binding failure
func HandleBindingError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
