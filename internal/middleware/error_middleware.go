package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/interntrack/internal/app/models/dto"
	"github.com/oguzk/interntrack/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// it for every service error so the mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrGroupNotFound,
		apperrors.ErrProgramNotFound,
		apperrors.ErrDiaryEntryNotFound,
		apperrors.ErrNotificationNotFound,
		apperrors.ErrAttendanceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidPasswordResetToken):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, messageOf(err, "Invalid token"))

	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrSuperAdminDelete):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOf(err, "Permission denied"))

	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists,
		apperrors.ErrGroupNameExists,
		apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Resource already exists"))

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrProgramDateRange,
		apperrors.ErrMarkOutOfRange,
		apperrors.ErrInvalidStatus,
		apperrors.ErrTeacherHasNoGroups,
		apperrors.ErrNoProgramForStudent,
		apperrors.ErrOutsideProgramPeriod,
		apperrors.ErrDisabledProgramDay):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed"))

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOf keeps the domain error text when the error is one of ours,
// falling back to a generic message for wrapped infrastructure errors
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
