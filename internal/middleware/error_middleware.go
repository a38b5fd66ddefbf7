package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorMappings is checked in order; the first match wins
var errorMappings = []errorMapping{
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account disabled"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
	{apperrors.ErrInvalidRole, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid role"},
	{apperrors.ErrSelfMessage, http.StatusBadRequest, dto.ErrorCodeBadRequest, "You cannot message yourself"},
	{apperrors.ErrNotMentor, http.StatusBadRequest, dto.ErrorCodeBadRequest, "User is not an available mentor"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrAlreadyApplied, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already applied to this job"},
	{apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Already registered for this event"},
	{apperrors.ErrDuplicateRequest, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "An open request already exists"},
	{apperrors.ErrEventFull, http.StatusConflict, dto.ErrorCodeConflict, "Event is at capacity"},
	{apperrors.ErrNotApproved, http.StatusConflict, dto.ErrorCodeConflict, "Resource is not approved"},
	{apperrors.ErrWorkflowHasNoSteps, http.StatusConflict, dto.ErrorCodeConflict, "Workflow has no steps"},
	{apperrors.ErrVerificationDecided, http.StatusConflict, dto.ErrorCodeConflict, "Verification already decided"},
	{apperrors.ErrIllegalTransition, http.StatusConflict, dto.ErrorCodeIllegalTransition, "Illegal status transition"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}

		message := m.message
		if custom := apperrors.Message(err); custom != "" {
			message = custom
		}
		errorDetail := dto.NewErrorDetail(m.code, message)
		if m.target == apperrors.ErrIllegalTransition {
			errorDetail.WithDetails(err.Error())
		}
		if m.status < http.StatusInternalServerError {
			errorDetail.WithSeverity(dto.ErrorSeverityWarning)
		}
		c.AbortWithStatusJSON(m.status, dto.NewErrorResponse(errorDetail))
		return
	}

	logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}
