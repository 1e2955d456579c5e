package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models/dto"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto status codes and the standard error body
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.APIResponse{Error: detail})
}

func errorResponse(err error) (int, *dto.ErrorDetail) {
	var validationErr *apperrors.ResponseValidationError

	switch {
	case errors.Is(err, apperrors.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType,
			dto.NewErrorDetail(dto.ErrorCodeUnsupportedType, apperrors.MessageOf(err, "Unsupported file type"))

	case errors.Is(err, apperrors.ErrExtraction):
		return http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeExtractionFailed, apperrors.MessageOf(err, "Could not read the uploaded file"))

	case errors.Is(err, apperrors.ErrGeneration):
		return http.StatusBadGateway,
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "The AI service could not complete the request")

	case errors.Is(err, apperrors.ErrMalformedResponse):
		return http.StatusBadGateway,
			dto.NewErrorDetail(dto.ErrorCodeMalformedModelOutput, "The AI service returned an unreadable response")

	case errors.As(err, &validationErr):
		return http.StatusBadGateway,
			dto.NewErrorDetail(dto.ErrorCodeInvalidModelOutput, "The AI service returned an invalid response").
				WithDetails(map[string]interface{}{"index": validationErr.Index, "reason": validationErr.Reason})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, apperrors.MessageOf(err, "Permission denied"))

	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, apperrors.MessageOf(err, notFoundMessage(err)))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already registered").WithField("email")

	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Username already taken").WithField("username")

	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, apperrors.MessageOf(err, "Resource already exists"))
		if details := apperrors.DetailsOf(err); details != nil {
			detail.WithDetails(details)
		}
		return http.StatusConflict, detail

	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.MessageOf(err, "Validation failed"))
		if details := apperrors.DetailsOf(err); details != nil {
			detail.WithDetails(details)
		}
		return http.StatusBadRequest, detail

	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, apperrors.MessageOf(err, "Bad request"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")

	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Session expired, please login again")

	case errors.Is(err, apperrors.ErrTokenRevoked):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Session has ended, please login again")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid session")

	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Please login to continue")

	case errors.Is(err, apperrors.ErrTooManyRequests):
		return http.StatusTooManyRequests,
			dto.NewErrorDetail(dto.ErrorCodeTooManyRequests, "Too many requests, please slow down")

	default:
		return http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUploadNotFound):
		return "Upload not found"
	case errors.Is(err, apperrors.ErrQuizNotFound):
		return "Quiz not found"
	case errors.Is(err, apperrors.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, apperrors.ErrGoalNotFound):
		return "Goal not found"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "User not found"
	default:
		return "Resource not found"
	}
}

// HandleBindingError answers a request whose body or form failed to bind
func HandleBindingError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.APIResponse{Error: dto.HandleValidationError(err)})
}
