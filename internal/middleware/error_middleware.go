package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bearnet/internal/app/models/dto"
	"github.com/yigit/bearnet/internal/pkg/apperrors"
	"github.com/yigit/bearnet/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses.
// Only bad requests get their own status; every other error, missing
// students and courses included, is a generic internal server error.
func HandleAPIError(c *gin.Context, err error) {
	var detail *dto.ErrorDetail
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	default:
		// Internal details stay in the log
		logger.Error().Err(err).
			Str("requestID", RequestIDFrom(c)).
			Str("path", c.FullPath()).
			Msg("Unhandled error while serving request")
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponse(detail))
}
