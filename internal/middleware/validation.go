package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/bearnet/internal/app/models/dto"
	"github.com/yigit/bearnet/internal/pkg/apperrors"
)

// BindJSON decodes the request body into obj. On failure it writes a 400
// response and returns false. Only the JSON shape is checked.
func BindJSON(c *gin.Context, obj interface{}, message string) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// ParseIDParam reads a numeric path parameter. On failure it writes a 400
// response and returns false.
func ParseIDParam(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		HandleAPIError(c, apperrors.NewBadRequestError("Invalid "+label+" ID: must be a valid number"))
		return 0, false
	}
	return id, true
}
