// Package handlers exposes the HTTP surface. Handlers bind and validate the
// request shape, delegate to the models, and translate AppErrors into the
// uniform error payload.
package handlers

import (
	"net/http"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/gin-gonic/gin"
)

// handleModelError writes the uniform error payload for a model failure.
func handleModelError(c *gin.Context, err error) {
	var response types.ErrorResponse
	var statusCode int

	switch e := err.(type) {
	case *apperrors.AppError:
		response.Code = string(e.Type)
		response.Message = e.Message
		response.Error = e.Detail
		statusCode = e.GetHTTPStatus()
	default:
		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected error from model")
		response.Code = string(apperrors.ServerError)
		response.Message = "An unexpected error occurred"
		response.Error = "Internal server error"
		statusCode = http.StatusInternalServerError
	}

	if !c.Writer.Written() {
		c.JSON(statusCode, response)
	}
	c.Abort()
}

// bindJSONOrError binds the request body into obj; on failure it writes a
// validation error response and reports false.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		handleModelError(c, apperrors.ValidationFailed("Invalid request body", err.Error()))
		return false
	}
	return true
}
