package handlers

import (
	"errors"
	"net/http"

	"btc-ltv-planner/internal/api/models"
	"btc-ltv-planner/internal/model"

	"github.com/gin-gonic/gin"
)

var errPresetNotFound = errors.New("preset not found")

// errorDetail maps a domain error onto an HTTP status and the error envelope.
func errorDetail(err error) (int, models.ErrorDetail) {
	switch {
	case errors.Is(err, errPresetNotFound):
		return http.StatusNotFound, models.ErrorDetail{Code: "PRESET_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest, models.ErrorDetail{Code: "INVALID_ARGUMENT", Message: err.Error()}
	case errors.Is(err, model.ErrArithmeticDegenerate):
		return http.StatusUnprocessableEntity, models.ErrorDetail{Code: "ARITHMETIC_DEGENERATE", Message: err.Error()}
	default:
		return http.StatusInternalServerError, models.ErrorDetail{Code: "PROJECTION_ERROR", Message: err.Error()}
	}
}

func writeError(c *gin.Context, err error) {
	status, detail := errorDetail(err)
	c.JSON(status, models.ErrorResponse{Error: detail})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
