package handlers

import (
	"net/http"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Business errors keep
// their code so the UI can distinguish "link invalid" from "link expired"
// from "already confirmed"; infra failures are logged and surfaced as a
// generic 500.
func respondError(c *gin.Context, err error) {
	code := models.CodeOf(err)
	status := http.StatusInternalServerError

	switch code {
	case models.ErrCodeNotFound:
		status = http.StatusNotFound
	case models.ErrCodeConflict:
		status = http.StatusConflict
	case models.ErrCodeExpired:
		status = http.StatusGone
	case models.ErrCodeValidation, models.ErrCodeInvalidInterval, models.ErrCodeInvalidSchedule:
		status = http.StatusBadRequest
	case "":
		utils.GetLogger().Error("internal error", zap.Error(err))
		c.JSON(status, utils.ErrorResponse{
			Message: "Internal Server Error",
			Details: "An unexpected error occurred. Please try again later.",
		})
		return
	}

	c.JSON(status, utils.ErrorResponse{Code: string(code), Message: err.Error()})
}
