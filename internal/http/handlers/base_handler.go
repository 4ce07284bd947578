// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriadvisor/internal/modules/history"
	"agriadvisor/internal/modules/recommend"
	"agriadvisor/internal/service"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeAdvisorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPredictorUnavailable):
		writeJSON(c, http.StatusServiceUnavailable, errorResponse{
			Error:  service.ErrPredictorUnavailable.Error(),
			Detail: "the fertilizer model is not loaded or did not answer in time; try again later",
		})
	case errors.Is(err, history.ErrDisabled):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
