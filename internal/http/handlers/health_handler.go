package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriadvisor/internal/modules/history"
	"agriadvisor/internal/service"
)

type HealthHandler struct {
	advisor *service.Advisor
	history *history.Service
}

func NewHealthHandler(advisor *service.Advisor, hist *history.Service) *HealthHandler {
	return &HealthHandler{advisor: advisor, history: hist}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"message": "Smart Fertilizer Recommendation API is running."})
}

// Health handles GET /health. The process is live even when the model is not.
func (h *HealthHandler) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"status":      "ok",
		"model_ready": h.advisor.Ready(),
		"history":     h.history.Enabled(),
	})
}
