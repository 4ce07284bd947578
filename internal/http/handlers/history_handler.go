package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agriadvisor/internal/modules/history"
)

// maxHistoryDays bounds the topics window to ten years.
const maxHistoryDays = 3650

type HistoryHandler struct {
	history *history.Service
}

func NewHistoryHandler(hist *history.Service) *HistoryHandler {
	return &HistoryHandler{history: hist}
}

// Topics handles GET /api/history/topics?days=N (default 30, 0 = all time,
// at most maxHistoryDays).
func (h *HistoryHandler) Topics(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxHistoryDays {
			writeError(c, http.StatusBadRequest, "invalid days")
			return
		}
		days = n
	}

	counts, err := h.history.TopicCounts(c.Request.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		writeAdvisorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"days": days, "topics": counts})
}

// Recent handles GET /api/history/recent?limit=N.
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		writeAdvisorError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"items": items})
}
