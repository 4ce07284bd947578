package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriadvisor/internal/service"
)

type ChatHandler struct {
	advisor *service.Advisor
}

func NewChatHandler(advisor *service.Advisor) *ChatHandler {
	return &ChatHandler{advisor: advisor}
}

type chatReq struct {
	Query    string `json:"query"`
	Language string `json:"language"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Chat handles POST /chat. Any well-formed body gets a reply.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	reply := h.advisor.Chat(c.Request.Context(), service.Query{
		Text:     req.Query,
		Language: req.Language,
		Name:     req.Name,
		Location: req.Location,
	})
	writeJSON(c, http.StatusOK, reply)
}
