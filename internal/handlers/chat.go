package handlers

import (
	"github.com/gin-gonic/gin"

	"campushub/internal/models"
)

// Chat answers a free-text question from the FAQ knowledge base.
// POST /api/chat
func (h *Handlers) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.services.FAQ.Answer(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
