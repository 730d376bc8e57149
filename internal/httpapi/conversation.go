package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type chatReq struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidParam, "message is required")
		return
	}

	result, err := h.conversationService.Chat(c.Request.Context(), currentUser(c), req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}

	success(c, http.StatusOK, gin.H{
		"conversation_id":    result.Conversation.ID,
		"ai_response":        result.Conversation.AIResponse,
		"grammar_correction": result.Conversation.GrammarCorrection,
		"tokens_used":        result.TokensUsed,
	})
}

func (h *Handler) history(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}
	newestFirst := c.DefaultQuery("order", "desc") != "asc"

	convs, err := h.conversationService.History(c.Request.Context(), currentUser(c).ID, limit, newestFirst)
	if err != nil {
		h.writeError(c, err)
		return
	}
	success(c, http.StatusOK, newConversationViews(convs))
}
