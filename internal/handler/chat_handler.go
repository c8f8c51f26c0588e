package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"satoshigpt/internal/model"

	"github.com/gin-gonic/gin"
)

const chatTimeout = 30 * time.Second

// Responder produces the assistant's reply for one chat turn. It never
// fails; upstream errors surface as apologetic reply text.
type Responder interface {
	Respond(ctx context.Context, history []model.Turn, message string) string
}

type ChatHandler struct {
	store     ConversationStore
	responder Responder
}

func NewChatHandler(store ConversationStore, responder Responder) *ChatHandler {
	return &ChatHandler{store: store, responder: responder}
}

// Chat handles one turn: append the user message, resolve a reply, append
// the reply, return both reply and conversation id. A request without a
// conversation_id starts a new conversation.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty message"})
		return
	}

	id := req.ConversationID
	if id == 0 {
		id = h.store.Create()
	}

	if err := h.store.Append(id, model.RoleUser, message); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	history, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	reply := h.responder.Respond(ctx, history, message)

	// Record the reply even when it is an apology so the transcript stays
	// consistent. The conversation may have been deleted mid-flight.
	if err := h.store.Append(id, model.RoleAssistant, reply); err != nil {
		slog.Error("failed to append assistant turn", "conversation_id", id, "error", err)
	}

	c.JSON(http.StatusOK, ChatResponse{Response: reply, ConversationID: id})
}
