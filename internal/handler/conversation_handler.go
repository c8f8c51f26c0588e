package handler

import (
	"net/http"
	"strconv"

	"satoshigpt/internal/model"

	"github.com/gin-gonic/gin"
)

// ConversationStore is the transcript storage the handlers run against.
type ConversationStore interface {
	Create() int
	Append(id int, role, content string) error
	Get(id int) ([]model.Turn, error)
	List() []int
	Delete(id int) error
}

type ConversationHandler struct {
	store ConversationStore
}

func NewConversationHandler(store ConversationStore) *ConversationHandler {
	return &ConversationHandler{store: store}
}

func (h *ConversationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, ConversationListResponse{Conversations: h.store.List()})
}

func (h *ConversationHandler) Create(c *gin.Context) {
	c.JSON(http.StatusOK, CreatedConversationResponse{ConversationID: h.store.Create()})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	turns, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	messages := make([]MessageResponse, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, MessageResponse{Role: t.Role, Content: t.Content})
	}

	c.JSON(http.StatusOK, ConversationResponse{Messages: messages})
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	id, ok := conversationID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ConversationHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// conversationID parses the :id path param. A non-integer id can never name
// a conversation, so it gets the same 404 body as a missing one.
func conversationID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return 0, false
	}
	return id, true
}
