package handler

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID int    `json:"conversation_id"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID int    `json:"conversation_id"`
}

type MessageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ConversationResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type ConversationListResponse struct {
	Conversations []int `json:"conversations"`
}

type CreatedConversationResponse struct {
	ConversationID int `json:"conversation_id"`
}
