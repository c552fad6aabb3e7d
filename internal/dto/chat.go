package dto

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
	Context string `json:"context"`
}

type ChatMessageResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Content   string  `json:"content"`
	IsUser    bool    `json:"isUser"`
	ModelUsed *string `json:"modelUsed"`
	Category  string  `json:"category"`
	CreatedAt string  `json:"createdAt"`
}

type ConversationResponse struct {
	UserMessage ChatMessageResponse `json:"userMessage"`
	AIMessage   ChatMessageResponse `json:"aiMessage"`
}

type SendMessageResponse struct {
	Success      bool                 `json:"success"`
	Response     string               `json:"response"`
	Conversation ConversationResponse `json:"conversation"`
}

type ChatHistoryResponse struct {
	Success  bool                  `json:"success"`
	Messages []ChatMessageResponse `json:"messages"`
}
