package ports

import "context"

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatService — chat-completion вызов у внешнего LLM.
type ChatService interface {
	Complete(ctx context.Context, messages []ChatMessage, temperature float64) (string, error)
}
