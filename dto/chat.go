package dto

import "dev-chat/models"

// MessageDTO is one transcript entry as exposed over the API.
type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewMessageDTOs(msgs []models.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = MessageDTO{Role: m.Role, Content: m.Content}
	}
	return out
}

// ChatRequestDTO is the /api/chat request body. Provider settings are
// optional; the server fills defaults from configuration.
type ChatRequestDTO struct {
	SessionID   string   `json:"sessionId"`
	Prompt      string   `json:"prompt"`
	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"maxTokens"`
}

type ChatResponseDTO struct {
	Reply    string       `json:"reply"`
	Messages []MessageDTO `json:"messages"`
}

// ConfigResponseDTO tells the client whether any external provider
// credential is configured.
type ConfigResponseDTO struct {
	HasExternalCredential bool `json:"hasExternalCredential"`
}
