package chat

import (
	"context"

	"google.golang.org/genai"

	"dev-chat/models"
)

const defaultGeminiModel = "gemini-2.0-flash"

// callGemini sends the context through the Gemini API. The conversation
// history maps onto alternating user/model contents; the fixed system
// instruction travels in the generation config.
func callGemini(ctx context.Context, apiKey string, turns []Turn, cfg GenerateConfig) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return "", err
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.RoleUser
		if t.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}

	temperature := float32(cfg.Temperature)
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		Temperature:       &temperature,
	}
	if cfg.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(cfg.MaxTokens)
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, genCfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
