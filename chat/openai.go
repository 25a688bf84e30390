package chat

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"dev-chat/models"
)

const defaultOpenAIModel = "gpt-4o-mini"

// callOpenAI sends the context through the OpenAI chat completions API
// with the fixed system instruction prepended.
func callOpenAI(ctx context.Context, apiKey string, turns []Turn, cfg GenerateConfig) (string, error) {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	msgs = append(msgs, openai.SystemMessage(systemInstruction))
	for _, t := range turns {
		if t.Role == models.RoleAssistant {
			msgs = append(msgs, openai.AssistantMessage(t.Content))
		} else {
			msgs = append(msgs, openai.UserMessage(t.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    msgs,
		Temperature: openai.Float(cfg.Temperature),
	}
	if cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(cfg.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
