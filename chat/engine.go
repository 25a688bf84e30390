package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"google.golang.org/genai"

	"dev-chat/logger"
	"dev-chat/trace"
)

// Turn is one {role, content} pair of conversation context.
type Turn struct {
	Role    string
	Content string
}

// Supported providers. Anything else selects the local rule responder.
const (
	ProviderDemo   = "demo"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// GenerateConfig is the per-call provider configuration. There is no
// process-wide provider state; every call carries its own settings.
type GenerateConfig struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
}

const systemInstruction = "You are a concise software engineering assistant. Give practical, direct answers."

// emptyReplySentinel is returned when the provider succeeds but sends
// back nothing usable.
const emptyReplySentinel = "No response generated."

// FailureClass tags a provider failure so the fallback disclosure can
// name what went wrong without surfacing an error.
type FailureClass int

const (
	FailureQuota FailureClass = iota
	FailureAuth
	FailureOther
)

var failureNotices = map[FailureClass]string{
	FailureQuota: "[External provider quota exceeded, falling back to demo mode.]",
	FailureAuth:  "[External provider authentication failed, falling back to demo mode.]",
	FailureOther: "[External provider request failed, falling back to demo mode.]",
}

const noCredentialNotice = "[External provider unavailable, falling back to demo mode.]"

// Engine produces a reply for a conversation context. It never fails
// outward: provider errors of any kind degrade into a demo reply with a
// disclosure prefix, so a broken upstream can never fail a chat turn.
type Engine struct {
	// timeout bounds a single provider call; a hung provider becomes a
	// FailureOther fallback.
	timeout time.Duration
}

func NewEngine(timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Engine{timeout: timeout}
}

// Generate resolves the provider and returns the reply text.
func (e *Engine) Generate(ctx context.Context, turns []Turn, cfg GenerateConfig) string {
	switch cfg.Provider {
	case ProviderOpenAI:
		return e.generateExternal(ctx, turns, cfg, "OPENAI_API_KEY", callOpenAI)
	case ProviderGemini:
		return e.generateExternal(ctx, turns, cfg, "GEMINI_API_KEY", callGemini)
	default:
		return DemoReply(turns)
	}
}

type providerCall func(ctx context.Context, apiKey string, turns []Turn, cfg GenerateConfig) (string, error)

func (e *Engine) generateExternal(ctx context.Context, turns []Turn, cfg GenerateConfig, credentialEnv string, call providerCall) string {
	apiKey := os.Getenv(credentialEnv)
	if apiKey == "" {
		return noCredentialNotice + "\n\n" + DemoReply(turns)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	requestID, spanID := trace.NextSpanID(ctx)
	text, err := call(callCtx, apiKey, turns, cfg)
	if err != nil {
		class := classifyFailure(err)
		logger.WarnWithFields("provider call failed, demo fallback", logger.Fields{
			"provider":   cfg.Provider,
			"model":      cfg.Model,
			"class":      class.String(),
			"error":      err.Error(),
			"request_id": requestID,
			"span_id":    spanID,
		})
		return failureNotices[class] + "\n\n" + DemoReply(turns)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return emptyReplySentinel
	}
	return text
}

// classifyFailure maps provider errors onto the fallback taxonomy:
// 429 means quota, 401/403 mean credentials, everything else (network
// errors, timeouts, malformed responses) is FailureOther.
func classifyFailure(err error) FailureClass {
	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return classFromStatus(oaiErr.StatusCode)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classFromStatus(apiErr.Code)
	}
	return FailureOther
}

func classFromStatus(status int) FailureClass {
	switch status {
	case 429:
		return FailureQuota
	case 401, 403:
		return FailureAuth
	default:
		return FailureOther
	}
}

func (c FailureClass) String() string {
	switch c {
	case FailureQuota:
		return "quota"
	case FailureAuth:
		return "auth"
	default:
		return "other"
	}
}
