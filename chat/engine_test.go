package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

// quotaErr fabricates the shape of an OpenAI 429 with enough of the
// request populated for Error() to be printable.
func quotaErr() *openai.Error {
	req, _ := http.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", nil)
	return &openai.Error{
		StatusCode: http.StatusTooManyRequests,
		Request:    req,
		Response:   &http.Response{StatusCode: http.StatusTooManyRequests, Request: req},
	}
}

func TestGenerateDemoProviderNeverDialsOut(t *testing.T) {
	// No credential in the environment: an accidental provider call
	// would fall back with a disclosure, so a clean demo reply proves
	// the external path was never taken.
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	engine := NewEngine(time.Second)
	turns := []Turn{userTurn("Help me debug this error")}

	reply := engine.Generate(context.Background(), turns, GenerateConfig{Provider: ProviderDemo})
	assert.Contains(t, reply, "Debug workflow:")
	assert.NotContains(t, reply, "falling back to demo mode")
}

func TestGenerateUnknownProviderFallsBackToDemo(t *testing.T) {
	engine := NewEngine(time.Second)
	reply := engine.Generate(context.Background(), []Turn{userTurn("hello")}, GenerateConfig{Provider: "something-else"})
	assert.Contains(t, reply, "Demo mode is active")
}

func TestGenerateExternalWithoutCredential(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderGemini} {
		t.Run(provider, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("GEMINI_API_KEY", "")

			engine := NewEngine(time.Second)
			reply := engine.Generate(context.Background(), []Turn{userTurn("Help me debug this error")}, GenerateConfig{Provider: provider})

			if !strings.HasPrefix(reply, noCredentialNotice) {
				t.Fatalf("expected disclosure prefix, got %q", reply)
			}
			assert.Contains(t, reply, "Debug workflow:")
		})
	}
}

func TestGenerateExternalFailureIsAbsorbed(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	engine := NewEngine(time.Second)
	failing := func(ctx context.Context, apiKey string, turns []Turn, cfg GenerateConfig) (string, error) {
		return "", fmt.Errorf("chat completion: %w", quotaErr())
	}
	reply := engine.generateExternal(context.Background(), []Turn{userTurn("hello")}, GenerateConfig{Provider: ProviderOpenAI}, "OPENAI_API_KEY", failing)

	if !strings.HasPrefix(reply, failureNotices[FailureQuota]) {
		t.Fatalf("expected quota disclosure, got %q", reply)
	}
	assert.Contains(t, reply, "Demo mode is active")
}

func TestGenerateExternalEmptyReplySentinel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	engine := NewEngine(time.Second)
	empty := func(ctx context.Context, apiKey string, turns []Turn, cfg GenerateConfig) (string, error) {
		return "   \n", nil
	}
	reply := engine.generateExternal(context.Background(), []Turn{userTurn("hello")}, GenerateConfig{Provider: ProviderOpenAI}, "OPENAI_API_KEY", empty)
	assert.Equal(t, emptyReplySentinel, reply)
}

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want FailureClass
	}{
		{"openai quota", &openai.Error{StatusCode: 429}, FailureQuota},
		{"openai auth 401", &openai.Error{StatusCode: 401}, FailureAuth},
		{"openai auth 403", &openai.Error{StatusCode: 403}, FailureAuth},
		{"openai server error", &openai.Error{StatusCode: 500}, FailureOther},
		{"gemini quota", genai.APIError{Code: 429}, FailureQuota},
		{"gemini auth", genai.APIError{Code: 401}, FailureAuth},
		{"plain error", errors.New("connection refused"), FailureOther},
		{"timeout", context.DeadlineExceeded, FailureOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyFailure(tc.err))
		})
	}
}
