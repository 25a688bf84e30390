package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"dev-chat/models"
)

func userTurn(content string) Turn {
	return Turn{Role: models.RoleUser, Content: content}
}

func TestDemoReplyIsDeterministic(t *testing.T) {
	turns := []Turn{userTurn("Help me debug this error")}

	first := DemoReply(turns)
	second := DemoReply(turns)
	assert.Equal(t, first, second)
}

func TestDemoReplyBuckets(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		marker string
	}{
		{"resume", "How should I show this on my resume?", "For portfolio/resume writing"},
		{"debug", "Help me debug this error", "Debug workflow:"},
		{"backend", "Design a database schema for orders", "Backend/API checklist:"},
		{"interview", "Any tips for a behavioral interview?", "interview prep in demo mode"},
		{"generic", "hello", "Demo mode is active"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := DemoReply([]Turn{userTurn(tc.prompt)})
			assert.Contains(t, reply, tc.marker)
		})
	}
}

func TestDemoReplyBucketPriority(t *testing.T) {
	// Resume keywords outrank debugging keywords regardless of position.
	reply := DemoReply([]Turn{userTurn("I hit a bug while writing my resume")})
	assert.Contains(t, reply, "For portfolio/resume writing")
	assert.NotContains(t, reply, "Debug workflow:")
}

func TestDemoReplyMatchingIsCaseInsensitive(t *testing.T) {
	reply := DemoReply([]Turn{userTurn("HELP ME DEBUG THIS ERROR")})
	assert.Contains(t, reply, "Debug workflow:")
}

func TestDemoReplyUsesLatestUserTurn(t *testing.T) {
	turns := []Turn{
		userTurn("Rewrite my resume bullet"),
		{Role: models.RoleAssistant, Content: "Sure, here is a rewrite."},
		userTurn("Now help me debug a crash"),
		{Role: models.RoleAssistant, Content: "Let's look at the logs."},
	}
	// The trailing assistant turn is skipped; the last user turn decides.
	reply := DemoReply(turns)
	assert.Contains(t, reply, "Debug workflow:")
}

func TestDemoReplyEmptyContext(t *testing.T) {
	reply := DemoReply(nil)
	if !strings.Contains(reply, "Demo mode is active") {
		t.Fatalf("expected generic demo reply, got %q", reply)
	}
}
