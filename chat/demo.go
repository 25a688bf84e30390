package chat

import (
	"strings"

	"dev-chat/models"
)

// demo mode keyword buckets, checked in priority order. The first
// bucket whose keywords match the latest user turn wins.
var demoBuckets = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"resume", "project", "portfolio", "linkedin"},
		reply: strings.Join([]string{
			"For portfolio/resume writing, I can help with:",
			"1) Bullet rewrites (impact-first)",
			"2) Project summaries (short or ATS-friendly)",
			"3) STAR-style interview talking points",
			"",
			"Quick tip: Lead with action + tech + measurable outcome.",
		}, "\n"),
	},
	{
		keywords: []string{"bug", "error", "debug", "traceback", "crash"},
		reply: strings.Join([]string{
			"Debug workflow:",
			"1) Reproduce the issue consistently",
			"2) Isolate the smallest failing case",
			"3) Inspect logs/stack trace",
			"4) Patch root cause",
			"5) Re-test and add a regression test",
		}, "\n"),
	},
	{
		keywords: []string{"api", "backend", "database", "sql", "schema"},
		reply: strings.Join([]string{
			"Backend/API checklist:",
			"- Define endpoints and request/response contracts",
			"- Validate inputs and handle errors cleanly",
			"- Design DB schema + indexes",
			"- Add auth/authorization as needed",
			"- Add integration tests for critical flows",
		}, "\n"),
	},
	{
		keywords: []string{"interview", "behavioral", "leetcode"},
		reply: strings.Join([]string{
			"I can help with interview prep in demo mode:",
			"- Behavioral answers (STAR)",
			"- Project walkthrough scripts",
			"- Technical explanation practice",
			"- Study plans for coding interviews",
		}, "\n"),
	},
}

var demoGenericReply = strings.Join([]string{
	"Demo mode is active. You can ask me to help with:",
	"- Resume/project bullets",
	"- Debugging steps for an error",
	"- API/backend design ideas",
	"- Interview prep and project walkthroughs",
	"",
	"Try prompts like:",
	`"Rewrite this resume bullet for backend SWE roles"`,
	`"Help me debug this Python error: ..."`,
	`"Design a simple REST API for a task tracker"`,
}, "\n")

// DemoReply is the local rule responder: a pure function of the latest
// user turn in the context. Identical input always yields identical
// output, and it never touches the network.
func DemoReply(turns []Turn) string {
	var latest string
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == models.RoleUser {
			latest = turns[i].Content
			break
		}
	}
	text := strings.ToLower(latest)

	for _, bucket := range demoBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(text, kw) {
				return bucket.reply
			}
		}
	}
	return demoGenericReply
}
