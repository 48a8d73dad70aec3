package evidence

import (
	"context"
	"fmt"

	"dev-assessment-be/pkg/llm"
)

// Handler executes one evidence tool for a subject.
type Handler func(ctx context.Context, username string) (interface{}, error)

type catalogEntry struct {
	decl llm.Tool
	run  Handler
}

// Catalog is the capability menu offered to the synthesis loop: tool name
// → declaration + validated handler. Which tool runs, when, and how often
// is the model's decision; the catalog only dispatches. Read-only after
// construction, so it is safe to share across concurrent invocations.
type Catalog struct {
	entries map[string]catalogEntry
	order   []string
}

func NewCatalog(tools *Toolset) *Catalog {
	c := &Catalog{entries: make(map[string]catalogEntry)}

	c.register(
		"get_user_profile",
		"Fetch the GitHub user's profile: identity, bio, follower/following counts, repository count and account timestamps.",
		func(ctx context.Context, username string) (interface{}, error) {
			return tools.Profile(ctx, username)
		},
	)
	c.register(
		"get_recent_repositories",
		"List up to 15 most recently pushed repositories with name, primary language, push timestamp, stars and forks.",
		func(ctx context.Context, username string) (interface{}, error) {
			return tools.Repositories(ctx, username)
		},
	)
	c.register(
		"get_language_statistics",
		"Count repositories per primary language across up to 100 repositories and return the top 5 languages with percentages.",
		func(ctx context.Context, username string) (interface{}, error) {
			return tools.LanguageStats(ctx, username)
		},
	)
	c.register(
		"get_pull_request_activity",
		"Mine recent repositories for pull requests authored by the user: totals, merge rate, average PR size and the most recent PRs.",
		func(ctx context.Context, username string) (interface{}, error) {
			return tools.PullRequests(ctx, username)
		},
	)
	c.register(
		"get_commit_activity",
		"Analyze push events from the last 30 days: weekly commit frequency, commit message quality and the most recent commits.",
		func(ctx context.Context, username string) (interface{}, error) {
			return tools.CommitActivity(ctx, username)
		},
	)
	c.register(
		"get_starred_repositories",
		"List up to 20 most recently starred repositories with details for the first 10 and the top 5 starred languages.",
		func(ctx context.Context, username string) (interface{}, error) {
			return tools.Starred(ctx, username)
		},
	)

	return c
}

// usernameSchema is the shared input contract: every evidence tool takes
// exactly one required username field.
func usernameSchema() *llm.Schema {
	return &llm.Schema{
		Type: "object",
		Properties: map[string]*llm.Schema{
			"username": {
				Type:        "string",
				Description: "GitHub username of the subject being evaluated",
			},
		},
		Required: []string{"username"},
	}
}

func (c *Catalog) register(name, description string, run Handler) {
	c.entries[name] = catalogEntry{
		decl: llm.Tool{Name: name, Description: description, Parameters: usernameSchema()},
		run:  run,
	}
	c.order = append(c.order, name)
}

// Declarations returns the tool declarations in registration order.
func (c *Catalog) Declarations() []llm.Tool {
	decls := make([]llm.Tool, 0, len(c.order))
	for _, name := range c.order {
		decls = append(decls, c.entries[name].decl)
	}
	return decls
}

// Execute validates a model-issued tool call against the tool's input
// schema and runs the handler. Unknown tools and malformed arguments are
// errors for the caller to relay, not to abort on.
func (c *Catalog) Execute(ctx context.Context, call llm.ToolCall) (interface{}, error) {
	entry, ok := c.entries[call.Name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", call.Name)
	}

	raw, ok := call.Arguments["username"]
	if !ok {
		return nil, fmt.Errorf("tool %s: missing required field 'username'", call.Name)
	}
	username, ok := raw.(string)
	if !ok || username == "" {
		return nil, fmt.Errorf("tool %s: field 'username' must be a non-empty string", call.Name)
	}

	return entry.run(ctx, username)
}
