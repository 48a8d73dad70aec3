package evidence

import (
	"dev-assessment-be/pkg/github"
)

// Toolset implements the evidence tools: deterministic reductions of raw
// GitHub API payloads into compact, schema-shaped records the synthesis
// loop can reason over. Tools never retry; any non-2xx upstream response
// surfaces as *github.UpstreamError.
type Toolset struct {
	gh *github.Client
}

func NewToolset(gh *github.Client) *Toolset {
	return &Toolset{gh: gh}
}

// LanguageCount is a language paired with how many repositories declare it.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}
