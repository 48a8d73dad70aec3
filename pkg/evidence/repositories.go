package evidence

import (
	"context"
	"time"
)

type RepoSummary struct {
	Name     string     `json:"name"`
	Language *string    `json:"language"`
	PushedAt *time.Time `json:"pushedAt"`
	Stars    int        `json:"stars"`
	Forks    int        `json:"forks"`
}

type RepositoryRecord struct {
	Repositories []RepoSummary `json:"repositories"`
}

// Repositories returns up to 15 most recently pushed repositories in
// upstream (recency-first) order.
func (t *Toolset) Repositories(ctx context.Context, username string) (*RepositoryRecord, error) {
	repos, err := t.gh.ListRecentlyPushedRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	summaries := make([]RepoSummary, 0, len(repos))
	for _, repo := range repos {
		summaries = append(summaries, RepoSummary{
			Name:     repo.Name,
			Language: repo.Language,
			PushedAt: repo.PushedAt,
			Stars:    repo.StargazersCount,
			Forks:    repo.ForksCount,
		})
	}
	return &RepositoryRecord{Repositories: summaries}, nil
}
