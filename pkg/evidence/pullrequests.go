package evidence

import (
	"context"
	"math"
	"sort"
	"time"
)

type PullRequestSummary struct {
	Title     string    `json:"title"`
	Repo      string    `json:"repo"`
	State     string    `json:"state"`
	Merged    bool      `json:"merged"`
	CreatedAt time.Time `json:"createdAt"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

type PullRequestRecord struct {
	TotalPRs      int                  `json:"totalPRs"`
	MergedPRs     int                  `json:"mergedPRs"`
	MergeRate     int                  `json:"mergeRate"`
	AveragePRSize int                  `json:"averagePRSize"`
	RecentPRs     []PullRequestSummary `json:"recentPRs"`
}

// PullRequests mines the 10 most recently updated repositories, fetching
// up to 10 pull requests (any state) from the first 5. Only PRs authored
// by the subject count; totals aggregate across every repository
// inspected while at most 3 PRs per repository are retained. The retained
// set is sorted by creation time descending and capped at 10.
//
// A repository list failure is fatal; a per-repository pull fetch failure
// is not — that repository simply contributes nothing.
func (t *Toolset) PullRequests(ctx context.Context, username string) (*PullRequestRecord, error) {
	repos, err := t.gh.ListRecentlyUpdatedRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	if len(repos) > 5 {
		repos = repos[:5]
	}

	var retained []PullRequestSummary
	totalPRs := 0
	mergedPRs := 0

	for _, repo := range repos {
		owner := repo.Owner.Login
		if owner == "" {
			owner = username
		}
		pulls, err := t.gh.ListPullRequests(ctx, owner, repo.Name)
		if err != nil {
			continue
		}

		kept := 0
		for _, pr := range pulls {
			if pr.User.Login != username {
				continue
			}
			totalPRs++
			if pr.MergedAt != nil {
				mergedPRs++
			}
			if kept == 3 {
				continue
			}
			kept++
			retained = append(retained, PullRequestSummary{
				Title:     pr.Title,
				Repo:      repo.Name,
				State:     pr.State,
				Merged:    pr.MergedAt != nil,
				CreatedAt: pr.CreatedAt,
				Additions: pr.Additions,
				Deletions: pr.Deletions,
			})
		}
	}

	sort.Slice(retained, func(i, j int) bool {
		return retained[i].CreatedAt.After(retained[j].CreatedAt)
	})
	if len(retained) > 10 {
		retained = retained[:10]
	}

	avgSize := 0
	if len(retained) > 0 {
		sum := 0
		for _, pr := range retained {
			sum += pr.Additions + pr.Deletions
		}
		avgSize = int(math.Round(float64(sum) / float64(len(retained))))
	}

	mergeRate := 0
	if totalPRs > 0 {
		mergeRate = int(math.Round(100 * float64(mergedPRs) / float64(totalPRs)))
	}

	return &PullRequestRecord{
		TotalPRs:      totalPRs,
		MergedPRs:     mergedPRs,
		MergeRate:     mergeRate,
		AveragePRSize: avgSize,
		RecentPRs:     retained,
	}, nil
}
