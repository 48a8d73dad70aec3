package evidence

import (
	"context"
	"testing"
)

func TestPullRequests(t *testing.T) {
	repos := `[
		{"name":"alpha","owner":{"login":"dev"}},
		{"name":"beta","owner":{"login":"dev"}}
	]`
	// 4 PRs authored by dev (3 merged), 1 by someone else. Only the
	// first 3 authored PRs may be retained; all 4 count in the totals.
	pulls := `[
		{"title":"Add streaming parser","state":"closed","created_at":"2026-08-20T10:00:00Z","merged_at":"2026-08-21T10:00:00Z","additions":10,"deletions":5,"user":{"login":"dev"}},
		{"title":"Refactor scheduler","state":"closed","created_at":"2026-08-18T10:00:00Z","merged_at":"2026-08-19T10:00:00Z","additions":20,"deletions":0,"user":{"login":"dev"}},
		{"title":"Drive-by typo","state":"open","created_at":"2026-08-19T10:00:00Z","merged_at":null,"additions":1,"deletions":1,"user":{"login":"someone-else"}},
		{"title":"Tune retry backoff","state":"open","created_at":"2026-08-16T10:00:00Z","merged_at":null,"additions":1,"deletions":2,"user":{"login":"dev"}},
		{"title":"Rewrite storage layer","state":"closed","created_at":"2026-08-10T10:00:00Z","merged_at":"2026-08-12T10:00:00Z","additions":100,"deletions":100,"user":{"login":"dev"}}
	]`
	toolset, srv := newTestToolset(map[string]string{
		"/users/dev/repos":       repos,
		"/repos/dev/alpha/pulls": `[]`,
		"/repos/dev/beta/pulls":  pulls,
	})
	defer srv.Close()

	record, err := toolset.PullRequests(context.Background(), "dev")
	if err != nil {
		t.Fatalf("PullRequests: %v", err)
	}

	if record.TotalPRs != 4 {
		t.Errorf("TotalPRs = %d, want 4", record.TotalPRs)
	}
	if record.MergedPRs != 3 {
		t.Errorf("MergedPRs = %d, want 3", record.MergedPRs)
	}
	if record.MergeRate != 75 {
		t.Errorf("MergeRate = %d, want 75", record.MergeRate)
	}

	if len(record.RecentPRs) != 3 {
		t.Fatalf("RecentPRs has %d entries, want 3 (per-repo retention cap)", len(record.RecentPRs))
	}
	wantTitles := []string{"Add streaming parser", "Refactor scheduler", "Tune retry backoff"}
	for i, title := range wantTitles {
		if record.RecentPRs[i].Title != title {
			t.Errorf("RecentPRs[%d].Title = %q, want %q", i, record.RecentPRs[i].Title, title)
		}
	}
	for _, pr := range record.RecentPRs {
		if pr.Title == "Drive-by typo" {
			t.Error("PR authored by another user must be excluded")
		}
	}

	// retained sizes 15, 20, 3 -> mean 12.667 rounds to 13
	if record.AveragePRSize != 13 {
		t.Errorf("AveragePRSize = %d, want 13", record.AveragePRSize)
	}
}

func TestPullRequestsPerRepoFailureIsSkipped(t *testing.T) {
	repos := `[
		{"name":"broken","owner":{"login":"dev"}},
		{"name":"good","owner":{"login":"dev"}}
	]`
	pulls := `[
		{"title":"Only PR","state":"closed","created_at":"2026-08-20T10:00:00Z","merged_at":"2026-08-21T10:00:00Z","additions":4,"deletions":2,"user":{"login":"dev"}}
	]`
	toolset, srv := newTestToolset(map[string]string{
		"/users/dev/repos":      repos,
		"/repos/dev/good/pulls": pulls,
		// /repos/dev/broken/pulls intentionally missing -> 404
	})
	defer srv.Close()

	record, err := toolset.PullRequests(context.Background(), "dev")
	if err != nil {
		t.Fatalf("a single repo failure must not be fatal: %v", err)
	}
	if record.TotalPRs != 1 || record.MergedPRs != 1 || record.MergeRate != 100 {
		t.Errorf("totals = %d/%d/%d, want 1/1/100", record.TotalPRs, record.MergedPRs, record.MergeRate)
	}
}

func TestPullRequestsNoActivity(t *testing.T) {
	toolset, srv := newTestToolset(map[string]string{"/users/dev/repos": `[]`})
	defer srv.Close()

	record, err := toolset.PullRequests(context.Background(), "dev")
	if err != nil {
		t.Fatalf("PullRequests: %v", err)
	}
	if record.TotalPRs != 0 || record.MergeRate != 0 || record.AveragePRSize != 0 {
		t.Errorf("zero activity must yield zero rates, got %+v", record)
	}
	if len(record.RecentPRs) != 0 {
		t.Errorf("RecentPRs should be empty, got %d", len(record.RecentPRs))
	}
}
