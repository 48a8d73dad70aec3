package evidence

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCommitActivity(t *testing.T) {
	recent := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	stale := time.Now().AddDate(0, 0, -40).Format(time.RFC3339)

	// 10 commits inside the window: 6 substantive, 4 failing the
	// message heuristic. The 40-day-old push and the WatchEvent are out.
	events := fmt.Sprintf(`[
		{"type":"PushEvent","created_at":"%s","payload":{"commits":[
			{"message":"Implement streaming JSON parser for tool output"},
			{"message":"Add retry with exponential backoff to fetcher"},
			{"message":"Introduce per-repo retention cap in miner"},
			{"message":"fix typo"},
			{"message":"update deps"},
			{"message":"wip"}
		]}},
		{"type":"PushEvent","created_at":"%s","payload":{"commits":[
			{"message":"Rework language percentage rounding"},
			{"message":"Add integration coverage for starred listing"},
			{"message":"Extract shared schema for tool declarations"},
			{"message":"fixup"}
		]}},
		{"type":"WatchEvent","created_at":"%s","payload":{}},
		{"type":"PushEvent","created_at":"%s","payload":{"commits":[
			{"message":"This commit is too old to count"}
		]}}
	]`, recent, recent, recent, stale)

	toolset, srv := newTestToolset(map[string]string{"/users/dev/events": events})
	defer srv.Close()

	record, err := toolset.CommitActivity(context.Background(), "dev")
	if err != nil {
		t.Fatalf("CommitActivity: %v", err)
	}

	if record.TotalRecentCommits != 10 {
		t.Errorf("TotalRecentCommits = %d, want 10", record.TotalRecentCommits)
	}
	// 10 commits / 4.3 weeks = 2.3
	if record.AverageCommitsPerWeek != 2.3 {
		t.Errorf("AverageCommitsPerWeek = %v, want 2.3", record.AverageCommitsPerWeek)
	}
	// 6 of 10 substantive -> 60 -> "Good"
	if record.QualityScore != 60 {
		t.Errorf("QualityScore = %d, want 60", record.QualityScore)
	}
	if record.QualityLabel != "Good" {
		t.Errorf("QualityLabel = %q, want Good", record.QualityLabel)
	}
	if record.FrequencyLabel != "Medium" {
		t.Errorf("FrequencyLabel = %q, want Medium", record.FrequencyLabel)
	}
	if len(record.RecentCommits) != 10 {
		t.Errorf("RecentCommits has %d entries, want 10", len(record.RecentCommits))
	}
}

func TestCommitActivityNoEvents(t *testing.T) {
	toolset, srv := newTestToolset(map[string]string{"/users/dev/events": `[]`})
	defer srv.Close()

	record, err := toolset.CommitActivity(context.Background(), "dev")
	if err != nil {
		t.Fatalf("CommitActivity: %v", err)
	}
	if record.TotalRecentCommits != 0 || record.AverageCommitsPerWeek != 0 || record.QualityScore != 0 {
		t.Errorf("empty feed must yield zeroes, got %+v", record)
	}
	if record.QualityLabel != "Poor" || record.FrequencyLabel != "Low" {
		t.Errorf("labels = %q/%q, want Poor/Low", record.QualityLabel, record.FrequencyLabel)
	}
}

func TestFrequencyLabel(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{11, "Very High"},
		{10.1, "Very High"},
		{10, "High"},
		{6, "High"},
		{5, "Medium"},
		{2.3, "Medium"},
		{2, "Low"},
		{0.5, "Low"},
		{0, "Low"},
	}
	for _, tt := range tests {
		if got := FrequencyLabel(tt.avg); got != tt.want {
			t.Errorf("FrequencyLabel(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}
