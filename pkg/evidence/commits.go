package evidence

import (
	"context"
	"math"
	"strings"
	"time"
)

type CommitSummary struct {
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

type CommitActivityRecord struct {
	RecentCommits         []CommitSummary `json:"recentCommits"`
	TotalRecentCommits    int             `json:"totalRecentCommits"`
	AverageCommitsPerWeek float64         `json:"averageCommitsPerWeek"`
	QualityScore          int             `json:"qualityScore"`
	QualityLabel          string          `json:"qualityLabel"`
	FrequencyLabel        string          `json:"frequencyLabel"`
}

// CommitActivity flattens push events from the last 100 activity entries
// into per-commit records, keeps commits from the last 30 days and
// derives weekly frequency plus a message-quality heuristic. Additions
// and deletions are not available at event granularity and stay 0.
func (t *Toolset) CommitActivity(ctx context.Context, username string) (*CommitActivityRecord, error) {
	events, err := t.gh.ListEvents(ctx, username)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	var recent []CommitSummary
	for _, event := range events {
		if event.Type != "PushEvent" {
			continue
		}
		if !event.CreatedAt.After(cutoff) {
			continue
		}
		for _, commit := range event.Payload.Commits {
			recent = append(recent, CommitSummary{
				Message: commit.Message,
				Date:    event.CreatedAt,
			})
		}
	}

	// 30 days is ~4.3 weeks; one decimal place.
	avgPerWeek := math.Round(float64(len(recent))/4.3*10) / 10

	good := 0
	for _, commit := range recent {
		lower := strings.ToLower(commit.Message)
		if len(commit.Message) > 10 && !strings.Contains(lower, "fix") && !strings.Contains(lower, "update") {
			good++
		}
	}
	qualityScore := 0
	if len(recent) > 0 {
		qualityScore = int(math.Round(100 * float64(good) / float64(len(recent))))
	}

	total := len(recent)
	capped := recent
	if len(capped) > 10 {
		capped = capped[:10]
	}

	return &CommitActivityRecord{
		RecentCommits:         capped,
		TotalRecentCommits:    total,
		AverageCommitsPerWeek: avgPerWeek,
		QualityScore:          qualityScore,
		QualityLabel:          qualityLabel(qualityScore),
		FrequencyLabel:        FrequencyLabel(avgPerWeek),
	}, nil
}

func qualityLabel(score int) string {
	switch {
	case score > 70:
		return "Excellent"
	case score > 50:
		return "Good"
	case score > 30:
		return "Fair"
	default:
		return "Poor"
	}
}

// FrequencyLabel buckets a weekly commit average.
func FrequencyLabel(avgPerWeek float64) string {
	switch {
	case avgPerWeek > 10:
		return "Very High"
	case avgPerWeek > 5:
		return "High"
	case avgPerWeek > 2:
		return "Medium"
	default:
		return "Low"
	}
}
