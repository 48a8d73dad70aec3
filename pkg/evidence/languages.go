package evidence

import (
	"context"
	"math"
	"sort"
)

type LanguageStat struct {
	Language   string `json:"language"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// LanguageStatsRecord holds per-language repository counts. TotalRepos
// counts only repositories that declare a primary language; repositories
// without one contribute to neither the counts nor the percentages.
type LanguageStatsRecord struct {
	TopLanguages []LanguageStat `json:"topLanguages"`
	Languages    map[string]int `json:"languages"`
	TotalRepos   int            `json:"totalRepos"`
}

// LanguageStats counts repositories per declared primary language across
// up to 100 repositories and returns the top 5 by descending count.
// Equal-count ordering follows first-seen order and is not guaranteed.
func (t *Toolset) LanguageStats(ctx context.Context, username string) (*LanguageStatsRecord, error) {
	repos, err := t.gh.ListAllRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var seen []string
	total := 0
	for _, repo := range repos {
		if repo.Language == nil || *repo.Language == "" {
			continue
		}
		lang := *repo.Language
		if _, ok := counts[lang]; !ok {
			seen = append(seen, lang)
		}
		counts[lang]++
		total++
	}

	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})

	top := make([]LanguageStat, 0, 5)
	for _, lang := range seen {
		if len(top) == 5 {
			break
		}
		top = append(top, LanguageStat{
			Language:   lang,
			Count:      counts[lang],
			Percentage: roundPercent(counts[lang], total),
		})
	}

	return &LanguageStatsRecord{
		TopLanguages: top,
		Languages:    counts,
		TotalRepos:   total,
	}, nil
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
