package evidence

import (
	"context"
	"sort"
)

type StarredSummary struct {
	Name        string  `json:"name"`
	Language    *string `json:"language"`
	Description *string `json:"description"`
	Stars       int     `json:"stars"`
}

type StarredRecord struct {
	TotalStarred int              `json:"totalStarred"`
	Repositories []StarredSummary `json:"repositories"`
	TopLanguages []LanguageCount  `json:"topLanguages"`
}

// Starred returns up to 20 starred repositories (most recently starred
// first): the total count, the first 10 as detailed entries and the top 5
// languages among all fetched stars by descending frequency.
func (t *Toolset) Starred(ctx context.Context, username string) (*StarredRecord, error) {
	repos, err := t.gh.ListStarred(ctx, username)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var seen []string
	for _, repo := range repos {
		if repo.Language == nil || *repo.Language == "" {
			continue
		}
		lang := *repo.Language
		if _, ok := counts[lang]; !ok {
			seen = append(seen, lang)
		}
		counts[lang]++
	}
	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})

	top := make([]LanguageCount, 0, 5)
	for _, lang := range seen {
		if len(top) == 5 {
			break
		}
		top = append(top, LanguageCount{Language: lang, Count: counts[lang]})
	}

	detailed := repos
	if len(detailed) > 10 {
		detailed = detailed[:10]
	}
	summaries := make([]StarredSummary, 0, len(detailed))
	for _, repo := range detailed {
		summaries = append(summaries, StarredSummary{
			Name:        repo.FullName,
			Language:    repo.Language,
			Description: repo.Description,
			Stars:       repo.StargazersCount,
		})
	}

	return &StarredRecord{
		TotalStarred: len(repos),
		Repositories: summaries,
		TopLanguages: top,
	}, nil
}
