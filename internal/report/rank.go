// Package report orders evaluated articles and renders them as CSV or
// markdown reports.
package report

import (
	"sort"

	"retailscope/internal/database"
	"retailscope/internal/evaluate"
)

// Rank orders articles for presentation: INCLUDE before OK before CUT, then
// by descending assessment score. The sort is stable so equal-key articles
// keep their input order. The input slice is not modified.
func Rank(articles []database.Article) []database.Article {
	ranked := make([]database.Article, len(articles))
	copy(ranked, articles)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := priority(ranked[i]), priority(ranked[j])
		if pi != pj {
			return pi < pj
		}
		return score(ranked[i]) > score(ranked[j])
	})
	return ranked
}

func priority(a database.Article) int {
	if a.Assessment == nil {
		return evaluate.Assessment("").Priority()
	}
	return evaluate.Assessment(*a.Assessment).Priority()
}

func score(a database.Article) int {
	if a.AssessmentScore == nil {
		return 0
	}
	return *a.AssessmentScore
}
