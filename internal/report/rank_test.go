package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailscope/internal/database"
)

func article(title, assessment string, score int) database.Article {
	return database.Article{
		URL:             "https://example.com/" + title,
		Title:           title,
		Assessment:      &assessment,
		AssessmentScore: &score,
	}
}

func titles(articles []database.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}

func TestRankCategoryBeatsScore(t *testing.T) {
	input := []database.Article{
		article("A", "OK", 80),
		article("B", "INCLUDE", 60),
		article("C", "INCLUDE", 90),
		article("D", "CUT", 100),
	}

	ranked := Rank(input)
	assert.Equal(t, []string{"C", "B", "A", "D"}, titles(ranked))
}

func TestRankIsStableForTies(t *testing.T) {
	input := []database.Article{
		article("first", "OK", 50),
		article("second", "OK", 50),
		article("third", "OK", 50),
	}

	ranked := Rank(input)
	assert.Equal(t, []string{"first", "second", "third"}, titles(ranked))
}

func TestRankUnknownAssessmentRanksWithCut(t *testing.T) {
	input := []database.Article{
		article("weird", "MAYBE", 100),
		article("ok", "OK", 10),
		article("cut", "CUT", 100),
	}

	ranked := Rank(input)
	assert.Equal(t, []string{"ok", "weird", "cut"}, titles(ranked))
}

func TestRankHandlesMissingFields(t *testing.T) {
	missing := database.Article{URL: "https://example.com/m", Title: "missing"}
	input := []database.Article{missing, article("included", "INCLUDE", 10)}

	ranked := Rank(input)
	require.Len(t, ranked, 2)
	assert.Equal(t, "included", ranked[0].Title)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	input := []database.Article{
		article("low", "CUT", 10),
		article("high", "INCLUDE", 90),
	}

	Rank(input)
	assert.Equal(t, "low", input[0].Title)
}
