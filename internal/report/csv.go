package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"retailscope/internal/database"
)

var csvHeader = []string{
	"title", "url", "source", "published_date",
	"assessment", "assessment_score", "relevance_confidence",
	"category", "takeaway", "criteria_passed",
}

// WriteCSV renders articles as CSV in the given order, one row per article.
func WriteCSV(w io.Writer, articles []database.Article) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, a := range articles {
		row := []string{
			a.Title,
			a.URL,
			deref(a.Source),
			deref(a.PublishedDate),
			deref(a.Assessment),
			derefInt(a.AssessmentScore),
			derefInt(a.RelevanceConfidence),
			deref(a.Category),
			deref(a.Takeaway),
			passedCriteria(a),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", a.URL, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// passedCriteria joins the names of passing criteria for a compact column.
func passedCriteria(a database.Article) string {
	var passed []string
	for _, c := range a.CriteriaResults {
		if c.Status {
			passed = append(passed, c.Name)
		}
	}
	return strings.Join(passed, "; ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
