package report

import (
	"fmt"
	"strings"
	"time"

	"retailscope/internal/database"
)

// Markdown renders a ranked article list as a markdown report, grouped by
// assessment. Articles must already be in presentation order.
func Markdown(articles []database.Article, generatedAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# AI in Retail — Article Report\n\n")
	fmt.Fprintf(&b, "Generated %s · %d articles\n", generatedAt.Format("2006-01-02 15:04"), len(articles))

	var current string
	for _, a := range articles {
		label := "CUT"
		if a.Assessment != nil {
			label = *a.Assessment
		}
		if label != current {
			current = label
			fmt.Fprintf(&b, "\n## %s\n", sectionTitle(label))
		}
		writeArticle(&b, a)
	}

	if len(articles) == 0 {
		b.WriteString("\nNo processed articles yet. Run a scan first.\n")
	}

	return b.String()
}

func sectionTitle(assessment string) string {
	switch assessment {
	case "INCLUDE":
		return "Include"
	case "OK":
		return "Worth a look"
	default:
		return "Cut"
	}
}

func writeArticle(b *strings.Builder, a database.Article) {
	fmt.Fprintf(b, "\n### [%s](%s)\n\n", a.Title, a.URL)

	var meta []string
	if a.Source != nil && *a.Source != "" {
		meta = append(meta, *a.Source)
	}
	if a.PublishedDate != nil && *a.PublishedDate != "" {
		meta = append(meta, *a.PublishedDate)
	}
	if a.AssessmentScore != nil {
		meta = append(meta, fmt.Sprintf("score %d", *a.AssessmentScore))
	}
	if a.Category != nil && *a.Category != "" {
		meta = append(meta, *a.Category)
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, "*%s*\n\n", strings.Join(meta, " · "))
	}

	if a.Takeaway != nil && *a.Takeaway != "" {
		fmt.Fprintf(b, "%s\n", *a.Takeaway)
	}

	if len(a.KeyPoints) > 0 {
		b.WriteString("\n")
		for _, p := range a.KeyPoints {
			fmt.Fprintf(b, "- %s\n", p)
		}
	}

	if len(a.CriteriaResults) > 0 {
		b.WriteString("\n| Criterion | Pass | Notes |\n|---|---|---|\n")
		for _, c := range a.CriteriaResults {
			mark := "✗"
			if c.Status {
				mark = "✓"
			}
			fmt.Fprintf(b, "| %s | %s | %s |\n", c.Name, mark, c.Notes)
		}
	}
}
