// Package collect pulls article candidates from configured RSS/Atom feeds.
package collect

import (
	"log/slog"

	"retailscope/internal/config"
	"retailscope/internal/database"
)

// Result holds the results of a collection run.
type Result struct {
	TotalFound  int
	NewArticles int
	Duplicates  int
	Filtered    int
	Sources     map[string]int
}

// Collector gathers article candidates from the configured feeds and stores
// the new ones.
type Collector struct {
	db         *database.DB
	feedParser *FeedParser
	keywords   []string
	daysBack   int
}

// NewCollector creates a collector from the current config snapshot.
func NewCollector(cfg *config.Config, db *database.DB) *Collector {
	c := &Collector{
		db:       db,
		keywords: cfg.Sources.Keywords,
		daysBack: cfg.Pipeline.LookbackDays,
	}

	if len(cfg.Sources.Feeds) > 0 {
		feeds := make([]FeedConfig, len(cfg.Sources.Feeds))
		for i, f := range cfg.Sources.Feeds {
			feeds[i] = FeedConfig{URL: f.URL, Name: f.Name}
		}
		c.feedParser = NewFeedParser(feeds)
	}

	return c
}

// Collect parses all feeds and inserts new candidates. Entries whose title
// and summary text match none of the configured keywords are skipped before
// they ever reach the database.
func (c *Collector) Collect() *Result {
	r := &Result{Sources: make(map[string]int)}
	if c.feedParser == nil {
		slog.Warn("no feeds configured, nothing to collect")
		return r
	}

	entries := c.feedParser.ParseAll(c.daysBack)
	r.TotalFound = len(entries)

	for _, entry := range entries {
		if !matchesKeywords(entry, c.keywords) {
			r.Filtered++
			continue
		}

		var source, pubDate, content *string
		if entry.Source != "" {
			source = &entry.Source
		}
		if entry.PublishedDate != "" {
			pubDate = &entry.PublishedDate
		}
		if entry.Content != "" {
			content = &entry.Content
		}

		id, err := c.db.InsertCandidate(entry.URL, entry.Title, source, pubDate, content)
		if err != nil {
			slog.Error("inserting candidate", slog.String("url", entry.URL), slog.Any("error", err))
			continue
		}
		if id > 0 {
			r.NewArticles++
			r.Sources[entry.Source]++
		} else {
			r.Duplicates++
		}
	}

	slog.Info("collection complete",
		slog.Int("found", r.TotalFound),
		slog.Int("new", r.NewArticles),
		slog.Int("duplicates", r.Duplicates),
		slog.Int("filtered", r.Filtered))
	return r
}
