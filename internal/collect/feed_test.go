package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mmcdole/gofeed"
)

func TestMatchesKeywords(t *testing.T) {
	entry := FeedEntry{Title: "Walmart bets on AI", Content: "Generative tools in stores."}

	assert.True(t, matchesKeywords(entry, []string{"ai"}))
	assert.True(t, matchesKeywords(entry, []string{"generative"}))
	assert.False(t, matchesKeywords(entry, []string{"blockchain"}))
	assert.True(t, matchesKeywords(entry, nil), "no keywords accepts everything")
}

func TestStripHTML(t *testing.T) {
	got := stripHTML("<p>Hello &amp; welcome to <b>retail</b>&nbsp;news</p>")
	assert.Equal(t, "Hello & welcome to retail news", got)
}

func TestIsWithinWindow(t *testing.T) {
	cutoff := time.Now().AddDate(0, 0, -7)

	assert.True(t, isWithinWindow(time.Now().Format("2006-01-02"), cutoff))
	assert.False(t, isWithinWindow(time.Now().AddDate(0, 0, -30).Format("2006-01-02"), cutoff))
	assert.True(t, isWithinWindow("", cutoff), "missing date gets the benefit of the doubt")
	assert.True(t, isWithinWindow("not-a-date", cutoff))
}

func TestParseItem(t *testing.T) {
	published := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "  Retailer adopts AI  ",
		Link:            "https://example.com/story",
		Description:     "<p>Some <em>summary</em> text</p>",
		PublishedParsed: &published,
	}

	entry := parseItem(item, "example.com")
	require.NotNil(t, entry)
	assert.Equal(t, "Retailer adopts AI", entry.Title)
	assert.Equal(t, "https://example.com/story", entry.URL)
	assert.Equal(t, "2026-08-20", entry.PublishedDate)
	assert.Equal(t, "Some summary text", entry.Content)
	assert.Equal(t, "example.com", entry.Source)
}

func TestParseItemRejectsMissingFields(t *testing.T) {
	assert.Nil(t, parseItem(&gofeed.Item{Title: "No link"}, "src"))
	assert.Nil(t, parseItem(&gofeed.Item{Link: "https://example.com"}, "src"))
}

func TestExtractSourceName(t *testing.T) {
	assert.Equal(t, "retaildive.com", extractSourceName("https://www.retaildive.com/feeds/news/"))
	assert.Equal(t, "not a url", extractSourceName("not a url"))
}
