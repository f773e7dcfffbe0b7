// Package fetch downloads full article text via HTTP and readability
// extraction.
package fetch

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"retailscope/internal/database"
)

// minExtractedChars is the smallest body worth keeping; anything shorter is
// treated as an extraction failure.
const minExtractedChars = 100

// Result holds the results of a content fetch run.
type Result struct {
	Fetched int
	Failed  int
}

// ContentFetcher fetches full article text via HTTP + readability extraction.
type ContentFetcher struct {
	db     *database.DB
	client *http.Client
}

// NewContentFetcher creates a new content fetcher.
func NewContentFetcher(db *database.DB, timeout time.Duration) *ContentFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &ContentFetcher{
		db: db,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// FetchMissingContent fetches content for articles that have none yet. A
// fetch failure marks the article as attempted rather than erroring the run;
// articles the pipeline cannot read are simply skipped downstream. After one
// HTTP-level failure for a domain, remaining articles from that domain are
// skipped for the rest of the run.
func (f *ContentFetcher) FetchMissingContent() *Result {
	articles, err := f.db.GetArticlesNeedingFetch()
	if err != nil {
		slog.Error("getting articles needing fetch", slog.Any("error", err))
		return &Result{}
	}

	if len(articles) == 0 {
		slog.Info("no articles need content fetching")
		return &Result{}
	}

	result := &Result{}
	failedDomains := make(map[string]struct{})

	for _, article := range articles {
		u, _ := url.Parse(article.URL)
		domain := ""
		if u != nil {
			domain = strings.ToLower(u.Host)
		}

		if _, failed := failedDomains[domain]; failed {
			f.db.MarkArticleFetchAttempted(article.ID)
			result.Failed++
			continue
		}

		content, httpErr := f.fetchArticleContent(article.URL)
		if httpErr != nil {
			f.db.MarkArticleFetchAttempted(article.ID)
			result.Failed++
			if domain != "" {
				failedDomains[domain] = struct{}{}
			}
			slog.Warn("http error, skipping remaining from domain",
				slog.String("url", article.URL), slog.String("domain", domain))
			continue
		}

		if content != "" {
			f.db.UpdateArticleContent(article.ID, &content)
			result.Fetched++
			slog.Info("fetched content", slog.String("title", article.Title))
		} else {
			f.db.MarkArticleFetchAttempted(article.ID)
			result.Failed++
			slog.Warn("no extractable content", slog.String("url", article.URL))
		}
	}

	slog.Info("content fetch complete",
		slog.Int("fetched", result.Fetched), slog.Int("failed", result.Failed))
	return result
}

func (f *ContentFetcher) fetchArticleContent(articleURL string) (string, error) {
	req, err := http.NewRequest("GET", articleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "retailscope/1.0 (news aggregator)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil // connection error, not HTTP error
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &httpError{code: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil
	}

	parsedURL, _ := url.Parse(articleURL)
	article, err := readability.FromReader(strings.NewReader(string(bodyBytes)), parsedURL)
	if err != nil {
		return "", nil
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) > minExtractedChars {
		return text, nil
	}
	return "", nil
}

type httpError struct {
	code int
}

func (e *httpError) Error() string {
	return http.StatusText(e.code)
}
