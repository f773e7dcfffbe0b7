package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

const articleColumns = `id, url, title, source, published_date, content, content_fetched,
	takeaway, key_points, relevance_confidence, relevance_reason,
	category, category_justification, assessment, assessment_score, criteria_results,
	collected_at, processed_at`

// InsertCandidate inserts a newly collected article. Returns the ID on
// success, 0 when the URL is already known.
func (db *DB) InsertCandidate(url, title string, source, publishedDate, content *string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO articles (url, title, source, published_date, content)
		VALUES (?, ?, ?, ?, ?)`,
		url, title, source, publishedDate, content,
	)
	if err != nil {
		// Duplicate URL constraint
		return 0, nil //nolint: nilerr
	}
	return result.LastInsertId()
}

// GetArticlesNeedingFetch returns articles with empty content that haven't
// had a fetch attempt yet.
func (db *DB) GetArticlesNeedingFetch() ([]Article, error) {
	rows, err := db.conn.Query(
		`SELECT ` + articleColumns + ` FROM articles
		WHERE (content IS NULL OR content = '') AND content_fetched = 0
		ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// UpdateArticleContent stores fetched content for an article.
func (db *DB) UpdateArticleContent(articleID int64, content *string) error {
	_, err := db.conn.Exec(
		"UPDATE articles SET content = ?, content_fetched = 1 WHERE id = ?",
		content, articleID,
	)
	return err
}

// MarkArticleFetchAttempted marks that we tried to fetch content.
func (db *DB) MarkArticleFetchAttempted(articleID int64) error {
	_, err := db.conn.Exec(
		"UPDATE articles SET content_fetched = 1 WHERE id = ?", articleID,
	)
	return err
}

// GetArticlesNeedingProcessing returns articles with content that have not
// been through the summarize/evaluate stage yet.
func (db *DB) GetArticlesNeedingProcessing() ([]Article, error) {
	rows, err := db.conn.Query(
		`SELECT ` + articleColumns + ` FROM articles
		WHERE content IS NOT NULL AND content != '' AND processed_at IS NULL
		ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// UpsertArticle writes an article's full pipeline state keyed by URL. The
// write is idempotent per URL: a second call with the same URL overwrites
// the derived fields instead of creating a new row.
func (db *DB) UpsertArticle(a *Article) error {
	keyPoints, err := marshalJSON(a.KeyPoints)
	if err != nil {
		return fmt.Errorf("encoding key points: %w", err)
	}
	criteria, err := marshalJSON(a.CriteriaResults)
	if err != nil {
		return fmt.Errorf("encoding criteria results: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT INTO articles (url, title, source, published_date, content, content_fetched,
			takeaway, key_points, relevance_confidence, relevance_reason,
			category, category_justification, assessment, assessment_score, criteria_results,
			processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			source = excluded.source,
			published_date = excluded.published_date,
			content = excluded.content,
			content_fetched = excluded.content_fetched,
			takeaway = excluded.takeaway,
			key_points = excluded.key_points,
			relevance_confidence = excluded.relevance_confidence,
			relevance_reason = excluded.relevance_reason,
			category = excluded.category,
			category_justification = excluded.category_justification,
			assessment = excluded.assessment,
			assessment_score = excluded.assessment_score,
			criteria_results = excluded.criteria_results,
			processed_at = excluded.processed_at`,
		a.URL, a.Title, a.Source, a.PublishedDate, a.Content, boolToInt(a.ContentFetched),
		a.Takeaway, keyPoints, a.RelevanceConfidence, a.RelevanceReason,
		a.Category, a.CategoryJustification, a.Assessment, a.AssessmentScore, criteria,
	)
	return err
}

// ListArticles returns articles ordered by recency. A limit of 0 means no
// limit.
func (db *DB) ListArticles(limit int) ([]Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY collected_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// ListProcessedArticles returns articles that have been through the full
// pipeline, ordered by recency.
func (db *DB) ListProcessedArticles() ([]Article, error) {
	rows, err := db.conn.Query(
		`SELECT ` + articleColumns + ` FROM articles
		WHERE processed_at IS NOT NULL ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// GetArticleByURL returns a single article, or nil when unknown.
func (db *DB) GetArticleByURL(url string) (*Article, error) {
	row := db.conn.QueryRow(
		`SELECT `+articleColumns+` FROM articles WHERE url = ?`, url,
	)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		a, err := scanArticleRow(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row *sql.Row) (*Article, error) {
	return scanArticleRow(row)
}

func scanArticleRow(s scanner) (*Article, error) {
	var (
		a         Article
		fetched   int
		keyPoints *string
		criteria  *string
	)
	if err := s.Scan(&a.ID, &a.URL, &a.Title, &a.Source, &a.PublishedDate,
		&a.Content, &fetched,
		&a.Takeaway, &keyPoints, &a.RelevanceConfidence, &a.RelevanceReason,
		&a.Category, &a.CategoryJustification, &a.Assessment, &a.AssessmentScore, &criteria,
		&a.CollectedAt, &a.ProcessedAt); err != nil {
		return nil, err
	}
	a.ContentFetched = fetched != 0
	if keyPoints != nil && *keyPoints != "" {
		// Ignore decode errors: a malformed blob degrades to no key points.
		json.Unmarshal([]byte(*keyPoints), &a.KeyPoints) //nolint: errcheck
	}
	if criteria != nil && *criteria != "" {
		json.Unmarshal([]byte(*criteria), &a.CriteriaResults) //nolint: errcheck
	}
	return &a, nil
}

func marshalJSON(v any) (*string, error) {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return nil, nil
		}
	case []CriterionResult:
		if len(val) == 0 {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
