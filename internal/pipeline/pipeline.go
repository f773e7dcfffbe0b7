// Package pipeline orchestrates the scan: collect, fetch, then
// summarize/evaluate every article with content.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"retailscope/internal/cache"
	"retailscope/internal/collect"
	"retailscope/internal/config"
	"retailscope/internal/database"
	"retailscope/internal/evaluate"
	"retailscope/internal/fetch"
	"retailscope/internal/llm"
	"retailscope/internal/relevance"
	"retailscope/internal/summarize"
)

const defaultConcurrency = 3

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	RunID string
	Steps []StepResult
}

// Pipeline orchestrates the 3-step scan pipeline.
type Pipeline struct {
	rules      *config.Loader
	db         *database.DB
	provider   llm.Provider
	store      *cache.Cache
	summarizer *summarize.Summarizer
	categorize *summarize.Categorizer
}

// New creates a pipeline. The summary cache lives here so repeated runs in
// one process reuse chunk and article summaries.
func New(rules *config.Loader, db *database.DB) *Pipeline {
	cfg := rules.Current()
	provider := llm.CreateProvider(cfg.LLM)
	store := cache.New(cfg.Cache.MaxEntries)

	return &Pipeline{
		rules:      rules,
		db:         db,
		provider:   provider,
		store:      store,
		summarizer: summarize.NewSummarizer(provider, store, rules),
		categorize: summarize.NewCategorizer(provider, rules),
	}
}

// Run executes the full pipeline and records a run report.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &Result{RunID: uuid.NewString()}
	report := &database.RunReport{ID: r.RunID}
	if err := p.db.StartRun(r.RunID); err != nil {
		slog.Error("recording run start", slog.Any("error", err))
	}

	step := p.runCollect(report)
	r.Steps = append(r.Steps, step)

	step = p.runFetch(report)
	r.Steps = append(r.Steps, step)

	step = p.runProcess(ctx, report)
	r.Steps = append(r.Steps, step)

	if err := p.db.FinishRun(report); err != nil {
		slog.Error("recording run finish", slog.Any("error", err))
	}
	return r
}

// DryRun shows what would be done without executing.
func (p *Pipeline) DryRun() *Result {
	r := &Result{RunID: "dry-run"}

	articles, _ := p.db.ListArticles(0)
	r.Steps = append(r.Steps, StepResult{
		Name:    "Collect",
		Summary: fmt.Sprintf("[dry-run] %d articles already in DB", len(articles)),
	})

	needing, _ := p.db.GetArticlesNeedingFetch()
	r.Steps = append(r.Steps, StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("[dry-run] %d articles need content fetching", len(needing)),
	})

	pending, _ := p.db.GetArticlesNeedingProcessing()
	r.Steps = append(r.Steps, StepResult{
		Name:    "Process",
		Summary: fmt.Sprintf("[dry-run] %d articles need summarization and evaluation", len(pending)),
	})

	return r
}

func (p *Pipeline) runCollect(report *database.RunReport) StepResult {
	slog.Info("step 1/3: collecting articles")
	collector := collect.NewCollector(p.rules.Current(), p.db)
	result := collector.Collect()
	report.Collected = result.NewArticles
	return StepResult{
		Name:    "Collect",
		Summary: fmt.Sprintf("Found %d new articles (%d total, %d duplicates)", result.NewArticles, result.TotalFound, result.Duplicates),
	}
}

func (p *Pipeline) runFetch(report *database.RunReport) StepResult {
	slog.Info("step 2/3: fetching article content")
	fetcher := fetch.NewContentFetcher(p.db, 15*time.Second)
	result := fetcher.FetchMissingContent()
	report.Fetched = result.Fetched
	return StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("Fetched %d articles, %d failed", result.Fetched, result.Failed),
	}
}

func (p *Pipeline) runProcess(ctx context.Context, report *database.RunReport) StepResult {
	slog.Info("step 3/3: summarizing and evaluating articles")
	articles, err := p.db.GetArticlesNeedingProcessing()
	if err != nil {
		return StepResult{Name: "Process", Err: err}
	}
	if len(articles) == 0 {
		return StepResult{Name: "Process", Summary: "No articles need processing"}
	}

	concurrency := p.rules.Current().Pipeline.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		sem      = make(chan struct{}, concurrency)
		included int
		cut      int
		skipped  int
	)

	for i := range articles {
		article := articles[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			assessment, relevant := p.processArticle(ctx, &article)
			mu.Lock()
			defer mu.Unlock()
			if !relevant {
				skipped++
				return
			}
			switch assessment {
			case evaluate.AssessmentInclude:
				included++
			case evaluate.AssessmentCut:
				cut++
			}
		}()
	}
	wg.Wait()

	report.Processed = len(articles)
	report.Included = included
	report.Cut = cut
	return StepResult{
		Name:    "Process",
		Summary: fmt.Sprintf("Processed %d articles: %d include, %d cut, %d not AI-relevant", len(articles), included, cut, skipped),
	}
}

// processArticle runs one article through summarize, relevance gate,
// categorize and evaluate, then persists the outcome. The relevance gate is
// the only thing that excludes an article; every summarization failure still
// produces a stored placeholder takeaway.
func (p *Pipeline) processArticle(ctx context.Context, a *database.Article) (evaluate.Assessment, bool) {
	content := ""
	if a.Content != nil {
		content = *a.Content
	}

	summary := p.summarizer.Summarize(ctx, content)
	a.Takeaway = &summary.Takeaway
	a.KeyPoints = summary.KeyPoints

	rel := relevance.Check(a.Title, content, summary.Takeaway)
	a.RelevanceConfidence = &rel.Confidence
	a.RelevanceReason = &rel.Reason

	if !rel.Relevant {
		slog.Info("article not AI-relevant, skipping evaluation",
			slog.String("title", a.Title), slog.Int("confidence", rel.Confidence))
		if err := p.db.UpsertArticle(a); err != nil {
			slog.Error("storing article", slog.String("url", a.URL), slog.Any("error", err))
		}
		return "", false
	}

	cat := p.categorize.Categorize(ctx, a.Title, content)
	a.Category = &cat.Category
	a.CategoryJustification = &cat.Justification

	rules := evaluate.RulesFrom(p.rules.Current().Evaluation)
	eval := evaluate.Evaluate(a.Title, content, summary.Takeaway, rules)
	assessment := string(eval.Assessment)
	a.Assessment = &assessment
	a.AssessmentScore = &eval.Score
	a.CriteriaResults = make([]database.CriterionResult, len(eval.Criteria))
	for i, c := range eval.Criteria {
		a.CriteriaResults[i] = database.CriterionResult{Name: c.Name, Status: c.Status, Notes: c.Notes}
	}

	if err := p.db.UpsertArticle(a); err != nil {
		slog.Error("storing article", slog.String("url", a.URL), slog.Any("error", err))
	}
	return eval.Assessment, true
}
