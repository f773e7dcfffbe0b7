// Package summarize turns raw article text into a single rubric-constrained
// takeaway: chunked generation, structural plus LLM validation with one
// refinement attempt, and a combination pass over chunk results. Every
// failure path yields a labeled placeholder; Summarize never errors.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"retailscope/internal/cache"
	"retailscope/internal/config"
	"retailscope/internal/llm"
)

const (
	// minContentLength is the minimum raw length worth sending anywhere.
	minContentLength = 100
	// maxChunkTokens sizes chunks for a single completion call.
	maxChunkTokens = 40000
	// maxChunkChars is the truncation safety valve for a pathological chunk.
	maxChunkChars = 120000
	// combineInputCap bounds the combined text embedded in the combine prompt.
	combineInputCap = 50000
)

// Cache operation tags. Chunk and combine results share the short TTL; the
// final article result uses the long one.
const (
	opChunk   = "chunk"
	opCombine = "combine"
	opArticle = "article_summary"
)

// Placeholder takeaways. Downstream consumers treat the takeaway as
// always-present, so every failure maps to one of these.
const (
	PlaceholderTooShort    = "Article content is too short or empty."
	PlaceholderUnavailable = "Unable to analyze content at this time."

	placeholderUnprocessable = "Unable to process content."
	placeholderNotProcessed  = "Content could not be processed properly."
	placeholderAPIError      = "Unable to process content due to API limitations."
	placeholderEmptyResponse = "Error: Empty response from AI"
	placeholderExtract       = "Error extracting content."
	placeholderCombineAPI    = "Unable to combine summaries due to API limitations."
	placeholderNoMeaning     = "Unable to extract meaningful content from the articles."
)

const generateSystemPrompt = `You are a JSON generator. You must return ONLY valid, complete JSON in format {"takeaway": "text"}. Ensure all quotes are properly escaped and closed.`

const chunkPrompt = `Analyze this text and create a business-focused takeaway following these STRICT RULES:

%s

Respond with valid JSON only: {"takeaway": "Your concise takeaway here"}
Ensure your JSON has properly closed quotes and braces.

%s`

const combinePrompt = `Combine these takeaways into a single business-focused takeaway following these STRICT RULES:

%s

Respond in JSON format: {"takeaway": "combined takeaway"}

Takeaways to combine: %s`

// Summary is the result of summarizing one article.
type Summary struct {
	Takeaway  string
	KeyPoints []string
}

// Summarizer orchestrates chunking, per-chunk generation with a single
// validate-refine pass, and combination. Chunks of one article are processed
// strictly sequentially; cross-article parallelism happens above this type.
type Summarizer struct {
	provider  llm.Provider
	store     *cache.Cache
	rules     *config.Loader
	validator *Validator
	refiner   *Refiner

	opTTL      time.Duration
	articleTTL time.Duration
}

// NewSummarizer creates a Summarizer. The cache is shared across workers;
// TTLs come from the cache section of the current config.
func NewSummarizer(provider llm.Provider, store *cache.Cache, rules *config.Loader) *Summarizer {
	cfg := rules.Current().Cache
	return &Summarizer{
		provider:   provider,
		store:      store,
		rules:      rules,
		validator:  NewValidator(provider, rules),
		refiner:    NewRefiner(provider, rules),
		opTTL:      time.Duration(cfg.OperationTTLHours) * time.Hour,
		articleTTL: time.Duration(cfg.ArticleTTLHours) * time.Hour,
	}
}

// Summarize produces the final takeaway for an article. It never returns an
// error: failures degrade to placeholder takeaways.
func (s *Summarizer) Summarize(ctx context.Context, content string) Summary {
	if len(content) < minContentLength {
		return Summary{Takeaway: PlaceholderTooShort}
	}

	content = NormalizeWhitespace(content)

	articleKey := cache.Key(opArticle, content)
	if v, ok := s.store.Get(articleKey, s.articleTTL); ok {
		slog.Debug("article summary cache hit")
		return v.(Summary)
	}

	chunks := SplitChunks(content, maxChunkTokens)
	if len(chunks) == 0 {
		return Summary{Takeaway: placeholderUnprocessable}
	}

	var chunkSummaries []Summary
	for i, chunk := range chunks {
		if len(chunk) > maxChunkChars {
			slog.Warn("chunk too large, truncating",
				slog.Int("chunk", i+1), slog.Int("chars", len(chunk)))
			chunk = chunk[:maxChunkChars]
		}
		slog.Debug("processing chunk",
			slog.Int("chunk", i+1), slog.Int("total", len(chunks)))
		chunkSummaries = append(chunkSummaries, s.processChunk(ctx, chunk))
	}

	if len(chunkSummaries) == 0 {
		return Summary{Takeaway: placeholderNotProcessed}
	}

	var final Summary
	if len(chunkSummaries) == 1 {
		final = chunkSummaries[0]
	} else {
		final = s.combine(ctx, chunkSummaries)
	}

	s.store.Set(articleKey, final)
	return final
}

// processChunk generates and validates a takeaway for one chunk. Results are
// memoized by content fingerprint so reprocessing identical chunks is free.
func (s *Summarizer) processChunk(ctx context.Context, chunk string) Summary {
	key := cache.Key(opChunk, chunk)
	if v, ok := s.store.Get(key, s.opTTL); ok {
		return v.(Summary)
	}

	result := s.generateChunk(ctx, chunk)
	s.store.Set(key, result)
	return result
}

func (s *Summarizer) generateChunk(ctx context.Context, chunk string) Summary {
	if s.provider == nil {
		return Summary{Takeaway: placeholderAPIError}
	}

	rubric := s.rules.Current().Rubric.Text
	prompt := fmt.Sprintf(chunkPrompt, rubric, chunk)

	text, err := s.provider.Generate(ctx, llm.Request{
		System:    generateSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 2000,
		JSON:      true,
	})
	if err != nil {
		slog.Warn("chunk generation failed", slog.String("error", err.Error()))
		return Summary{Takeaway: placeholderAPIError}
	}
	if strings.TrimSpace(text) == "" {
		return Summary{Takeaway: placeholderEmptyResponse}
	}

	if parsed := llm.ParseJSONObject(text); parsed != nil {
		takeaway := llm.GetString(parsed, "takeaway", "")
		if takeaway != "" {
			return Summary{
				Takeaway:  s.validateAndRefine(ctx, takeaway, chunk),
				KeyPoints: llm.GetStringList(parsed, "key_points"),
			}
		}
	}

	// Malformed JSON: try the progressive salvage chain before giving up.
	if salvaged, ok := llm.SalvageTakeaway(text); ok {
		return Summary{Takeaway: salvaged}
	}
	return Summary{Takeaway: placeholderExtract}
}

// combine merges chunk takeaways into one, falling back to the first chunk's
// takeaway and then a placeholder when combination fails. Memoized like
// chunk processing.
func (s *Summarizer) combine(ctx context.Context, summaries []Summary) Summary {
	var takeaways []string
	for _, sum := range summaries {
		if sum.Takeaway != "" {
			takeaways = append(takeaways, sum.Takeaway)
		}
	}
	combined := strings.Join(takeaways, " ")
	if len(combined) < 10 {
		return Summary{Takeaway: placeholderNoMeaning}
	}

	key := cache.Key(opCombine, combined)
	if v, ok := s.store.Get(key, s.opTTL); ok {
		return v.(Summary)
	}

	result := s.generateCombined(ctx, combined, summaries[0])
	s.store.Set(key, result)
	return result
}

func (s *Summarizer) generateCombined(ctx context.Context, combined string, first Summary) Summary {
	if s.provider == nil {
		return first
	}

	input := combined
	if len(input) > combineInputCap {
		input = input[:combineInputCap]
	}

	rubric := s.rules.Current().Rubric.Text
	prompt := fmt.Sprintf(combinePrompt, rubric, input)

	text, err := s.provider.Generate(ctx, llm.Request{
		System:    generateSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 2000,
		JSON:      true,
	})
	if err != nil {
		slog.Warn("summary combination failed", slog.String("error", err.Error()))
		if first.Takeaway != "" {
			return first
		}
		return Summary{Takeaway: placeholderCombineAPI}
	}
	if strings.TrimSpace(text) == "" {
		return Summary{Takeaway: placeholderEmptyResponse}
	}

	if parsed := llm.ParseJSONObject(text); parsed != nil {
		takeaway := llm.GetString(parsed, "takeaway", "")
		if takeaway != "" {
			return Summary{
				Takeaway:  s.validateAndRefine(ctx, takeaway, combined),
				KeyPoints: llm.GetStringList(parsed, "key_points"),
			}
		}
	}

	if salvaged, ok := llm.SalvageTakeaway(text); ok {
		return Summary{Takeaway: salvaged}
	}

	// Last resort: the raw concatenation is still a usable takeaway.
	if len(combined) > 2000 {
		combined = combined[:2000]
	}
	return Summary{Takeaway: combined}
}

// validateAndRefine runs validation and at most one refinement attempt. The
// refiner's output is accepted as-is; there is no iterative loop, bounding
// latency and cost per chunk.
func (s *Summarizer) validateAndRefine(ctx context.Context, takeaway, source string) string {
	v := s.validator.Validate(ctx, takeaway, source)
	if v.Passes || strings.TrimSpace(v.RefinementInstructions) == "" {
		return takeaway
	}
	slog.Debug("takeaway failed validation, refining",
		slog.Int("words", v.WordCount), slog.Int("issues", len(v.Issues)))
	return s.refiner.Refine(ctx, takeaway, v.RefinementInstructions, source)
}
