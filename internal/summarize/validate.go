package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"retailscope/internal/config"
	"retailscope/internal/llm"
)

const validationSystemPrompt = "You are a validation system that checks takeaways against rubrics and provides refinement instructions."

const validationPrompt = `Evaluate this takeaway against the rubric and provide specific refinement instructions:

RUBRIC:
%s

TAKEAWAY TO EVALUATE:
"%s"

CONTENT SAMPLE (for grounding):
%s

Respond with JSON in this format:
{
    "passes_validation": true/false,
    "word_count": actual_word_count,
    "issues_found": ["issue1", "issue2"],
    "refinement_instructions": "Specific instructions for fixing the takeaway"
}`

// Validation is the result of checking a candidate takeaway. Empty
// RefinementInstructions means no refinement is needed.
type Validation struct {
	Passes                 bool
	WordCount              int
	SentenceCount          int
	Issues                 []string
	RefinementInstructions string
}

// Validator checks takeaways with two independent layers: deterministic
// structural rules derived from the rubric bounds, and a qualitative LLM
// judge. Both must pass. The judge fails open; only the structural layer is
// guaranteed.
type Validator struct {
	provider llm.Provider
	rules    *config.Loader
}

// NewValidator creates a takeaway validator.
func NewValidator(provider llm.Provider, rules *config.Loader) *Validator {
	return &Validator{provider: provider, rules: rules}
}

var bulletRe = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+\.|[a-z]\))\s+`)

// leaderPatterns reject takeaways that address or label a reader persona.
// Summaries must speak about industry trends, never to "AI leaders" or
// "retail executives".
var leaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:ai|retail|business|industry)\s+(?:leaders?|executives?|professionals?|decision[ -]makers?)\b`),
	regexp.MustCompile(`(?i)\b(?:leaders?|executives?)\s+in\s+(?:retail|ecommerce|e-commerce)\b`),
	regexp.MustCompile(`(?i)\b(?:leaders?|executives?)\s+(?:should|must|need to|can)\b`),
	regexp.MustCompile(`(?i)\bfor\s+(?:those|anyone|readers)\s+(?:leading|running)\b`),
}

var sentenceMarkRe = regexp.MustCompile(`[.!?]+`)

// Validate checks a candidate takeaway against the current rubric. The
// content sample grounds the qualitative judge; pass the chunk or combined
// text the takeaway was generated from.
func (v *Validator) Validate(ctx context.Context, takeaway, contentSample string) Validation {
	cfg := v.rules.Current().Rubric

	structural := checkStructure(takeaway, cfg)
	result := Validation{
		Passes:        len(structural) == 0,
		WordCount:     len(strings.Fields(takeaway)),
		SentenceCount: len(sentenceMarkRe.FindAllString(takeaway, -1)),
		Issues:        structural,
	}

	judge := v.judgeTakeaway(ctx, takeaway, contentSample, cfg.Text)
	if !judge.passes {
		result.Passes = false
		result.Issues = append(result.Issues, judge.issues...)
	}

	result.RefinementInstructions = buildInstructions(structural, judge)
	return result
}

// checkStructure runs the deterministic rules: word count, sentence count,
// bullet markers, and leader phrasing. Returns one issue per violation.
func checkStructure(takeaway string, cfg config.Rubric) []string {
	var issues []string

	words := len(strings.Fields(takeaway))
	if words < cfg.MinWords || words > cfg.MaxWords {
		issues = append(issues, fmt.Sprintf(
			"word count %d outside the %d-%d range", words, cfg.MinWords, cfg.MaxWords))
	}

	sentences := len(sentenceMarkRe.FindAllString(takeaway, -1))
	if sentences < cfg.MinSentences || sentences > cfg.MaxSentences {
		issues = append(issues, fmt.Sprintf(
			"sentence count %d outside the %d-%d range", sentences, cfg.MinSentences, cfg.MaxSentences))
	}

	if bulletRe.MatchString(takeaway) {
		issues = append(issues, "contains list or bullet formatting; write flowing prose")
	}

	for _, pat := range leaderPatterns {
		if m := pat.FindString(takeaway); m != "" {
			issues = append(issues, fmt.Sprintf(
				"addresses a target audience / leader persona (%q); describe industry trends instead", m))
			break
		}
	}

	return issues
}

type judgeResult struct {
	passes      bool
	issues      []string
	suggestions string
}

// judgeTakeaway asks the LLM judge for a qualitative verdict. Any error or
// unparseable output defaults to passing: validation never blocks solely on
// judge unavailability.
func (v *Validator) judgeTakeaway(ctx context.Context, takeaway, contentSample, rubric string) judgeResult {
	passOpen := judgeResult{passes: true}
	if v.provider == nil {
		return passOpen
	}

	if len(contentSample) > 1000 {
		contentSample = contentSample[:1000]
	}
	prompt := fmt.Sprintf(validationPrompt, rubric, takeaway, contentSample)

	text, err := v.provider.Generate(ctx, llm.Request{
		System:    validationSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 1000,
		JSON:      true,
	})
	if err != nil {
		slog.Warn("takeaway judge unavailable", slog.String("error", err.Error()))
		return passOpen
	}

	parsed := llm.ParseJSONObject(text)
	if parsed == nil {
		return passOpen
	}

	return judgeResult{
		passes:      llm.GetBool(parsed, "passes_validation", true),
		issues:      llm.GetStringList(parsed, "issues_found"),
		suggestions: llm.GetString(parsed, "refinement_instructions", ""),
	}
}

// buildInstructions synthesizes refinement instructions: structural issues
// become instruction lines; the judge's suggestions are used when the
// structural layer already passes, or appended when both layers fail. Empty
// means no refinement needed.
func buildInstructions(structural []string, judge judgeResult) string {
	var lines []string
	for _, issue := range structural {
		lines = append(lines, "- Fix: "+issue)
	}
	if !judge.passes && strings.TrimSpace(judge.suggestions) != "" {
		lines = append(lines, strings.TrimSpace(judge.suggestions))
	}
	return strings.Join(lines, "\n")
}
