package evaluate

import (
	"log/slog"
	"regexp"
	"strings"

	"retailscope/internal/config"
)

// ownershipPattern flags articles about homegrown tooling; criterion 2 only
// passes for third-party tools.
var ownershipPattern = regexp.MustCompile(`own|homegrown|proprietary|in-house|its own`)

// genericToolPattern recognizes generative-AI phrasing when no named tool
// from the configured list appears.
var genericToolPattern = regexp.MustCompile(`(?i)generative ai|large language model|llm`)

// orgFallbackPattern catches capitalized multi-word organization names not in
// the static company list. Runs against the case-sensitive text.
var orgFallbackPattern = regexp.MustCompile(`\b([A-Z][A-Za-z&]+(?:\s+[A-Z][A-Za-z&]+){0,3})\b`)

// Rules is the immutable rule set one evaluation runs against. It is built
// from a config snapshot per call, so a config change never shifts the rules
// mid-evaluation.
type Rules struct {
	Companies       []string
	Tools           []string
	RetailTerms     []string
	OutcomeTerms    []string
	DeploymentTerms []string
	MajorPlatforms  []string

	ROIPattern         *regexp.Regexp
	PromotionalPattern *regexp.Regexp

	companyMatchers []*regexp.Regexp
	toolMatchers    []*regexp.Regexp
}

// RulesFrom builds compiled rules from an evaluation config. Invalid
// configured patterns fall back to the built-in defaults rather than
// disabling a criterion.
func RulesFrom(cfg config.Evaluation) Rules {
	r := Rules{
		Companies:          cfg.Companies,
		Tools:              cfg.Tools,
		RetailTerms:        lowerAll(cfg.RetailTerms),
		OutcomeTerms:       lowerAll(cfg.OutcomeTerms),
		DeploymentTerms:    lowerAll(cfg.DeploymentTerms),
		MajorPlatforms:     lowerAll(cfg.MajorPlatforms),
		ROIPattern:         compileOrDefault(cfg.ROIPattern, `\d+%|\$\d+|\d+\s*million|\d+\s*billion|increased|reduced|improved|saved`),
		PromotionalPattern: compileOrDefault(cfg.PromotionalPattern, `partner|partnership|sponsor|press release|proud|excited|pleased to|delighted to`),
	}

	r.companyMatchers = wordMatchers(r.Companies)
	r.toolMatchers = wordMatchers(r.Tools)
	return r
}

func compileOrDefault(pattern, fallback string) *regexp.Regexp {
	if pattern != "" {
		if re, err := regexp.Compile(pattern); err == nil {
			return re
		}
		slog.Warn("invalid evaluation pattern, using default", slog.String("pattern", pattern))
	}
	return regexp.MustCompile(fallback)
}

func wordMatchers(names []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(names))
	for i, name := range names {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return out
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}

// findEntity returns the first configured company found in priority order,
// falling back to the capitalized-organization heuristic. Empty when nothing
// matches.
func (r Rules) findEntity(text string) string {
	for i, m := range r.companyMatchers {
		if m.MatchString(text) {
			return r.Companies[i]
		}
	}
	if m := orgFallbackPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// findTool returns the first configured tool found, or the synthetic
// "Generative AI" match for generic phrasing. Empty when nothing matches.
func (r Rules) findTool(text string) string {
	for i, m := range r.toolMatchers {
		if m.MatchString(text) {
			return r.Tools[i]
		}
	}
	if genericToolPattern.MatchString(text) {
		return "Generative AI"
	}
	return ""
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
