// Package relevance implements the deterministic AI-relevance gate run on
// every candidate before the more expensive criteria evaluation. No LLM is
// involved: term matching with weighted confidence decides.
package relevance

import (
	"fmt"
	"regexp"
	"strings"
)

// Threshold is the confidence at or above which an article counts as
// AI-relevant. It is the single pass/fail gate used by downstream acceptance.
const Threshold = 40

// contentSampleChars bounds how much content the occurrence count scans.
const contentSampleChars = 5000

// minContentOccurrences is how many extended-term hits the content sample
// needs before it contributes confidence.
const minContentOccurrences = 5

// coreTerms are decisive in titles and takeaways.
var coreTerms = []string{
	"ai", "artificial intelligence", "machine learning", "chatgpt",
	"generative ai", "large language model", "llm",
}

// extendedTerms additionally count toward the content occurrence signal.
var extendedTerms = append(coreTerms[:len(coreTerms):len(coreTerms)],
	"neural network", "deep learning", "algorithm",
	"data science", "model", "gpt", "transformer",
)

var termMatchers = buildMatchers(extendedTerms)

// buildMatchers compiles a word-boundary matcher per term. Boundary matching
// keeps "ai" from firing inside words like "retail" or "said".
func buildMatchers(terms []string) map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(terms))
	for _, term := range terms {
		m[term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}
	return m
}

// Result reports the gate's decision with its confidence and rationale.
type Result struct {
	Relevant   bool
	Confidence int
	Reason     string
}

// Check determines whether an article is substantively about AI. A core term
// in the title is decisive (confidence 50) and skips the content check;
// otherwise repeated extended-term mentions in the content sample add 40, and
// a core term in the takeaway adds 30 when confidence is still under 70.
func Check(title, content, takeaway string) Result {
	confidence := 0
	reason := "Not explicitly about AI"

	for _, term := range coreTerms {
		if termMatchers[term].MatchString(title) {
			confidence += 50
			reason = fmt.Sprintf("AI term %q found in title", term)
			break
		}
	}

	if confidence < 50 {
		sample := content
		if len(sample) > contentSampleChars {
			sample = sample[:contentSampleChars]
		}
		count := 0
		for _, term := range extendedTerms {
			count += len(termMatchers[term].FindAllStringIndex(sample, -1))
		}
		if count >= minContentOccurrences {
			confidence += 40
			reason = fmt.Sprintf("Multiple AI references (%d) found in content", count)
		}
	}

	if confidence < 70 && strings.TrimSpace(takeaway) != "" {
		for _, term := range coreTerms {
			if termMatchers[term].MatchString(takeaway) {
				confidence += 30
				reason = fmt.Sprintf("AI term %q found in article takeaway", term)
				break
			}
		}
	}

	return Result{
		Relevant:   confidence >= Threshold,
		Confidence: confidence,
		Reason:     reason,
	}
}
