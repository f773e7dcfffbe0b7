package summarize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// charsPerToken is the rough character-per-token estimate used to convert a
// token budget into a character budget without tokenizing.
const charsPerToken = 3

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses all whitespace runs to single spaces and
// trims the ends.
func NormalizeWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// SplitChunks splits article content into chunks that each fit within
// maxChunkTokens, respecting sentence boundaries where possible. It is a pure
// function: identical input and budget always yield the identical sequence.
// Non-empty input always yields at least one chunk.
func SplitChunks(content string, maxChunkTokens int) []string {
	content = NormalizeWhitespace(content)
	if content == "" {
		return nil
	}

	maxChars := maxChunkTokens * charsPerToken

	// Short articles skip the splitting overhead entirely.
	if len(content) < maxChars {
		return []string{content}
	}

	var chunks []string
	var current []string
	currentSize := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = current[:0]
			currentSize = 0
		}
	}

	for _, sentence := range splitSentences(content) {
		// A single sentence over the budget gets hard-split into
		// character windows. No semantic boundary survives, but the
		// chunker never fails.
		if len(sentence) > maxChars {
			flush()
			for start := 0; start < len(sentence); {
				end := start + maxChars
				if end >= len(sentence) {
					end = len(sentence)
				} else {
					// Back up to a rune boundary so a multibyte
					// character is never cut across two chunks.
					for end > start && !utf8.RuneStart(sentence[end]) {
						end--
					}
					if end == start {
						// Budget smaller than one rune: emit it whole.
						_, size := utf8.DecodeRuneInString(sentence[start:])
						end = start + size
					}
				}
				chunks = append(chunks, sentence[start:end])
				start = end
			}
			continue
		}

		// Account for the joining space so no chunk exceeds the budget.
		joined := len(sentence)
		if currentSize > 0 {
			joined += 1 + currentSize
		}
		if joined > maxChars {
			flush()
			current = append(current, sentence)
			currentSize = len(sentence)
		} else {
			current = append(current, sentence)
			currentSize = joined
		}
	}
	flush()

	return chunks
}

// splitSentences splits normalized text at sentence boundaries: a run of
// '.', '!' or '?' followed by a space. Terminal punctuation stays with its
// sentence. Periods inside numbers or abbreviations not followed by a space
// do not split.
func splitSentences(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if !isTerminal(s[i]) {
			continue
		}
		j := i + 1
		for j < len(s) && isTerminal(s[j]) {
			j++
		}
		if j < len(s) && s[j] != ' ' {
			i = j - 1
			continue
		}
		if sent := strings.TrimSpace(s[start:j]); sent != "" {
			out = append(out, sent)
		}
		for j < len(s) && s[j] == ' ' {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(s) {
		if sent := strings.TrimSpace(s[start:]); sent != "" {
			out = append(out, sent)
		}
	}
	return out
}

func isTerminal(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
