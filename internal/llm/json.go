package llm

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
)

// ParseJSONObject parses a JSON object response from an LLM, stripping
// markdown code fences first. Returns nil when the payload is empty or not a
// JSON object; callers fall back to salvage or placeholder values.
func ParseJSONObject(text string) map[string]any {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// Strip markdown code fences
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		endIdx := len(lines) - 1
		for i := len(lines) - 1; i > 0; i-- {
			if strings.TrimSpace(lines[i]) == "```" {
				endIdx = i
				break
			}
		}
		text = strings.Join(lines[1:endIdx], "\n")
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		slog.Debug("LLM response is not valid JSON", slog.String("error", err.Error()))
		return nil
	}

	return result
}

// takeawayPatterns are tried in order against malformed responses: first a
// properly escaped quoted value, then everything between opening quotes, and
// last any run of text after the key.
var takeawayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"takeaway"\s*:\s*"((?:[^"\\]|\\.)*)(?:"|\z)`),
	regexp.MustCompile(`"takeaway"\s*:\s*"([^"]*)`),
	regexp.MustCompile(`"takeaway"\s*:\s*["']?([^"}']+)`),
}

// SalvageTakeaway attempts to recover the takeaway field from a response that
// failed strict JSON parsing. Returns false when no pattern matches.
func SalvageTakeaway(text string) (string, bool) {
	for _, pat := range takeawayPatterns {
		if m := pat.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// GetString reads a string field from a parsed JSON object, returning the
// fallback when missing or mistyped.
func GetString(m map[string]any, key, fallback string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// GetBool reads a bool field, returning the fallback when missing or mistyped.
func GetBool(m map[string]any, key string, fallback bool) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// GetStringList reads a []string field, skipping non-string elements.
func GetStringList(m map[string]any, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
