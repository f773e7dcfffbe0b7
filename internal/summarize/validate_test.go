package summarize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailscope/internal/config"
)

// validTakeaway builds a takeaway satisfying the default structural rubric:
// three sentences, 78 words, no bullets, no audience phrasing.
func validTakeaway() string {
	sentence := strings.TrimSpace(strings.Repeat("retailers adopt ", 13)) + "."
	return strings.TrimSpace(strings.Repeat(sentence+" ", 3))
}

func TestValidTakeawayPasses(t *testing.T) {
	v := NewValidator(nil, testRules())
	result := v.Validate(context.Background(), validTakeaway(), "content sample")

	assert.True(t, result.Passes)
	assert.Empty(t, result.Issues)
	assert.Empty(t, result.RefinementInstructions)
	assert.Equal(t, 78, result.WordCount)
	assert.Equal(t, 3, result.SentenceCount)
}

func TestShortTakeawayAlwaysFails(t *testing.T) {
	// 20 words in one sentence. The judge is stubbed to approve, which
	// must not rescue a structural failure.
	takeaway := strings.TrimSpace(strings.Repeat("word ", 19)) + " end."
	provider := &stubProvider{responses: []string{`{"passes_validation": true, "issues_found": []}`}}

	v := NewValidator(provider, testRules())
	result := v.Validate(context.Background(), takeaway, "content sample")

	require.False(t, result.Passes)
	assert.Equal(t, 20, result.WordCount)
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "word count") {
			found = true
		}
	}
	assert.True(t, found, "expected a word-count issue, got %v", result.Issues)
	assert.NotEmpty(t, result.RefinementInstructions)
}

func TestLeaderPhrasingFails(t *testing.T) {
	v := NewValidator(nil, testRules())
	result := v.Validate(context.Background(),
		"This update is crucial for AI executives in retail to leverage.", "content sample")

	require.False(t, result.Passes)
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "target audience") || strings.Contains(issue, "leader") {
			found = true
		}
	}
	assert.True(t, found, "expected an audience/leader issue, got %v", result.Issues)
}

func TestBulletFormattingFails(t *testing.T) {
	takeaway := "- first point about AI\n- second point about retail"
	v := NewValidator(nil, testRules())
	result := v.Validate(context.Background(), takeaway, "content sample")

	require.False(t, result.Passes)
	found := false
	for _, issue := range result.Issues {
		if strings.Contains(issue, "bullet") {
			found = true
		}
	}
	assert.True(t, found, "expected a bullet issue, got %v", result.Issues)
}

func TestJudgeFailureIsOpen(t *testing.T) {
	provider := &stubProvider{err: errors.New("model offline")}
	v := NewValidator(provider, testRules())

	result := v.Validate(context.Background(), validTakeaway(), "content sample")
	assert.True(t, result.Passes, "judge unavailability must not fail a structurally valid takeaway")
}

func TestJudgeUnparseableIsOpen(t *testing.T) {
	provider := &stubProvider{responses: []string{"I think it looks fine overall."}}
	v := NewValidator(provider, testRules())

	result := v.Validate(context.Background(), validTakeaway(), "content sample")
	assert.True(t, result.Passes)
}

func TestJudgeRejectionFails(t *testing.T) {
	provider := &stubProvider{responses: []string{
		`{"passes_validation": false, "issues_found": ["too speculative"], "refinement_instructions": "Stick to stated facts."}`,
	}}
	v := NewValidator(provider, testRules())

	result := v.Validate(context.Background(), validTakeaway(), "content sample")
	require.False(t, result.Passes)
	assert.Contains(t, result.Issues, "too speculative")
	assert.Contains(t, result.RefinementInstructions, "Stick to stated facts.")
}

func TestRubricReloadedOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeRubric := func(text string, mtime time.Time) {
		data := "rubric:\n  text: \"" + text + "\"\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	base := time.Now().Add(-time.Hour)
	writeRubric("RUBRIC ONE", base)

	provider := &stubProvider{responses: []string{`{"passes_validation": true}`}}
	v := NewValidator(provider, config.NewLoader(path))

	v.Validate(context.Background(), validTakeaway(), "content sample")
	require.NotEmpty(t, provider.prompts)
	assert.Contains(t, provider.prompts[0], "RUBRIC ONE")

	writeRubric("RUBRIC TWO", base.Add(time.Minute))

	v.Validate(context.Background(), validTakeaway(), "content sample")
	require.Len(t, provider.prompts, 2)
	assert.Contains(t, provider.prompts[1], "RUBRIC TWO")
	assert.NotContains(t, provider.prompts[1], "RUBRIC ONE")
}
