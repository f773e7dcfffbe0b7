package relevance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleTermIsDecisive(t *testing.T) {
	got := Check("ChatGPT comes to the checkout aisle", "no relevant content here", "")

	assert.True(t, got.Relevant)
	assert.Equal(t, 50, got.Confidence)
	assert.Contains(t, got.Reason, "chatgpt")
	assert.Contains(t, got.Reason, "title")
}

func TestContentOccurrencesAddFortyAtBoundary(t *testing.T) {
	// Exactly five extended-term hits: confidence 40, which sits exactly
	// on the relevance threshold.
	content := strings.Repeat("The model improved forecasts. ", 5)
	got := Check("Quarterly results", content, "")

	assert.Equal(t, 40, got.Confidence)
	assert.True(t, got.Relevant)
	assert.Contains(t, got.Reason, "content")
}

func TestFourOccurrencesStayBelowThreshold(t *testing.T) {
	content := strings.Repeat("The model improved forecasts. ", 4)
	got := Check("Quarterly results", content, "")

	assert.Equal(t, 0, got.Confidence)
	assert.False(t, got.Relevant)
	assert.Equal(t, "Not explicitly about AI", got.Reason)
}

func TestTakeawayTermAddsThirty(t *testing.T) {
	got := Check("Quarterly results", "nothing notable in the body",
		"The company credits machine learning for the gains.")

	assert.Equal(t, 30, got.Confidence)
	assert.False(t, got.Relevant, "30 is below the threshold of 40")
	assert.Contains(t, got.Reason, "takeaway")
}

func TestTitleAndTakeawayStack(t *testing.T) {
	got := Check("AI transforms retail", "no body", "Generative AI is mentioned here too.")

	assert.Equal(t, 80, got.Confidence)
	assert.True(t, got.Relevant)
}

func TestContentAndTakeawayStack(t *testing.T) {
	content := strings.Repeat("A transformer model beats the algorithm. ", 3)
	got := Check("Quarterly results", content, "ChatGPT drove the improvement.")

	assert.Equal(t, 70, got.Confidence)
	assert.True(t, got.Relevant)
}

func TestWordBoundaryMatching(t *testing.T) {
	// "ai" inside "retailers" or "said" must not count; neither should
	// "llm" inside "fullmoon".
	got := Check("Retailers said prices fell", "The retailers said fullmoon sales failed.", "")

	assert.False(t, got.Relevant)
	assert.Equal(t, 0, got.Confidence)
}

func TestContentSampleIsBounded(t *testing.T) {
	// Terms past the first 5,000 characters do not count.
	padding := strings.Repeat("x", contentSampleChars)
	content := padding + strings.Repeat(" machine learning model ai", 10)
	got := Check("Quarterly results", content, "")

	assert.Equal(t, 0, got.Confidence)
	assert.False(t, got.Relevant)
}
