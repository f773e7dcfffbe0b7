package summarize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a\t b\n\nc  "))
	assert.Equal(t, "", NormalizeWhitespace("   \n\t "))
}

func TestSplitChunksShortContent(t *testing.T) {
	chunks := SplitChunks("One short sentence. Another one.", 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "One short sentence. Another one.", chunks[0])
}

func TestSplitChunksEmpty(t *testing.T) {
	assert.Nil(t, SplitChunks("", 100))
	assert.Nil(t, SplitChunks("   \n ", 100))
}

func TestSplitChunksDeterministic(t *testing.T) {
	content := strings.Repeat("The retailer deployed a new model. Sales improved measurably. ", 50)
	first := SplitChunks(content, 30)
	second := SplitChunks(content, 30)
	assert.Equal(t, first, second)
}

func TestSplitChunksSizeBound(t *testing.T) {
	content := strings.Repeat("Short sentence here. Slightly longer sentence follows it! Done? ", 100)
	budget := 50
	chunks := SplitChunks(content, budget)
	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), budget*charsPerToken, "chunk %d over budget", i)
	}
}

func TestSplitChunksReconstructsContent(t *testing.T) {
	content := strings.Repeat("Alpha beta gamma delta. Epsilon zeta eta theta! ", 80)
	chunks := SplitChunks(content, 40)
	joined := NormalizeWhitespace(strings.Join(chunks, " "))
	assert.Equal(t, NormalizeWhitespace(content), joined)
}

func TestSplitChunksOversizedSentence(t *testing.T) {
	// One sentence with no terminal punctuation until the very end, far
	// over the budget, must be hard-split into bounded windows.
	sentence := strings.Repeat("word ", 500) + "end."
	budget := 20
	chunks := SplitChunks(sentence, budget)
	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), budget*charsPerToken, "chunk %d over budget", i)
	}
}

func TestSplitChunksOversizedSentenceKeepsRunesIntact(t *testing.T) {
	// 4-byte runes against a window size that is not a multiple of 4, so a
	// naive byte split would cut a rune in half at every window edge.
	sentence := strings.Repeat("🛒", 40)
	budget := 10
	chunks := SplitChunks(sentence, budget)
	require.Greater(t, len(chunks), 1)
	var rebuilt strings.Builder
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8", i)
		assert.LessOrEqual(t, len(chunk), budget*charsPerToken, "chunk %d over budget", i)
		rebuilt.WriteString(chunk)
	}
	assert.Equal(t, sentence, rebuilt.String())
}

func TestSplitSentences(t *testing.T) {
	sents := splitSentences("First one. Second one! Third one? Fourth")
	require.Len(t, sents, 4)
	assert.Equal(t, "First one.", sents[0])
	assert.Equal(t, "Second one!", sents[1])
	assert.Equal(t, "Third one?", sents[2])
	assert.Equal(t, "Fourth", sents[3])
}

func TestSplitSentencesKeepsDecimalsTogether(t *testing.T) {
	sents := splitSentences("Revenue grew 3.5 percent. Costs fell.")
	require.Len(t, sents, 2)
	assert.Equal(t, "Revenue grew 3.5 percent.", sents[0])
}
