package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"retailscope/internal/config"
)

func rulesWithFramework(framework string) *config.Loader {
	cfg := config.Default()
	cfg.Evaluation.CategoryFramework = framework
	return config.NewStaticLoader(cfg)
}

func TestCategorizeWithoutFramework(t *testing.T) {
	c := NewCategorizer(&stubProvider{}, rulesWithFramework(""))
	got := c.Categorize(context.Background(), "Title", "Content")

	assert.Equal(t, "Uncategorized", got.Category)
	assert.Equal(t, "No categorization framework configured.", got.Justification)
}

func TestCategorizeWithoutProvider(t *testing.T) {
	c := NewCategorizer(nil, rulesWithFramework("1. Supply Chain\n2. Other Applications"))
	got := c.Categorize(context.Background(), "Title", "Content")

	assert.Equal(t, "Uncategorized", got.Category)
	assert.Equal(t, "LLM unavailable.", got.Justification)
}

func TestCategorizeSuccess(t *testing.T) {
	provider := &stubProvider{responses: []string{
		`{"category": "Supply Chain", "justification": "The article covers warehouse automation."}`,
	}}
	c := NewCategorizer(provider, rulesWithFramework("1. Supply Chain\n2. Other Applications"))

	got := c.Categorize(context.Background(), "Robots in warehouses", "Content about automation.")
	assert.Equal(t, "Supply Chain", got.Category)
	assert.Equal(t, "The article covers warehouse automation.", got.Justification)
}

func TestCategorizeProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("unreachable")}
	c := NewCategorizer(provider, rulesWithFramework("1. Supply Chain"))

	got := c.Categorize(context.Background(), "Title", "Content")
	assert.Equal(t, "Uncategorized", got.Category)
	assert.Equal(t, "LLM response error.", got.Justification)
}

func TestCategorizeMalformedResponse(t *testing.T) {
	provider := &stubProvider{responses: []string{"Supply Chain, because automation."}}
	c := NewCategorizer(provider, rulesWithFramework("1. Supply Chain"))

	got := c.Categorize(context.Background(), "Title", "Content")
	assert.Equal(t, "Uncategorized", got.Category)
	assert.Equal(t, "Error decoding LLM JSON response.", got.Justification)
}

func TestCategorizeMissingCategoryKey(t *testing.T) {
	provider := &stubProvider{responses: []string{`{"justification": "no category given"}`}}
	c := NewCategorizer(provider, rulesWithFramework("1. Supply Chain"))

	got := c.Categorize(context.Background(), "Title", "Content")
	assert.Equal(t, "Uncategorized", got.Category)
	assert.Equal(t, "LLM output format error.", got.Justification)
}
