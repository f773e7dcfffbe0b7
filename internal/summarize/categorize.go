package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"retailscope/internal/config"
	"retailscope/internal/llm"
)

const categorizeSystemPrompt = "You are an expert AI analyst."

const categorizePrompt = `You are an expert AI analyst specializing in the retail and e-commerce industry.
Your task is to categorize an article based on the provided categorization framework and provide a brief justification for your choice.

Here is the framework:
--- FRAMEWORK START ---
%s
--- FRAMEWORK END ---

Article Information:
Title: %s
Content:
%s
---

Instructions:
1. Carefully read the article information.
2. Based *only* on the article content and the provided framework, select the ONE most appropriate category from the list.
3. Provide a concise justification (1-2 sentences) explaining *why* you chose that category, referencing specific aspects of the article and how they align with the category definition.
4. If the article does not fit any other category, use "Other Applications".
5. Your output MUST be a JSON object with two keys: "category" and "justification".

Analyze the article and provide your categorization and justification in the specified JSON format.`

const categorizeSnippetChars = 3000

// Categorization is an LLM-assigned category with its justification.
type Categorization struct {
	Category      string
	Justification string
}

var uncategorized = Categorization{Category: "Uncategorized"}

// Categorizer assigns articles to a category from the configurable
// framework text. Every failure degrades to "Uncategorized".
type Categorizer struct {
	provider llm.Provider
	rules    *config.Loader
}

// NewCategorizer creates an article categorizer.
func NewCategorizer(provider llm.Provider, rules *config.Loader) *Categorizer {
	return &Categorizer{provider: provider, rules: rules}
}

// Categorize assigns a category to an article from its title and content.
func (c *Categorizer) Categorize(ctx context.Context, title, content string) Categorization {
	framework := c.rules.Current().Evaluation.CategoryFramework
	if framework == "" {
		result := uncategorized
		result.Justification = "No categorization framework configured."
		return result
	}
	if c.provider == nil {
		result := uncategorized
		result.Justification = "LLM unavailable."
		return result
	}

	snippet := content
	if len(snippet) > categorizeSnippetChars {
		snippet = snippet[:categorizeSnippetChars] + "..."
	}
	prompt := fmt.Sprintf(categorizePrompt, framework, title, snippet)

	text, err := c.provider.Generate(ctx, llm.Request{
		System:    categorizeSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 500,
		JSON:      true,
	})
	if err != nil {
		slog.Warn("categorization failed", slog.String("error", err.Error()))
		result := uncategorized
		result.Justification = "LLM response error."
		return result
	}

	parsed := llm.ParseJSONObject(text)
	if parsed == nil {
		result := uncategorized
		result.Justification = "Error decoding LLM JSON response."
		return result
	}

	category := llm.GetString(parsed, "category", "")
	if category == "" {
		result := uncategorized
		result.Justification = "LLM output format error."
		return result
	}

	return Categorization{
		Category:      category,
		Justification: llm.GetString(parsed, "justification", "No justification provided."),
	}
}
