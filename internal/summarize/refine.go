package summarize

import (
	"context"
	"fmt"
	"log/slog"

	"retailscope/internal/config"
	"retailscope/internal/llm"
)

const refineSystemPrompt = "You are an expert at refining business takeaways according to specific instructions and rubrics."

const refinePrompt = `Improve this takeaway based on the specific refinement instructions:

ORIGINAL TAKEAWAY:
"%s"

REFINEMENT INSTRUCTIONS:
%s

RUBRIC TO FOLLOW:
%s

ORIGINAL CONTENT (for reference):
%s

Respond with JSON: {"takeaway": "improved takeaway here"}`

// refineSampleChars bounds how much source content rides along in the
// refinement prompt.
const refineSampleChars = 5000

// Refiner regenerates a failing takeaway once, following refinement
// instructions. Refinement is advisory: on any failure the original takeaway
// is returned unchanged, and Refine never errors.
type Refiner struct {
	provider llm.Provider
	rules    *config.Loader
}

// NewRefiner creates a takeaway refiner.
func NewRefiner(provider llm.Provider, rules *config.Loader) *Refiner {
	return &Refiner{provider: provider, rules: rules}
}

// Refine issues one regeneration call and returns the improved takeaway, or
// the original when the call fails or yields nothing usable.
func (r *Refiner) Refine(ctx context.Context, original, instructions, sourceContent string) string {
	if r.provider == nil || instructions == "" {
		return original
	}

	if len(sourceContent) > refineSampleChars {
		sourceContent = sourceContent[:refineSampleChars] + "..."
	}

	rubric := r.rules.Current().Rubric.Text
	prompt := fmt.Sprintf(refinePrompt, original, instructions, rubric, sourceContent)

	text, err := r.provider.Generate(ctx, llm.Request{
		System:    refineSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 1500,
		JSON:      true,
	})
	if err != nil {
		slog.Warn("takeaway refinement failed", slog.String("error", err.Error()))
		return original
	}

	if parsed := llm.ParseJSONObject(text); parsed != nil {
		if refined := llm.GetString(parsed, "takeaway", ""); refined != "" {
			return refined
		}
	}
	if salvaged, ok := llm.SalvageTakeaway(text); ok {
		return salvaged
	}
	return original
}
