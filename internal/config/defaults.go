package config

// DefaultRubricText is the takeaway rubric used when the config file does not
// provide one. It is injected verbatim into generation, validation, and
// refinement prompts.
const DefaultRubricText = `1. Write a 3-4 sentence focused takeaway (70-90 words)
2. Include specific company names mentioned in the article
3. Include quantitative data when available (revenue, user counts, percentages)
4. Only use statistics from the source text - never fabricate numbers
5. Highlight business impacts and strategic benefits of the AI technology
6. Use clear language without technical jargon
7. Describe industry trends; never address or label the reader (no "AI leaders", "retail executives", or similar audience phrasing)`

var (
	defaultCompanies = []string{
		"Amazon", "Google", "Microsoft", "OpenAI", "Walmart", "eBay",
		"Target", "Meta", "Apple", "Adobe", "Salesforce", "Nvidia",
		"Anthropic", "Perplexity", "Crocs",
	}

	defaultTools = []string{
		"ChatGPT", "Gemini", "Claude", "SageMaker", "Copilot", "DALL-E",
		"Bard", "Midjourney", "Stable Diffusion", "Firefly", "GPT-4",
		"Llama", "Bedrock", "Grok",
	}

	defaultRetailTerms = []string{
		"ecommerce", "retail", "shopping", "marketplace", "consumer",
		"personalization", "recommendation", "supply chain", "inventory",
		"merchandising", "sales", "customer experience", "revenue",
	}

	defaultOutcomeTerms = []string{
		"revenue", "sales", "cost", "efficiency", "productivity",
	}

	defaultDeploymentTerms = []string{
		"deployed", "implemented", "launched", "in production",
		"currently using", "rolled out",
	}

	defaultMajorPlatforms = []string{
		"openai", "microsoft", "google", "amazon", "meta",
	}
)

const (
	defaultROIPattern         = `\d+%|\$\d+|\d+\s*million|\d+\s*billion|increased|reduced|improved|saved`
	defaultPromotionalPattern = `partner|partnership|sponsor|press release|proud|excited|pleased to|delighted to`
)

// applyEvaluationDefaults fills any evaluation list or pattern the config file
// left empty. Lists are all-or-nothing: a configured list replaces the default
// entirely.
func applyEvaluationDefaults(e *Evaluation) {
	if len(e.Companies) == 0 {
		e.Companies = defaultCompanies
	}
	if len(e.Tools) == 0 {
		e.Tools = defaultTools
	}
	if len(e.RetailTerms) == 0 {
		e.RetailTerms = defaultRetailTerms
	}
	if len(e.OutcomeTerms) == 0 {
		e.OutcomeTerms = defaultOutcomeTerms
	}
	if len(e.DeploymentTerms) == 0 {
		e.DeploymentTerms = defaultDeploymentTerms
	}
	if len(e.MajorPlatforms) == 0 {
		e.MajorPlatforms = defaultMajorPlatforms
	}
	if e.ROIPattern == "" {
		e.ROIPattern = defaultROIPattern
	}
	if e.PromotionalPattern == "" {
		e.PromotionalPattern = defaultPromotionalPattern
	}
}
