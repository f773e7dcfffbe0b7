package database

// Article represents a collected article and everything the pipeline has
// derived for it so far. Nullable columns use pointer fields.
type Article struct {
	ID                    int64
	URL                   string
	Title                 string
	Source                *string
	PublishedDate         *string
	Content               *string
	ContentFetched        bool
	Takeaway              *string
	KeyPoints             []string
	RelevanceConfidence   *int
	RelevanceReason       *string
	Category              *string
	CategoryJustification *string
	Assessment            *string
	AssessmentScore       *int
	CriteriaResults       []CriterionResult
	CollectedAt           *string
	ProcessedAt           *string
}

// CriterionResult mirrors one stored criterion verdict. The JSON field names
// match the evaluation output so rows round-trip unchanged.
type CriterionResult struct {
	Name   string `json:"criteria"`
	Status bool   `json:"status"`
	Notes  string `json:"notes"`
}

// RunReport holds metadata about one pipeline run.
type RunReport struct {
	ID         string
	StartedAt  *string
	FinishedAt *string
	Collected  int
	Fetched    int
	Processed  int
	Included   int
	Cut        int
}

// Stats contains aggregate database statistics.
type Stats struct {
	TotalArticles     int
	FetchedArticles   int
	ProcessedArticles int
	Included          int
	OK                int
	Cut               int
	Runs              int
}
