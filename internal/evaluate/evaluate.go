// Package evaluate scores articles against a fixed battery of seven
// editorial criteria and assigns each one an INCLUDE/OK/CUT assessment.
package evaluate

import (
	"fmt"
	"math"
	"strings"
)

// Assessment is the three-way editorial label for an evaluated article.
type Assessment string

const (
	AssessmentInclude Assessment = "INCLUDE"
	AssessmentOK      Assessment = "OK"
	AssessmentCut     Assessment = "CUT"
)

// Priority orders assessments for ranking. Lower sorts first; unknown labels
// rank with CUT.
func (a Assessment) Priority() int {
	switch a {
	case AssessmentInclude:
		return 0
	case AssessmentOK:
		return 1
	default:
		return 2
	}
}

// CriterionResult is one criterion's verdict. An evaluated article always
// carries exactly seven of these, in evaluation order.
type CriterionResult struct {
	Name   string `json:"criteria"`
	Status bool   `json:"status"`
	Notes  string `json:"notes"`
}

// Result is a full criteria evaluation for one article.
type Result struct {
	Criteria   []CriterionResult
	Assessment Assessment
	Score      int
}

const (
	criterionCompanyTool   = "Specific companies using AI tools"
	criterionThirdParty    = "Tool is third-party Gen AI"
	criterionROI           = "Measurable ROI / Business impact"
	criterionRetail        = "Relevance to retail priorities"
	criterionNeutralTone   = "Neutral tone"
	criterionDeployment    = "Not customer-service or visionary fluff"
	criterionMajorPlatform = "OpenAI / Microsoft / Google release impact"
)

// Evaluate runs all seven criteria over title+content+takeaway. Every
// criterion always contributes an entry, pass or fail. The retail-relevance
// criterion additionally gates the assessment: without it an article is CUT
// no matter how many other criteria pass.
func Evaluate(title, content, takeaway string, rules Rules) Result {
	text := title + " " + content + " " + takeaway
	lower := strings.ToLower(text)

	var (
		criteria []CriterionResult
		raw      int
	)
	record := func(name string, status bool, notes string) {
		criteria = append(criteria, CriterionResult{Name: name, Status: status, Notes: notes})
		if status {
			raw++
		}
	}

	// 1. Named entity with a named tool. Entity matching runs on the
	// case-sensitive text so the capitalized-organization fallback works.
	entity := rules.findEntity(text)
	tool := rules.findTool(text)
	if entity != "" && tool != "" {
		record(criterionCompanyTool, true, fmt.Sprintf("%s using %s", entity, tool))
	} else {
		record(criterionCompanyTool, false, "No specific company/tool usage identified")
	}

	// 2. Third-party tool, not homegrown.
	if tool != "" && !ownershipPattern.MatchString(lower) {
		record(criterionThirdParty, true, fmt.Sprintf("%s is an external, open-source model", tool))
	} else {
		record(criterionThirdParty, false, "Using internal/proprietary solution")
	}

	// 3. Measurable business impact.
	if rules.ROIPattern.MatchString(lower) && containsAny(lower, rules.OutcomeTerms) {
		record(criterionROI, true, "Clear metrics tied to business outcomes")
	} else {
		record(criterionROI, false, "No quantifiable business metrics provided")
	}

	// 4. Retail relevance. Also the hard gate for non-CUT assessments.
	retailRelevance := containsAny(lower, rules.RetailTerms)
	if retailRelevance {
		record(criterionRetail, true, "Directly relates to retail/e-commerce operations")
	} else {
		record(criterionRetail, false, "Not tied to e-commerce, personalization, or retail")
	}

	// 5. Neutral tone.
	if !rules.PromotionalPattern.MatchString(lower) {
		record(criterionNeutralTone, true, "Focuses on reporting rather than promotion")
	} else {
		record(criterionNeutralTone, false, "Contains promotional language")
	}

	// 6. Concrete deployment, not aspirational fluff.
	if containsAny(lower, rules.DeploymentTerms) {
		record(criterionDeployment, true, "Descriptive of actual deployment")
	} else {
		record(criterionDeployment, false, "Focuses on future possibilities/customer service")
	}

	// 7. Major-platform release with a retail angle.
	if containsAny(lower, rules.MajorPlatforms) && containsAny(lower, []string{"retail", "commerce", "shopping", "marketplace"}) {
		record(criterionMajorPlatform, true, "Major platform update with retail angle")
	} else {
		record(criterionMajorPlatform, false, "No significant retail platform impact")
	}

	assessment := AssessmentCut
	switch {
	case raw >= 5 && retailRelevance:
		assessment = AssessmentInclude
	case raw >= 3 && retailRelevance:
		assessment = AssessmentOK
	}

	// The divisor is 6 by historical convention even though there are seven
	// criteria; scores from prior runs are only comparable if it stays.
	score := int(math.Round(float64(raw) / 6 * 100))

	return Result{Criteria: criteria, Assessment: assessment, Score: score}
}
