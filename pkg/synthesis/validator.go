package synthesis

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Assessment is the terminal artifact returned to callers. Field bounds
// mirror the output contract exactly; anything outside them is rejected
// wholesale, never repaired. The list fields must be non-empty: an
// assessment naming zero strengths or zero interview questions is not a
// usable assessment, so it falls back like any other contract violation.
type Assessment struct {
	Strengths          []string `json:"strengths" validate:"required,max=3"`
	GrowthAreas        []string `json:"growthAreas" validate:"required,max=2"`
	TechnicalKeywords  []string `json:"technicalKeywords" validate:"required,max=8"`
	BestContribution   string   `json:"bestContribution" validate:"required"`
	OverallScore       float64  `json:"overallScore" validate:"required,gte=1,lte=10"`
	Recommendation     string   `json:"recommendation" validate:"required,oneof='Strong Hire' 'Hire' 'Consider' 'Pass'"`
	InterviewQuestions []string `json:"interviewQuestions" validate:"required,max=3"`
	RiskFactors        []string `json:"riskFactors,omitempty"`
}

var validate = validator.New()

// FallbackAssessment is the safe default substituted whenever the model's
// final answer cannot be parsed or fails validation. Callers never see a
// validation failure as an error.
func FallbackAssessment() Assessment {
	return Assessment{
		Strengths: []string{
			"Active open source participation",
			"Breadth across multiple repositories",
			"Consistent public coding activity",
		},
		GrowthAreas: []string{
			"Insufficient signal for a detailed evaluation",
			"Limited evidence of collaborative review activity",
		},
		TechnicalKeywords: []string{"git", "open source", "software development"},
		BestContribution:  "Sustained contribution history across public repositories.",
		OverallScore:      7,
		Recommendation:    "Consider",
		InterviewQuestions: []string{
			"Walk me through the project you are most proud of and the hardest problem in it.",
			"How do you approach reviewing and testing changes before they ship?",
			"Tell me about a time you had to learn a new technology under pressure.",
		},
		RiskFactors: []string{},
	}
}

// ValidateAnswer parses the model's final text as an Assessment and
// checks it against the output contract. On any parse or validation
// failure the malformed output is discarded entirely and the fallback is
// returned instead — this is a terminal recovery, not an error path.
func ValidateAnswer(raw string) Assessment {
	text := extractJSON(raw)
	if text == "" {
		return FallbackAssessment()
	}

	var assessment Assessment
	if err := json.Unmarshal([]byte(text), &assessment); err != nil {
		return FallbackAssessment()
	}
	if err := validate.Struct(assessment); err != nil {
		return FallbackAssessment()
	}
	return assessment
}

// extractJSON pulls the outermost JSON object out of the model's answer,
// tolerating markdown code fences and surrounding prose.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
