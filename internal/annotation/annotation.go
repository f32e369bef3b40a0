package annotation

import "github.com/minowang/jobcorpus/internal/record"

// Annotation type tags. Records with any other tag are ignored by the
// dataset assembler.
const (
	TypeInputParsing = "user_input_parsing"
	TypeJobMatching  = "job_matching"
	TypeAdvice       = "advice_generation"
)

// Params is the structured form of a user's job-seeking request. Field order
// is the serialization contract for the input-parsing response payload.
type Params struct {
	Major             string `json:"major"`
	Education         string `json:"education"`
	TargetCompanyType string `json:"target_company_type"`
	Location          string `json:"location"`
	JobType           string `json:"job_type"`
	Position          string `json:"position"`
}

// ScoredJob is one candidate job labeled with its match against a user query.
type ScoredJob struct {
	Job        *record.Job `json:"job"`
	MatchScore float64     `json:"match_score"`
	Reason     string      `json:"reason"`
}

// Advice groups career tips into the three fixed categories rendered by the
// advice sample builder.
type Advice struct {
	ResumeOptimization   []string `json:"resume_optimization"`
	InterviewPreparation []string `json:"interview_preparation"`
	ApplicationStrategy  []string `json:"application_strategy"`
}

// Annotation is a tagged union over the three sample families. Type selects
// the variant; only that variant's fields are populated.
type Annotation struct {
	Type string `json:"type"`
	ID   string `json:"annotation_id,omitempty"`

	// user_input_parsing
	UserInput        string  `json:"user_input,omitempty"`
	StructuredParams *Params `json:"structured_params,omitempty"`

	// job_matching
	UserParams *Params     `json:"user_params,omitempty"`
	Jobs       []ScoredJob `json:"jobs,omitempty"`

	// advice_generation
	Scenario string  `json:"scenario,omitempty"`
	Advice   *Advice `json:"advice,omitempty"`
}
