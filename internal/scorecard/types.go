package scorecard

// AssessmentStatus enumerates the outcome classes of one scorecard fetch.
type AssessmentStatus string

// Supported assessment statuses.
const (
	AssessmentStatusScored       AssessmentStatus = "scored"
	AssessmentStatusNotFound     AssessmentStatus = "not-found"
	AssessmentStatusUnknown      AssessmentStatus = "unknown"
	AssessmentStatusNetworkError AssessmentStatus = "network-error"
)

// CheckResult models one named sub-check inside a scorecard document.
type CheckResult struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Result models the scorecard document stored without reinterpretation.
type Result struct {
	Score  float64       `json:"score"`
	Date   string        `json:"date"`
	Commit string        `json:"commit"`
	Checks []CheckResult `json:"checks"`
}

// Assessment pairs the fetch outcome with the decoded result when scoring succeeded.
type Assessment struct {
	Status         AssessmentStatus
	Result         *Result
	HTTPStatusCode int
	TransportError error
}

// Scored reports whether the assessment carries a stored scorecard document.
func (assessment Assessment) Scored() bool {
	return assessment.Status == AssessmentStatusScored && assessment.Result != nil
}
