package aireview

import "github.com/temirov/provaudit/internal/scorecard"

const lowScoreThresholdConstant = 5

// securityRelevantCheckNames is the fixed allow-list of scorecard checks worth
// surfacing to the summary model when their score falls below the threshold.
var securityRelevantCheckNames = map[string]struct{}{
	"Binary-Artifacts":    {},
	"Branch-Protection":   {},
	"Code-Review":         {},
	"Dangerous-Workflow":  {},
	"Maintained":          {},
	"Pinned-Dependencies": {},
	"Security-Policy":     {},
	"Signed-Releases":     {},
	"Token-Permissions":   {},
	"Vulnerabilities":     {},
}

// WeakCheck is a low-scoring security-relevant sub-check included in the summary prompt.
type WeakCheck struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// ProviderAnalysis summarizes one scored provider for the summary prompt.
type ProviderAnalysis struct {
	FullName           string      `json:"full_name"`
	RepositoryExists   bool        `json:"repository_exists"`
	OverallScore       float64     `json:"overall_score"`
	WeakSecurityChecks []WeakCheck `json:"weak_security_checks,omitempty"`
}

// AnalysisPayload is the batch-level document embedded into the user message.
type AnalysisPayload struct {
	TotalProviders  int                `json:"total_providers"`
	ScoredProviders []ProviderAnalysis `json:"scored_providers"`
}

// NewProviderAnalysis builds the prompt entry for one scored provider,
// retaining only security-relevant sub-checks scoring below the threshold.
func NewProviderAnalysis(fullName string, repositoryExists bool, result *scorecard.Result) ProviderAnalysis {
	analysis := ProviderAnalysis{
		FullName:         fullName,
		RepositoryExists: repositoryExists,
	}
	if result == nil {
		return analysis
	}

	analysis.OverallScore = result.Score
	for _, checkResult := range result.Checks {
		if _, securityRelevant := securityRelevantCheckNames[checkResult.Name]; !securityRelevant {
			continue
		}
		if checkResult.Score >= lowScoreThresholdConstant {
			continue
		}
		analysis.WeakSecurityChecks = append(analysis.WeakSecurityChecks, WeakCheck{
			Name:   checkResult.Name,
			Score:  checkResult.Score,
			Reason: checkResult.Reason,
		})
	}

	return analysis
}

// NewAnalysisPayload assembles the batch payload from the full identity count
// and the per-provider analyses of every non-error assessment.
func NewAnalysisPayload(totalProviders int, scoredProviders []ProviderAnalysis) AnalysisPayload {
	return AnalysisPayload{
		TotalProviders:  totalProviders,
		ScoredProviders: scoredProviders,
	}
}
