package audit

import (
	"fmt"

	"github.com/temirov/provaudit/internal/githubrepo"
	"github.com/temirov/provaudit/internal/lockfile"
	"github.com/temirov/provaudit/internal/scorecard"
)

const (
	versionPlaceholderConstant         = "-"
	statusCellScoredTemplateConstant   = "✓ %.2f"
	statusCellNoScorecardConstant      = "✓ no scorecard"
	statusCellScoreUnavailableConstant = "✓ score unavailable"
	statusCellNoRepositoryConstant     = "✗ no GitHub repo"
	statusCellUnknownConstant          = "? unknown"
)

func ternaryFromExistenceStatus(existenceStatus githubrepo.ExistenceStatus) TernaryValue {
	switch existenceStatus {
	case githubrepo.ExistenceStatusExists:
		return TernaryValueYes
	case githubrepo.ExistenceStatusMissing:
		return TernaryValueNo
	default:
		return TernaryValueUnknown
	}
}

func probeProgressText(existenceStatus githubrepo.ExistenceStatus) string {
	switch existenceStatus {
	case githubrepo.ExistenceStatusExists:
		return progressRepositoryFoundConstant
	case githubrepo.ExistenceStatusMissing:
		return progressRepositoryMissingConstant
	default:
		return progressRepositoryUnknownConstant
	}
}

func scoreProgressText(assessment scorecard.Assessment) string {
	switch {
	case assessment.Scored():
		return fmt.Sprintf(progressScorecardScoredTemplate, assessment.Result.Score)
	case assessment.Status == scorecard.AssessmentStatusNotFound:
		return progressScorecardMissingConstant
	default:
		return progressScorecardUnavailableConstant
	}
}

func versionCell(reference lockfile.ProviderReference) string {
	if len(reference.Version) == 0 {
		return versionPlaceholderConstant
	}
	return reference.Version
}

// statusCell derives the glyph/score cell from the tri-state existence flag
// and the stored assessment. Display-time rounding to two decimals happens
// here only; the stored score stays verbatim.
func statusCell(providerAudit ProviderAudit) string {
	switch providerAudit.RepositoryExists {
	case TernaryValueNo:
		return statusCellNoRepositoryConstant
	case TernaryValueUnknown:
		return statusCellUnknownConstant
	}

	switch {
	case providerAudit.Assessment.Scored():
		return fmt.Sprintf(statusCellScoredTemplateConstant, providerAudit.Assessment.Result.Score)
	case providerAudit.Assessment.Status == scorecard.AssessmentStatusNotFound:
		return statusCellNoScorecardConstant
	default:
		return statusCellScoreUnavailableConstant
	}
}
