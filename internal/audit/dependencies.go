package audit

import (
	"context"

	"github.com/temirov/provaudit/internal/aireview"
	"github.com/temirov/provaudit/internal/githubrepo"
	"github.com/temirov/provaudit/internal/lockfile"
	"github.com/temirov/provaudit/internal/scorecard"
)

// LockfileExtractor produces provider references from opaque lock file text.
type LockfileExtractor interface {
	Extract(documentText string) lockfile.Extraction
}

// RepositoryChecker probes whether a provider's expected repository exists.
type RepositoryChecker interface {
	CheckRepository(executionContext context.Context, organization string, providerName string) githubrepo.ProbeOutcome
}

// ScorecardFetcher retrieves the security assessment for one repository locator.
type ScorecardFetcher interface {
	Fetch(executionContext context.Context, repositoryPath string) scorecard.Assessment
}

// BatchSummarizer requests one natural-language summary for the whole batch.
type BatchSummarizer interface {
	Configured() bool
	Summarize(executionContext context.Context, payload aireview.AnalysisPayload) (string, error)
}

// Pacer enforces the fixed delay that follows every network attempt.
type Pacer interface {
	Wait(executionContext context.Context)
}
