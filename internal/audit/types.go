package audit

import (
	"github.com/temirov/provaudit/internal/lockfile"
	"github.com/temirov/provaudit/internal/scorecard"
)

// TernaryValue represents yes/no/unknown states used in reports.
type TernaryValue string

// Supported ternary values.
const (
	TernaryValueYes     TernaryValue = "yes"
	TernaryValueNo      TernaryValue = "no"
	TernaryValueUnknown TernaryValue = "unknown"
)

// CommandOptions captures the configurable parameters for the audit command.
type CommandOptions struct {
	LockfilePath string
	DebugOutput  bool
	AIModelName  string
}

// ProviderAudit tracks one extracted provider identity through the two
// enrichment passes. The existence flag is set at most once, then the
// assessment, and the record is never removed from the batch.
type ProviderAudit struct {
	Reference        lockfile.ProviderReference
	RepositoryExists TernaryValue
	Assessment       scorecard.Assessment
}
