package lockfile

import "fmt"

const fullNameTemplateConstant = "%s/%s"

// ProviderReference identifies a Terraform provider declared in a dependency lock file.
type ProviderReference struct {
	Organization      string
	Name              string
	Version           string
	RegistryReference string
}

// FullName returns the organization-qualified provider name used as the de-duplication key.
func (reference ProviderReference) FullName() string {
	return fmt.Sprintf(fullNameTemplateConstant, reference.Organization, reference.Name)
}

// MatcherCandidateCount records how many raw candidates a single matcher rule produced.
type MatcherCandidateCount struct {
	RuleName       string
	CandidateCount int
}

// Extraction aggregates the outcome of scanning one lock file document.
type Extraction struct {
	Providers              []ProviderReference
	RawURLs                []string
	MatcherCandidateCounts []MatcherCandidateCount
}
