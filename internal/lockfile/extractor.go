package lockfile

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

const (
	registryHostConstant                = "registry.terraform.io"
	httpsProtocolPrefixConstant         = "https://"
	httpProtocolPrefixConstant          = "http://"
	providerSegmentSeparatorConstant    = "/"
	registryReferenceTemplateConstant   = "https://registry.terraform.io/providers/%s/%s"
	trailingURLPunctuationConstant      = ",]}"
	providerDeclarationRuleNameConstant = "provider_declaration"
	quotedRegistryPathRuleNameConstant  = "quoted_registry_path"
	bareRegistryPathRuleNameConstant    = "bare_registry_path"
	quotedOwnerPairRuleNameConstant     = "quoted_owner_pair"
)

var (
	providerDeclarationPattern = regexp.MustCompile(`provider\s+["']([^"']+)["']`)
	versionAssignmentPattern   = regexp.MustCompile(`version\s*=\s*["']([^"']+)["']`)
	quotedRegistryPathPattern  = regexp.MustCompile(`["']([^"'\s]*registry\.terraform\.io/(?:providers|provider)/[^"'\s]+)["']`)
	bareRegistryPathPattern    = regexp.MustCompile(`registry\.terraform\.io/(?:providers|provider)/[A-Za-z0-9_-]+/[A-Za-z0-9_-]+`)
	quotedOwnerPairPattern     = regexp.MustCompile(`["']([A-Za-z0-9_-]+/[A-Za-z0-9_-]+)["']`)
	absoluteURLPattern         = regexp.MustCompile(`https?://[^\s"']+`)
	identifierTokenPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// matcherCandidate carries one raw candidate string produced by a matcher rule.
type matcherCandidate struct {
	value   string
	version string
}

// matcherRule pairs a diagnostic rule name with an independent candidate matcher.
type matcherRule struct {
	name  string
	match func(documentText string) []matcherCandidate
}

// Extractor scans opaque lock file text for provider references.
type Extractor struct {
	rules []matcherRule
}

// NewExtractor constructs an Extractor with the default ordered rule set.
// Earlier rules win full-name collisions during de-duplication.
func NewExtractor() *Extractor {
	return &Extractor{
		rules: []matcherRule{
			{name: providerDeclarationRuleNameConstant, match: matchProviderDeclarations},
			{name: quotedRegistryPathRuleNameConstant, match: matchQuotedRegistryPaths},
			{name: bareRegistryPathRuleNameConstant, match: matchBareRegistryPaths},
			{name: quotedOwnerPairRuleNameConstant, match: matchQuotedOwnerPairs},
		},
	}
}

// Extract applies every matcher rule in order and decomposes the resulting
// candidates into de-duplicated provider references. The first accepted
// candidate for a full name wins; insertion order is preserved.
func (extractor *Extractor) Extract(documentText string) Extraction {
	extraction := Extraction{}
	seenFullNames := map[string]struct{}{}

	for _, rule := range extractor.rules {
		candidates := rule.match(documentText)
		extraction.MatcherCandidateCounts = append(extraction.MatcherCandidateCounts, MatcherCandidateCount{
			RuleName:       rule.name,
			CandidateCount: len(candidates),
		})

		for _, candidate := range candidates {
			reference, accepted := decomposeCandidate(candidate)
			if !accepted {
				continue
			}
			if _, alreadyCollected := seenFullNames[reference.FullName()]; alreadyCollected {
				continue
			}
			seenFullNames[reference.FullName()] = struct{}{}
			extraction.Providers = append(extraction.Providers, reference)
		}
	}

	extraction.RawURLs = collectAbsoluteURLs(documentText)

	return extraction
}

// matchProviderDeclarations captures explicit provider "<value>" declarations.
// Each declaration additionally claims the first version assignment appearing
// before the next declaration, kept only when it parses as a semantic version.
func matchProviderDeclarations(documentText string) []matcherCandidate {
	declarationMatches := providerDeclarationPattern.FindAllStringSubmatchIndex(documentText, -1)
	if len(declarationMatches) == 0 {
		return nil
	}

	versionMatches := versionAssignmentPattern.FindAllStringSubmatchIndex(documentText, -1)

	candidates := make([]matcherCandidate, 0, len(declarationMatches))
	for declarationIndex, declarationMatch := range declarationMatches {
		candidateValue := documentText[declarationMatch[2]:declarationMatch[3]]

		windowStart := declarationMatch[1]
		windowEnd := len(documentText)
		if declarationIndex+1 < len(declarationMatches) {
			windowEnd = declarationMatches[declarationIndex+1][0]
		}

		candidates = append(candidates, matcherCandidate{
			value:   candidateValue,
			version: versionWithinWindow(documentText, versionMatches, windowStart, windowEnd),
		})
	}

	return candidates
}

func versionWithinWindow(documentText string, versionMatches [][]int, windowStart int, windowEnd int) string {
	for _, versionMatch := range versionMatches {
		if versionMatch[0] < windowStart || versionMatch[0] >= windowEnd {
			continue
		}
		versionValue := documentText[versionMatch[2]:versionMatch[3]]
		if _, parseError := goversion.NewVersion(versionValue); parseError != nil {
			return ""
		}
		return versionValue
	}
	return ""
}

// matchQuotedRegistryPaths captures quoted strings that explicitly reference a
// registry provider path.
func matchQuotedRegistryPaths(documentText string) []matcherCandidate {
	matches := quotedRegistryPathPattern.FindAllStringSubmatch(documentText, -1)
	candidates := make([]matcherCandidate, 0, len(matches))
	for _, match := range matches {
		candidates = append(candidates, matcherCandidate{value: match[1]})
	}
	return candidates
}

// matchBareRegistryPaths captures registry provider paths appearing outside
// quotes and without a protocol prefix.
func matchBareRegistryPaths(documentText string) []matcherCandidate {
	matches := bareRegistryPathPattern.FindAllString(documentText, -1)
	candidates := make([]matcherCandidate, 0, len(matches))
	for _, match := range matches {
		candidates = append(candidates, matcherCandidate{value: match})
	}
	return candidates
}

// matchQuotedOwnerPairs captures any quoted two-segment token pair. The rule
// over-matches on unrelated configuration values shaped like "word/word";
// that permissive behavior is intentional and covered by tests.
func matchQuotedOwnerPairs(documentText string) []matcherCandidate {
	matches := quotedOwnerPairPattern.FindAllStringSubmatch(documentText, -1)
	candidates := make([]matcherCandidate, 0, len(matches))
	for _, match := range matches {
		candidates = append(candidates, matcherCandidate{value: match[1]})
	}
	return candidates
}

// decomposeCandidate splits one raw candidate into organization and name and
// synthesizes the registry reference. A candidate that does not yield two
// non-empty identifier tokens is discarded silently.
func decomposeCandidate(candidate matcherCandidate) (ProviderReference, bool) {
	trimmedValue := strings.TrimSpace(candidate.value)

	strippedValue := strings.TrimPrefix(trimmedValue, httpsProtocolPrefixConstant)
	strippedValue = strings.TrimPrefix(strippedValue, httpProtocolPrefixConstant)
	carriedProtocol := strippedValue != trimmedValue

	var organization string
	var providerName string

	segments := strings.Split(strippedValue, providerSegmentSeparatorConstant)
	if strings.Contains(strippedValue, registryHostConstant) {
		if len(segments) < 2 {
			return ProviderReference{}, false
		}
		organization = segments[len(segments)-2]
		providerName = segments[len(segments)-1]
	} else {
		if len(segments) != 2 {
			return ProviderReference{}, false
		}
		organization = segments[0]
		providerName = segments[1]
	}

	if !identifierTokenPattern.MatchString(organization) || !identifierTokenPattern.MatchString(providerName) {
		return ProviderReference{}, false
	}

	registryReference := fmt.Sprintf(registryReferenceTemplateConstant, organization, providerName)
	if carriedProtocol {
		registryReference = trimmedValue
	}

	return ProviderReference{
		Organization:      organization,
		Name:              providerName,
		Version:           candidate.version,
		RegistryReference: registryReference,
	}, true
}

// collectAbsoluteURLs gathers protocol-bearing URLs for diagnostic display,
// stripping trailing punctuation and dropping repeats.
func collectAbsoluteURLs(documentText string) []string {
	matches := absoluteURLPattern.FindAllString(documentText, -1)
	if len(matches) == 0 {
		return nil
	}

	seenURLs := map[string]struct{}{}
	collectedURLs := make([]string, 0, len(matches))
	for _, match := range matches {
		trimmedURL := strings.TrimRight(match, trailingURLPunctuationConstant)
		if len(trimmedURL) == 0 {
			continue
		}
		if _, alreadyCollected := seenURLs[trimmedURL]; alreadyCollected {
			continue
		}
		seenURLs[trimmedURL] = struct{}{}
		collectedURLs = append(collectedURLs, trimmedURL)
	}

	return collectedURLs
}
