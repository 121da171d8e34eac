package lockfile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/provaudit/internal/lockfile"
)

const sampleLockDocumentConstant = `# This file is maintained automatically by "terraform init".

provider "registry.terraform.io/hashicorp/aws" {
  version     = "5.31.0"
  constraints = ">= 4.0.0"
  hashes = [
    "h1:ltxyuBWIy9cq0kIKDJH1jeWJy/y7XJLjS4QrsQK4plA=",
  ]
}

provider "registry.terraform.io/hashicorp/random" {
  version = "3.6.0"
}
`

func TestExtractProviderReferences(testInstance *testing.T) {
	testCases := []struct {
		name              string
		documentText      string
		expectedFullNames []string
	}{
		{
			name:              "registry_provider_declaration",
			documentText:      `provider "registry.terraform.io/providers/acme/widget" {}`,
			expectedFullNames: []string{"acme/widget"},
		},
		{
			name:              "two_segment_provider_declaration",
			documentText:      `provider "acme/widget" {}`,
			expectedFullNames: []string{"acme/widget"},
		},
		{
			name:              "single_quoted_provider_declaration",
			documentText:      `provider 'registry.terraform.io/hashicorp/null' {}`,
			expectedFullNames: []string{"hashicorp/null"},
		},
		{
			name:              "quoted_registry_path_without_declaration",
			documentText:      `source = "https://registry.terraform.io/providers/acme/widget"`,
			expectedFullNames: []string{"acme/widget"},
		},
		{
			name:              "bare_registry_path",
			documentText:      `see registry.terraform.io/providers/acme/widget for details`,
			expectedFullNames: []string{"acme/widget"},
		},
		{
			name:              "quoted_owner_pair_fallback",
			documentText:      `value = "acme/widget"`,
			expectedFullNames: []string{"acme/widget"},
		},
		{
			// The fallback rule is a deliberate over-match: any quoted
			// two-segment string is treated as a provider reference.
			name:              "fallback_over_match_on_unrelated_value",
			documentText:      `storage_class = "standard/regional"`,
			expectedFullNames: []string{"standard/regional"},
		},
		{
			name:              "duplicate_full_names_collapse",
			documentText:      `provider "registry.terraform.io/acme/widget" {}` + "\n" + `other = "acme/widget"`,
			expectedFullNames: []string{"acme/widget"},
		},
		{
			name:              "single_segment_declaration_discarded",
			documentText:      `provider "aws" {}`,
			expectedFullNames: nil,
		},
		{
			name:              "three_segment_unquoted_host_free_value_discarded",
			documentText:      `provider "example.com/acme/widget" {}`,
			expectedFullNames: nil,
		},
		{
			name:              "no_candidates",
			documentText:      "nothing to see here",
			expectedFullNames: nil,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			extraction := lockfile.NewExtractor().Extract(testCase.documentText)

			collectedFullNames := make([]string, 0, len(extraction.Providers))
			for _, provider := range extraction.Providers {
				collectedFullNames = append(collectedFullNames, provider.FullName())
			}

			if testCase.expectedFullNames == nil {
				require.Empty(subTest, collectedFullNames)
				return
			}
			require.Equal(subTest, testCase.expectedFullNames, collectedFullNames)
		})
	}
}

func TestExtractPreservesDeclarationOrderAndUniqueness(testInstance *testing.T) {
	extraction := lockfile.NewExtractor().Extract(sampleLockDocumentConstant)

	require.Len(testInstance, extraction.Providers, 2)
	require.Equal(testInstance, "hashicorp/aws", extraction.Providers[0].FullName())
	require.Equal(testInstance, "hashicorp/random", extraction.Providers[1].FullName())

	seenFullNames := map[string]struct{}{}
	for _, provider := range extraction.Providers {
		_, duplicated := seenFullNames[provider.FullName()]
		require.False(testInstance, duplicated)
		seenFullNames[provider.FullName()] = struct{}{}
	}
}

func TestExtractCapturesDeclarationVersions(testInstance *testing.T) {
	extraction := lockfile.NewExtractor().Extract(sampleLockDocumentConstant)

	require.Len(testInstance, extraction.Providers, 2)
	require.Equal(testInstance, "5.31.0", extraction.Providers[0].Version)
	require.Equal(testInstance, "3.6.0", extraction.Providers[1].Version)
}

func TestExtractDiscardsUnparseableVersions(testInstance *testing.T) {
	documentText := `provider "registry.terraform.io/acme/widget" {` + "\n" + `  version = "not-a-version"` + "\n" + `}`

	extraction := lockfile.NewExtractor().Extract(documentText)

	require.Len(testInstance, extraction.Providers, 1)
	require.Empty(testInstance, extraction.Providers[0].Version)
}

func TestExtractSynthesizesRegistryReferences(testInstance *testing.T) {
	testCases := []struct {
		name                      string
		documentText              string
		expectedRegistryReference string
	}{
		{
			name:                      "synthesized_when_protocol_absent",
			documentText:              `provider "registry.terraform.io/acme/widget" {}`,
			expectedRegistryReference: "https://registry.terraform.io/providers/acme/widget",
		},
		{
			name:                      "preserved_verbatim_when_protocol_present",
			documentText:              `source = "https://registry.terraform.io/provider/acme/widget"`,
			expectedRegistryReference: "https://registry.terraform.io/provider/acme/widget",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			extraction := lockfile.NewExtractor().Extract(testCase.documentText)

			require.Len(subTest, extraction.Providers, 1)
			require.Equal(subTest, testCase.expectedRegistryReference, extraction.Providers[0].RegistryReference)
		})
	}
}

func TestExtractCollectsRawURLsWithTrailingPunctuationStripped(testInstance *testing.T) {
	documentText := `urls = [https://example.com/a, https://example.com/b] https://example.com/c}`

	extraction := lockfile.NewExtractor().Extract(documentText)

	require.Equal(testInstance, []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}, extraction.RawURLs)
}

func TestExtractReportsMatcherCandidateCounts(testInstance *testing.T) {
	extraction := lockfile.NewExtractor().Extract(sampleLockDocumentConstant)

	require.Len(testInstance, extraction.MatcherCandidateCounts, 4)
	require.Equal(testInstance, "provider_declaration", extraction.MatcherCandidateCounts[0].RuleName)
	require.Equal(testInstance, 2, extraction.MatcherCandidateCounts[0].CandidateCount)
}
