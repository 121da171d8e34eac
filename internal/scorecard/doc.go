// Package scorecard fetches OpenSSF Scorecard assessments for provider
// repositories. Score documents are stored verbatim; a missing scorecard is
// an expected outcome, not an error.
package scorecard
