// Package githubrepo probes GitHub for the expected provider repository of a
// Terraform provider. The probe is metadata-only: a single HEAD request per
// repository with no retry, mapped onto a tri-state existence status.
package githubrepo
