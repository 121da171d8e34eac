// Package lockfile extracts Terraform provider references from dependency
// lock file text. The file is treated as an opaque document: an ordered list
// of matcher rules produces raw candidates, and a single decomposition stage
// validates, normalizes, and de-duplicates them into provider references.
package lockfile
