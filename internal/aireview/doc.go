// Package aireview requests a single natural-language summary of a provider
// security batch from a chat-completion API. The feature is optional: without
// a configured credential the request is skipped, and any failure is reported
// as a warning without affecting collected results.
package aireview
