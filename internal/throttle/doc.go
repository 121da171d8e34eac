// Package throttle provides the fixed-delay pacing applied after each
// outbound network call. Every client concern owns one Throttle, giving
// retry or backoff policy a single seam should it ever be introduced.
package throttle
