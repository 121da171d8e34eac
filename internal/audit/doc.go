// Package audit orchestrates the provider security audit: lock file
// extraction, repository existence probing, scorecard fetching, the optional
// batch AI summary, and the final report table. Each identity is processed
// strictly sequentially with a fixed courtesy delay after every network call.
package audit
