// Package services implements the driving port interfaces.
// Services contain the lookup pipeline and orchestrate calls to
// driven ports (search clients).
//
// The pipeline for one Lookup call is:
//
//	options -> ChangeDetector -> ClientFactory (on change)
//	entities -> SearchClient (concurrently) -> FormatResults + BuildSummaryTags
//
// Formatting and tag building are pure functions over raw results.
package services
