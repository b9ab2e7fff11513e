// Package domain defines the core types for SharePoint entity lookups.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entity: A single search request supplied by the caller
//   - ConnectionOptions: The caller's SharePoint connection settings
//   - RawResult: An unmodified record returned by the search service
//   - FormattedResult: A display-ready copy of a RawResult
//   - LookupResult: The per-entity outcome of a lookup
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
