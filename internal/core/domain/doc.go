// Package domain defines the core business entities for notesweep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Note: A remote CRM note as observed through the listing API
//   - Progress: The durable record of deletion progress across runs
//   - DeleteResult: The per-note outcome of one deletion attempt
//   - RunReport: The summary of one fetch/filter/delete/persist run
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
