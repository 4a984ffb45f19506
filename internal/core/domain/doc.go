// Package domain defines the core business entities for dart.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - StructuredEntry: A curated phrase to manual citation mapping row
//   - ManualPage: One page of extracted manual text
//   - Catalog: The immutable data set searches run against
//   - ResultCard: A single rendered search hit
//   - SearchOutcome: The result of one search, including its status
//   - ModCode: A pre-approved modification code and its title
//   - ReportItem: A citation added to the inspection report
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
