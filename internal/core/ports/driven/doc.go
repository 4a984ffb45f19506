// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogReader: Read access to the loaded mapping, page text and code tables
//   - CatalogLoader: Builds a catalog from the data directory
//   - LinkBuilder: Builds manual viewer deep links
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReportStore: Inspection report persistence. Without it, adding to the report fails.
//   - HistoryStore: Search history persistence. Without it, history is not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
