// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search pipeline is built from small pure parts: TermExpander,
// Matcher, Ranker and FallbackSearcher. SearchService wires them
// together over a catalog snapshot.
package services
