// Package catalog loads the QLVIM data files into a domain.Catalog and
// keeps a published snapshot fresh when the files change on disk.
//
// A data directory holds four files:
//
//	QLVIM_mapping.json    structured phrase to citation table (required)
//	QLVIM_text.json       extracted manual page text
//	modcodes-light.json   light vehicle mod codes
//	modcodes-heavy.json   heavy vehicle mod codes
//
// Only the mapping is required. The other files degrade to empty sets.
package catalog
