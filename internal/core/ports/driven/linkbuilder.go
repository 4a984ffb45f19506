package driven

// LinkBuilder builds manual viewer deep links.
type LinkBuilder interface {
	// ManualLink returns a link that opens the manual at page.
	ManualLink(page int) string
}
