package carousel

// Extractor parses rendered search results markup into a Result.
type Extractor interface {
	// Extract locates the carousel, resolves the list name and parses
	// every carousel entry in document order.
	//
	// Returns ECAROUSEL if no carousel is present, ELISTNAME if the list
	// name cannot be resolved and EPARSE if any entry lacks a name or link.
	// No partial result is returned.
	Extract(html string) (*Result, error)
}
