package crawling

// SeenSet records the hrefs already attributed to a course during one
// category load. It is created fresh per load and threaded explicitly
// through every extraction step; it is never persisted or shared across
// categories.
type SeenSet struct {
	hrefs map[string]struct{}
}

// NewSeenSet creates an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{hrefs: make(map[string]struct{})}
}

// Has reports whether href was already claimed.
func (s *SeenSet) Has(href string) bool {
	_, ok := s.hrefs[href]
	return ok
}

// Add claims href. It returns false if href was already claimed.
func (s *SeenSet) Add(href string) bool {
	if s.Has(href) {
		return false
	}
	s.hrefs[href] = struct{}{}
	return true
}

// Len returns the number of claimed hrefs.
func (s *SeenSet) Len() int {
	return len(s.hrefs)
}
