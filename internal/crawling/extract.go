package crawling

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/course-progress/internal/types"
)

// DefaultSiteRoot is the course site's home page, linked from every course page.
const DefaultSiteRoot = "https://bev.facey.rocks/"

// DefaultExcludedDomains lists href substrings that are never assignments:
// the code host used for "edit this page" links and the two learning platforms.
var DefaultExcludedDomains = []string{
	"github.com",
	"classroom.google.com",
	"moodle",
}

// ExclusionRules decides which anchors are navigation or platform noise.
type ExclusionRules struct {
	SiteRoot        string
	ExcludedDomains []string
}

// DefaultExclusionRules returns the rules for the course site.
func DefaultExclusionRules() ExclusionRules {
	domains := make([]string, len(DefaultExcludedDomains))
	copy(domains, DefaultExcludedDomains)
	return ExclusionRules{
		SiteRoot:        DefaultSiteRoot,
		ExcludedDomains: domains,
	}
}

// Excludes reports whether href is a self-link to the site root or points
// at an excluded domain.
func (r ExclusionRules) Excludes(href string) bool {
	if r.SiteRoot != "" && href == r.SiteRoot {
		return true
	}
	for _, domain := range r.ExcludedDomains {
		if domain != "" && strings.Contains(href, domain) {
			return true
		}
	}
	return false
}

// ParseDocument parses a course page.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}
	return doc, nil
}

// ExtractAnchors parses html and returns its assignment entries.
// See ExtractAnchorsFromDocument.
func ExtractAnchors(html string, seen *SeenSet, rules ExclusionRules) ([]types.AssignmentEntry, error) {
	doc, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}
	return ExtractAnchorsFromDocument(doc, seen, rules), nil
}

// ExtractAnchorsFromDocument walks every element carrying an href in
// document order and keeps those with non-empty href and text that are not
// excluded and not yet in seen. Kept hrefs are added to seen, so the first
// occurrence anywhere in the load wins, including its display text.
func ExtractAnchorsFromDocument(doc *goquery.Document, seen *SeenSet, rules ExclusionRules) []types.AssignmentEntry {
	entries := make([]types.AssignmentEntry, 0)

	doc.Find("[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		text := strings.TrimSpace(s.Text())
		if href == "" || text == "" {
			return
		}
		if rules.Excludes(href) {
			return
		}
		if !seen.Add(href) {
			return
		}
		entries = append(entries, types.AssignmentEntry{Href: href, Name: text})
	})

	return entries
}
