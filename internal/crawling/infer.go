package crawling

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/course-progress/internal/logger"
	"github.com/jonathan/course-progress/internal/types"
)

// DefaultCodePrefix is the module code prefix used on IT course pages.
const DefaultCodePrefix = "NET"

var prefixPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// ExistenceChecker verifies that a synthesized URL resolves.
// Implementations must report false rather than fail.
type ExistenceChecker interface {
	CheckExists(ctx context.Context, url string) bool
}

// ExistenceCheckerFunc adapts a function to ExistenceChecker.
type ExistenceCheckerFunc func(ctx context.Context, url string) bool

// CheckExists calls f.
func (f ExistenceCheckerFunc) CheckExists(ctx context.Context, url string) bool {
	return f(ctx, url)
}

// Candidate is a code mentioned in page text as "CODE: Title".
type Candidate struct {
	Code  string
	Title string
}

// Name is the display label used for the synthetic entry.
func (c Candidate) Name() string {
	if c.Title == "" {
		return c.Code
	}
	return fmt.Sprintf("%s: %s", c.Code, c.Title)
}

// Inferrer recovers assignments that a page mentions as plain-text codes
// without linking them.
type Inferrer struct {
	prefix  string
	codeRe  *regexp.Regexp // any prefix-plus-digits run, case-insensitive
	entryRe *regexp.Regexp // "CODE: Title" in page text
	checker ExistenceChecker
	logger  logger.Logger
}

// NewInferrer builds an inferrer for codes made of prefix followed by digits.
func NewInferrer(prefix string, checker ExistenceChecker, log logger.Logger) (*Inferrer, error) {
	if !prefixPattern.MatchString(prefix) {
		return nil, &ExtractionError{Message: fmt.Sprintf("invalid code prefix %q: must be letters only", prefix)}
	}
	if checker == nil {
		return nil, &ExtractionError{Message: "existence checker is required"}
	}
	if log == nil {
		log = logger.NewNop()
	}

	quoted := regexp.QuoteMeta(strings.ToUpper(prefix))
	return &Inferrer{
		prefix:  strings.ToUpper(prefix),
		codeRe:  regexp.MustCompile(`(?i)` + quoted + `(\d+)`),
		entryRe: regexp.MustCompile(`\b` + quoted + `(\d+):[ \t]*([^,\n<]+)`),
		checker: checker,
		logger:  log,
	}, nil
}

// LinkedCodes collects every code that appears in an anchor's href or text.
func (i *Inferrer) LinkedCodes(doc *goquery.Document) map[string]struct{} {
	codes := make(map[string]struct{})
	doc.Find("[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		for _, source := range []string{href, s.Text()} {
			for _, code := range i.codes(source) {
				codes[code] = struct{}{}
			}
		}
	})
	return codes
}

// codes finds every code in s. A match glued to a preceding letter, as in
// SUBNET5, belongs to a longer word and is skipped; digits, punctuation and
// underscores are fine separators.
func (i *Inferrer) codes(s string) []string {
	var found []string
	for _, m := range i.codeRe.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > 0 && isASCIILetter(s[m[0]-1]) {
			continue
		}
		found = append(found, i.prefix+s[m[2]:m[3]])
	}
	return found
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Candidates scans raw page text for "CODE: Title" mentions in order.
// It has no side effects.
func (i *Inferrer) Candidates(html string) []Candidate {
	matches := i.entryRe.FindAllStringSubmatch(html, -1)
	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, Candidate{
			Code:  i.prefix + m[1],
			Title: strings.TrimSpace(m[2]),
		})
	}
	return candidates
}

// SyntheticURL is where an unlinked code's page is expected to live.
func SyntheticURL(baseURL, code string) string {
	return baseURL + code + ".html"
}

// Infer returns synthetic entries for codes mentioned in html but not linked
// in doc. Each candidate whose URL is not yet in seen is verified one at a
// time, in text order; verified URLs are added to seen. Candidates that fail
// verification are dropped without error.
func (i *Inferrer) Infer(ctx context.Context, doc *goquery.Document, html, baseURL string, seen *SeenSet) []types.AssignmentEntry {
	linked := i.LinkedCodes(doc)
	entries := make([]types.AssignmentEntry, 0)

	for _, candidate := range i.Candidates(html) {
		if _, ok := linked[candidate.Code]; ok {
			continue
		}
		url := SyntheticURL(baseURL, candidate.Code)
		if seen.Has(url) {
			continue
		}
		if !i.checker.CheckExists(ctx, url) {
			i.logger.Debug("Dropping unverified synthetic assignment",
				logger.String("code", candidate.Code),
				logger.String("url", url),
			)
			continue
		}
		seen.Add(url)
		entries = append(entries, types.AssignmentEntry{Href: url, Name: candidate.Name()})
	}

	return entries
}
