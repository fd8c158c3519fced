package crawling

import (
	"context"
	"testing"

	"github.com/jonathan/course-progress/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker answers existence checks from a fixed set and records every probe.
type stubChecker struct {
	existing map[string]bool
	probed   []string
}

func (s *stubChecker) CheckExists(_ context.Context, url string) bool {
	s.probed = append(s.probed, url)
	return s.existing[url]
}

const itBase = "https://bev.facey.rocks/IT/"

func newTestInferrer(t *testing.T, checker ExistenceChecker) *Inferrer {
	t.Helper()
	inferrer, err := NewInferrer(DefaultCodePrefix, checker, nil)
	require.NoError(t, err)
	return inferrer
}

func inferFrom(t *testing.T, inferrer *Inferrer, html string, seen *SeenSet) []types.AssignmentEntry {
	t.Helper()
	doc, err := ParseDocument(html)
	require.NoError(t, err)
	return inferrer.Infer(context.Background(), doc, html, itBase, seen)
}

func TestNewInferrer_Validation(t *testing.T) {
	_, err := NewInferrer("NET1", &stubChecker{}, nil)
	assert.Error(t, err)

	_, err = NewInferrer("", &stubChecker{}, nil)
	assert.Error(t, err)

	_, err = NewInferrer("NET", nil, nil)
	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestCandidates(t *testing.T) {
	inferrer := newTestInferrer(t, &stubChecker{})
	html := "<li>NET1010: Networking Basics, due soon</li>\n<li>NET1020:Cabling</li>\nNET1030 has no colon\nCNET5: not a code boundary"

	assert.Equal(t, []Candidate{
		{Code: "NET1010", Title: "Networking Basics"},
		{Code: "NET1020", Title: "Cabling"},
	}, inferrer.Candidates(html))
}

func TestCandidates_TitleStopsAtNewlineAndTag(t *testing.T) {
	inferrer := newTestInferrer(t, &stubChecker{})

	candidates := inferrer.Candidates("NET2010: Routing <b>bold</b>\nNET2020: Switching\nmore")
	assert.Equal(t, []Candidate{
		{Code: "NET2010", Title: "Routing"},
		{Code: "NET2020", Title: "Switching"},
	}, candidates)
}

func TestCandidate_Name(t *testing.T) {
	assert.Equal(t, "NET1010: Basics", Candidate{Code: "NET1010", Title: "Basics"}.Name())
	assert.Equal(t, "NET1010", Candidate{Code: "NET1010"}.Name())
}

func TestLinkedCodes(t *testing.T) {
	inferrer := newTestInferrer(t, &stubChecker{})
	doc, err := ParseDocument(`
		<a href="net1010.html">Intro</a>
		<a href="/other.html">NET1020: Cabling</a>
		<a href="/x.html">Nothing here</a>`)
	require.NoError(t, err)

	codes := inferrer.LinkedCodes(doc)
	assert.Contains(t, codes, "NET1010")
	assert.Contains(t, codes, "NET1020")
	assert.Len(t, codes, 2)
}

func TestLinkedCodes_EmbeddedAfterSeparator(t *testing.T) {
	inferrer := newTestInferrer(t, &stubChecker{})
	doc, err := ParseDocument(`
		<a href="Module_NET5.html">Module five</a>
		<a href="/labs.html">lab_net6 and 7NET7</a>
		<a href="/subnet.html">SUBNET8 practice</a>`)
	require.NoError(t, err)

	codes := inferrer.LinkedCodes(doc)
	assert.Contains(t, codes, "NET5")
	assert.Contains(t, codes, "NET6")
	assert.Contains(t, codes, "NET7")
	assert.NotContains(t, codes, "NET8", "a prefix glued to a preceding letter is part of another word")
	assert.Len(t, codes, 3)
}

func TestInfer_LinkedUnderEmbeddedNameNotDuplicated(t *testing.T) {
	checker := &stubChecker{existing: map[string]bool{itBase + "NET5.html": true}}
	inferrer := newTestInferrer(t, checker)
	seen := NewSeenSet()

	html := `<a href="Module_NET5.html">Module five</a><p>NET5: Routing</p>`
	doc, err := ParseDocument(html)
	require.NoError(t, err)
	anchors := ExtractAnchorsFromDocument(doc, seen, DefaultExclusionRules())
	entries := inferrer.Infer(context.Background(), doc, html, itBase, seen)

	assert.Len(t, anchors, 1)
	assert.Empty(t, entries)
	assert.Empty(t, checker.probed)
}

func TestInfer_SkipsLinkedCodes(t *testing.T) {
	checker := &stubChecker{existing: map[string]bool{itBase + "NET1010.html": true}}
	inferrer := newTestInferrer(t, checker)

	html := `<a href="NET1010.html">NET1010: Basics</a>`
	entries := inferFrom(t, inferrer, html, NewSeenSet())

	assert.Empty(t, entries)
	assert.Empty(t, checker.probed, "linked codes must not be verified")
}

func TestInfer_AddsVerifiedCodesOnly(t *testing.T) {
	checker := &stubChecker{existing: map[string]bool{itBase + "NET1020.html": true}}
	inferrer := newTestInferrer(t, checker)
	seen := NewSeenSet()

	html := "<p>NET1010: Basics</p>\n<p>NET1020: Cabling</p>"
	entries := inferFrom(t, inferrer, html, seen)

	assert.Equal(t, []types.AssignmentEntry{
		{Href: itBase + "NET1020.html", Name: "NET1020: Cabling"},
	}, entries)
	assert.Equal(t, []string{itBase + "NET1010.html", itBase + "NET1020.html"}, checker.probed)
	assert.True(t, seen.Has(itBase+"NET1020.html"))
	assert.False(t, seen.Has(itBase+"NET1010.html"))
}

func TestInfer_SkipsAlreadySeenURL(t *testing.T) {
	checker := &stubChecker{existing: map[string]bool{itBase + "NET1010.html": true}}
	inferrer := newTestInferrer(t, checker)
	seen := NewSeenSet()
	seen.Add(itBase + "NET1010.html")

	entries := inferFrom(t, inferrer, "NET1010: Basics", seen)

	assert.Empty(t, entries)
	assert.Empty(t, checker.probed)
}

func TestInfer_RepeatedMentionVerifiedOnce(t *testing.T) {
	checker := &stubChecker{existing: map[string]bool{itBase + "NET1010.html": true}}
	inferrer := newTestInferrer(t, checker)

	entries := inferFrom(t, inferrer, "NET1010: Basics\nNET1010: Basics again", NewSeenSet())

	assert.Equal(t, []types.AssignmentEntry{{Href: itBase + "NET1010.html", Name: "NET1010: Basics"}}, entries)
	assert.Len(t, checker.probed, 1)
}

func TestInfer_CustomPrefix(t *testing.T) {
	checker := ExistenceCheckerFunc(func(context.Context, string) bool { return true })
	inferrer, err := NewInferrer("CSE", checker, nil)
	require.NoError(t, err)

	entries := inferFrom(t, inferrer, "CSE1110: Structured Programming 1\nNET1010: Basics", NewSeenSet())
	assert.Equal(t, []types.AssignmentEntry{
		{Href: itBase + "CSE1110.html", Name: "CSE1110: Structured Programming 1"},
	}, entries)
}

func TestSyntheticURL(t *testing.T) {
	assert.Equal(t, "https://bev.facey.rocks/IT/NET1010.html", SyntheticURL(itBase, "NET1010"))
}
