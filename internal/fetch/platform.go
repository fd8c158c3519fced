// Package fetch - platform.go classifies course URLs into the known page families.
package fetch

import (
	"net/url"
	"strings"
)

// PageFamily identifies a known family of course pages.
type PageFamily string

const (
	// FamilyComputerScience covers the csNN.html course pages at the site root
	FamilyComputerScience PageFamily = "cs"
	// FamilyInformationTech covers pages under the IT path segment; these
	// mention NET module codes in plain text
	FamilyInformationTech PageFamily = "it"
	// FamilyCareerTech covers pages under the CTE path segment
	FamilyCareerTech PageFamily = "cte"
	// FamilyUnknown is an unrecognized page
	FamilyUnknown PageFamily = "unknown"
)

// DetectPageFamily identifies the page family from a course URL.
func DetectPageFamily(urlStr string) PageFamily {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return FamilyUnknown
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for _, segment := range segments[:max(len(segments)-1, 0)] {
		switch segment {
		case "IT":
			return FamilyInformationTech
		case "CTE":
			return FamilyCareerTech
		}
	}

	page := strings.ToLower(segments[len(segments)-1])
	if strings.HasPrefix(page, "cs") && strings.HasSuffix(page, ".html") {
		return FamilyComputerScience
	}

	return FamilyUnknown
}

// InfersFromText reports whether pages of this family list assignments as
// unlinked text codes that should be recovered by pattern inference.
func (f PageFamily) InfersFromText() bool {
	return f == FamilyInformationTech
}

// BaseURL returns the URL up to and including its final slash, the
// directory that sibling assignment pages are resolved against.
func BaseURL(urlStr string) string {
	idx := strings.LastIndex(urlStr, "/")
	if idx < 0 {
		return urlStr
	}
	return urlStr[:idx+1]
}
