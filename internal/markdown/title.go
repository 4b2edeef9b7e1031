// Package markdown extracts a display title from generated markdown content.
package markdown

import (
	"regexp"
	"strings"
)

// NoTitle is the fallback returned for empty or blank content. Generated
// content is contracted to start with a level-2 heading, so valid output
// never reaches this path — it exists for the no-content/corrupt-content case.
const NoTitle = "제목 없음"

// Heading probes, in priority order. (?m) makes ^/$ match per line, so a
// heading anywhere in the text qualifies — not just the first line.
var (
	h2Pattern     = regexp.MustCompile(`(?m)^##\s+(.+?)\s*$`)
	h1Pattern     = regexp.MustCompile(`(?m)^#\s+(.+?)\s*$`)
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	strongPattern = regexp.MustCompile(`__(.*?)__`)
)

// Title returns a short title for the given markdown content.
//
// Priority order:
//  1. first level-2 heading ("## ..."), inline bold markers stripped
//  2. first level-1 heading ("# ..."), same stripping
//  3. the raw first line, trimmed — NO marker stripping here: only
//     heading-shaped lines get cleaned up
//  4. NoTitle when there is nothing at all
func Title(content string) string {
	if content == "" {
		return NoTitle
	}

	if m := h2Pattern.FindStringSubmatch(content); m != nil {
		return stripEmphasis(m[1])
	}
	if m := h1Pattern.FindStringSubmatch(content); m != nil {
		return stripEmphasis(m[1])
	}

	firstLine := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	if firstLine == "" {
		return NoTitle
	}
	return firstLine
}

// stripEmphasis removes **bold** and __strong__ markers, keeping their inner
// text, then trims surrounding whitespace.
func stripEmphasis(s string) string {
	s = boldPattern.ReplaceAllString(s, "$1")
	s = strongPattern.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
