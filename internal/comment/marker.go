package comment

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// DefaultHeader keys the marker pair when the caller supplies none.
	DefaultHeader = "docs-preview"
	// DefaultPrefix namespaces markers so unrelated tooling can share a PR.
	DefaultPrefix = "action"
)

// detailsOpen matches the open attribute inside a <details> opening tag,
// keeping the surrounding attributes in the capture groups.
var detailsOpen = regexp.MustCompile(`(?i)(<details[^>]*?)\s+open\b([^>]*>)`)

// markers derives the START/END delimiter pair from (header, prefix). Pure
// string derivation: identical inputs always yield identical markers, which
// is what makes a sticky comment re-discoverable across runs.
func markers(header, prefix string) (start, end string) {
	key := strings.TrimSpace(header)
	if key == "" {
		key = DefaultHeader
	}
	ns := strings.TrimSpace(prefix)
	if ns == "" {
		ns = DefaultPrefix
	}
	start = fmt.Sprintf("<!-- %s:%s:START -->", ns, key)
	end = fmt.Sprintf("<!-- %s:%s:END -->", ns, key)
	return start, end
}

// WrapBody surrounds body with the derived marker pair.
func WrapBody(body, header, prefix string) string {
	start, end := markers(header, prefix)
	return start + "\n" + body + "\n" + end
}

// UnwrapBody extracts the content strictly between the markers, trimmed.
// A body missing either marker has no managed content and yields "".
func UnwrapBody(body, header, prefix string) string {
	start, end := markers(header, prefix)
	i := strings.Index(body, start)
	if i < 0 {
		return ""
	}
	rest := body[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:j])
}

// Equal reports whether two bodies carry the same managed content. Each side
// is normalized to its inner marker content, falling back to the raw string
// (trimmed) when the markers are absent on that side. Used to skip updates
// that would only bump the edited timestamp.
func Equal(body, previous, header, prefix string) bool {
	return normalizeBody(body, header, prefix) == normalizeBody(previous, header, prefix)
}

func normalizeBody(body, header, prefix string) string {
	start, end := markers(header, prefix)
	if strings.Contains(body, start) && strings.Contains(body, end) {
		return UnwrapBody(body, header, prefix)
	}
	return strings.TrimSpace(body)
}

// BodyOf returns the previous body to carry into an append-mode update. The
// second return is false when appendMode is off (the caller replaces
// outright and needs no previous body). With hideDetails set, previously
// expanded <details> sections are collapsed by stripping only the open token.
func BodyOf(previous *Comment, appendMode, hideDetails bool) (string, bool) {
	if !appendMode {
		return "", false
	}
	if previous == nil || previous.Body == "" {
		return "", true
	}
	if !hideDetails {
		return previous.Body, true
	}
	return detailsOpen.ReplaceAllString(previous.Body, "$1$2"), true
}
