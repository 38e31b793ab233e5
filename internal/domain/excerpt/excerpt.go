// Package excerpt turns search hits into the bounded text context sent to the chat model.
package excerpt

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
)

// Snippet and separator constants.
const (
	// MaxSnippetChars bounds a single document's snippet, ellipsis included.
	MaxSnippetChars = 1600
	// FragmentsPerField is how many highlight fragments each field contributes.
	FragmentsPerField = 2
	// FragmentSeparator joins highlight fragments.
	FragmentSeparator = " … "
	// Ellipsis marks a truncated snippet.
	Ellipsis = "…"
)

// Clean collapses whitespace runs to one space, trims, and truncates to at most
// maxChars characters. A truncated result ends with Ellipsis and is still
// maxChars long, so Clean(Clean(s, n), n) == Clean(s, n).
func Clean(s string, maxChars int) string {
	s = strings.Join(strings.Fields(s), " ")
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars-1]) + Ellipsis
}

// JoinHighlights concatenates up to perField fragments of every highlighted field,
// in the order the fields were returned.
func JoinHighlights(hl document.Highlights, perField int) string {
	var frags []string
	for _, h := range hl {
		n := len(h.Fragments)
		if n > perField {
			n = perField
		}
		frags = append(frags, h.Fragments[:n]...)
	}
	return strings.Join(frags, FragmentSeparator)
}

// Snippet selects the evidence text for one document: highlight fragments when
// the service attached any, the first non-blank body field otherwise.
func Snippet(d *document.Document) string {
	if d.HasHighlights() {
		return Clean(JoinHighlights(d.Highlights(), FragmentsPerField), MaxSnippetChars)
	}
	return Clean(d.Body(), MaxSnippetChars)
}
