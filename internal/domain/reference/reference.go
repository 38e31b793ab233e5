// Package reference renders the citation list and per-document detail entries shown next to an answer.
package reference

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
	"github.com/kailas-cloud/wikibot/internal/domain/excerpt"
)

// Presentation limits.
const (
	MaxReferences   = 5
	DetailBodyChars = 500
)

// Reference is one line of the reference list.
type Reference struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Path  string `json:"path"`
}

// String renders "[i] name  |  path".
func (r Reference) String() string {
	return fmt.Sprintf("[%d] %s  |  %s", r.Index, r.Name, r.Path)
}

// HighlightLine is one highlighted field in a detail entry.
type HighlightLine struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

// Detail is the expandable per-document view.
type Detail struct {
	Index        int             `json:"index"`
	Name         string          `json:"name"`
	LastModified string          `json:"last_modified"`
	Path         string          `json:"path,omitempty"`
	Highlights   []HighlightLine `json:"highlights,omitempty"`
	Snippet      string          `json:"snippet,omitempty"`
	Expanded     bool            `json:"expanded"`
}

// Title renders "[i] name  |  last-modified".
func (d Detail) Title() string {
	return fmt.Sprintf("[%d] %s  |  %s", d.Index, d.Name, d.LastModified)
}

// DecodeStoragePath decodes a padded standard base64 storage path.
// Anything that is not valid base64 of UTF-8 text is returned unchanged.
func DecodeStoragePath(p string) string {
	if p == "" {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(p)
	if err != nil || !utf8.Valid(raw) {
		return p
	}
	return string(raw)
}

// References lists at most MaxReferences documents with their decoded paths.
func References(docs []document.Document) []Reference {
	n := min(len(docs), MaxReferences)
	refs := make([]Reference, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, Reference{
			Index: i + 1,
			Name:  docs[i].Name(),
			Path:  DecodeStoragePath(docs[i].Path()),
		})
	}
	return refs
}

// Details builds one entry per document. Highlight lines are used when
// highlighting was requested and the document carries fragments; otherwise a
// short cleaned body snippet. The first entry starts expanded.
func Details(docs []document.Document, highlight bool) []Detail {
	out := make([]Detail, 0, len(docs))
	for i := range docs {
		d := &docs[i]
		det := Detail{
			Index:        i + 1,
			Name:         d.Name(),
			LastModified: d.LastModified(),
			Path:         DecodeStoragePath(d.Path()),
			Expanded:     i == 0,
		}
		if highlight && d.HasHighlights() {
			for _, h := range d.Highlights() {
				n := min(len(h.Fragments), excerpt.FragmentsPerField)
				det.Highlights = append(det.Highlights, HighlightLine{
					Field: h.Field,
					Text:  strings.Join(h.Fragments[:n], excerpt.FragmentSeparator),
				})
			}
		} else {
			det.Snippet = excerpt.Clean(d.Body(), DetailBodyChars)
		}
		out = append(out, det)
	}
	return out
}
