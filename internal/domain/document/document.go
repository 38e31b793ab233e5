package document

import (
	"strconv"
	"strings"
)

// Index field names written by the blob indexer.
const (
	FieldStorageName  = "metadata_storage_name"
	FieldStoragePath  = "metadata_storage_path"
	FieldLastModified = "metadata_storage_last_modified"
)

// BodyFields is the body-text priority list. The first non-blank field wins.
var BodyFields = []string{"merged_content", "content", "text", "layoutText", "translated_text"}

// SelectFields returns the fields requested from the index for every hit.
func SelectFields() []string {
	out := []string{FieldStorageName, FieldStoragePath, FieldLastModified}
	return append(out, BodyFields...)
}

// Highlight holds the fragments returned for one highlighted field.
type Highlight struct {
	Field     string
	Fragments []string
}

// Highlights keeps the fields in the order the search service returned them.
type Highlights []Highlight

// Document is one matched record of a search response.
type Document struct {
	name         string
	path         string
	lastModified string
	score        float64
	body         map[string]string
	highlights   Highlights
}

// New creates a document record.
func New(
	name, path, lastModified string, score float64,
	body map[string]string, highlights Highlights,
) Document {
	return Document{
		name: name, path: path, lastModified: lastModified, score: score,
		body: body, highlights: highlights,
	}
}

// Name returns the storage name (may be empty).
func (d *Document) Name() string { return d.name }

// Path returns the raw storage path, possibly base64 encoded.
func (d *Document) Path() string { return d.path }

// LastModified returns the last-modified timestamp as sent by the service.
func (d *Document) LastModified() string { return d.lastModified }

// Score returns the relevance score.
func (d *Document) Score() float64 { return d.score }

// Field returns a body-text field value.
func (d *Document) Field(name string) string { return d.body[name] }

// Highlights returns the highlighted fragments by field.
func (d *Document) Highlights() Highlights { return d.highlights }

// HasHighlights reports whether the service attached a highlight map.
func (d *Document) HasHighlights() bool { return len(d.highlights) > 0 }

// Body returns the first non-blank body-text field by BodyFields priority.
func (d *Document) Body() string { return PickBody(d.body, BodyFields) }

// DisplayName returns the storage name, or doc-{index} when it is absent.
func (d *Document) DisplayName(index int) string {
	if d.name != "" {
		return d.name
	}
	return "doc-" + strconv.Itoa(index)
}

// PickBody returns the value of the first field in priority whose value is not blank.
func PickBody(fields map[string]string, priority []string) string {
	for _, k := range priority {
		if v := fields[k]; strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
