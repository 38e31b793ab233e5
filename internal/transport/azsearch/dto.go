package azsearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/wikibot/internal/domain/document"
)

// searchRequest is the body of POST /indexes/{index}/docs/search.
type searchRequest struct {
	Search                string `json:"search"`
	Select                string `json:"select"`
	SearchFields          string `json:"searchFields"`
	Top                   int    `json:"top"`
	Count                 bool   `json:"count"`
	Highlight             string `json:"highlight,omitempty"`
	HighlightPreTag       string `json:"highlightPreTag,omitempty"`
	HighlightPostTag      string `json:"highlightPostTag,omitempty"`
	QueryType             string `json:"queryType,omitempty"`
	SemanticConfiguration string `json:"semanticConfiguration,omitempty"`
}

type searchResponse struct {
	Count *int      `json:"@odata.count"`
	Value []hitJSON `json:"value"`
}

// hitJSON is one result row. Known metadata keys are lifted out; every other
// string-valued key is kept as a candidate body field.
type hitJSON struct {
	Score        float64
	Highlights   document.Highlights
	Name         string
	Path         string
	LastModified string
	Fields       map[string]string
}

func (h *hitJSON) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode hit: %w", err)
	}

	h.Fields = make(map[string]string)
	for key, val := range raw {
		switch key {
		case "@search.score":
			if err := json.Unmarshal(val, &h.Score); err != nil {
				return fmt.Errorf("decode score: %w", err)
			}
		case "@search.highlights":
			hl, err := decodeHighlights(val)
			if err != nil {
				return err
			}
			h.Highlights = hl
		case document.FieldStorageName:
			h.Name = stringOrEmpty(val)
		case document.FieldStoragePath:
			h.Path = stringOrEmpty(val)
		case document.FieldLastModified:
			h.LastModified = stringOrEmpty(val)
		default:
			if strings.HasPrefix(key, "@") {
				continue
			}
			if s := stringOrEmpty(val); s != "" {
				h.Fields[key] = s
			}
		}
	}
	return nil
}

func (h *hitJSON) toDomain() document.Document {
	return document.New(h.Name, h.Path, h.LastModified, h.Score, h.Fields, h.Highlights)
}

// decodeHighlights walks the highlight object token by token so the field
// order the service chose is kept.
func decodeHighlights(data []byte) (document.Highlights, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode highlights: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("decode highlights: expected object, got %v", tok)
	}

	hl := document.Highlights{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode highlights: %w", err)
		}
		field, _ := keyTok.(string)

		var fragments []string
		if err := dec.Decode(&fragments); err != nil {
			return nil, fmt.Errorf("decode highlights for %q: %w", field, err)
		}
		hl = append(hl, document.Highlight{Field: field, Fragments: fragments})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode highlights: %w", err)
	}
	return hl, nil
}

func stringOrEmpty(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// errorResponse is the service's error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
