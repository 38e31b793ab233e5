package document

import (
	"reflect"
	"testing"
)

func TestPickBody_Priority(t *testing.T) {
	fields := map[string]string{
		"text":           "from text",
		"content":        "from content",
		"merged_content": "   ",
	}
	if got := PickBody(fields, BodyFields); got != "from content" {
		t.Errorf("PickBody() = %q, want %q", got, "from content")
	}
}

func TestPickBody_None(t *testing.T) {
	if got := PickBody(map[string]string{"title": "x"}, BodyFields); got != "" {
		t.Errorf("PickBody() = %q, want empty", got)
	}
	if got := PickBody(nil, BodyFields); got != "" {
		t.Errorf("PickBody(nil) = %q, want empty", got)
	}
}

func TestPickBody_LastCandidate(t *testing.T) {
	fields := map[string]string{"translated_text": "translated"}
	if got := PickBody(fields, BodyFields); got != "translated" {
		t.Errorf("PickBody() = %q", got)
	}
}

func TestDocument_Accessors(t *testing.T) {
	hl := Highlights{{Field: "content", Fragments: []string{"a"}}}
	d := New("leave.pdf", "aHR0cHM6Ly9leGFtcGxl", "2025-01-02T03:04:05Z", 1.5,
		map[string]string{"content": "body"}, hl)

	if d.Name() != "leave.pdf" {
		t.Errorf("Name() = %q", d.Name())
	}
	if d.Path() != "aHR0cHM6Ly9leGFtcGxl" {
		t.Errorf("Path() = %q", d.Path())
	}
	if d.LastModified() != "2025-01-02T03:04:05Z" {
		t.Errorf("LastModified() = %q", d.LastModified())
	}
	if d.Score() != 1.5 {
		t.Errorf("Score() = %f", d.Score())
	}
	if d.Body() != "body" {
		t.Errorf("Body() = %q", d.Body())
	}
	if d.Field("content") != "body" {
		t.Errorf("Field() = %q", d.Field("content"))
	}
	if !d.HasHighlights() {
		t.Error("HasHighlights() = false")
	}
	if !reflect.DeepEqual(d.Highlights(), hl) {
		t.Errorf("Highlights() = %v", d.Highlights())
	}
}

func TestDocument_DisplayName(t *testing.T) {
	named := New("a.pdf", "", "", 0, nil, nil)
	if got := named.DisplayName(3); got != "a.pdf" {
		t.Errorf("DisplayName() = %q", got)
	}
	anon := New("", "", "", 0, nil, nil)
	if got := anon.DisplayName(3); got != "doc-3" {
		t.Errorf("DisplayName() = %q, want doc-3", got)
	}
}

func TestSelectFields(t *testing.T) {
	want := []string{
		"metadata_storage_name", "metadata_storage_path", "metadata_storage_last_modified",
		"merged_content", "content", "text", "layoutText", "translated_text",
	}
	if got := SelectFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("SelectFields() = %v", got)
	}
}
