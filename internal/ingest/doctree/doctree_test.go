package doctree

import (
	"errors"
	"testing"
)

func TestNewConverter_CustomElementSet(t *testing.T) {
	t.Parallel()

	raw := []byte(`<root><widget name="a"/><gadget name="b"/></root>`)

	// "widget" is not in the built-in set; a caller-supplied set replaces
	// the default rather than extending it.
	doc, err := NewConverter("widget").Convert(raw)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	root, ok := doc.Child("root")
	if !ok {
		t.Fatal("missing root")
	}
	if got := root.Children("widget"); len(got) != 1 {
		t.Errorf("widget nodes: got %d, want 1", len(got))
	}
	if _, ok := root.Child("gadget"); !ok {
		t.Error("gadget should stay a plain mapping outside the forced set")
	}

	for _, name := range ListElements() {
		if name == "widget" {
			t.Fatal("custom set leaked into the default element set")
		}
	}
}

func TestConvert_ForcesSingletonsToSequences(t *testing.T) {
	t.Parallel()

	raw := []byte(`<dictionary>
  <entries>
    <entry publish="true">
      <head><headword>zootie</headword></head>
      <forms>
        <form freq="3"><label>zootie</label></form>
      </forms>
    </entry>
  </entries>
</dictionary>`)

	conv := NewConverter()
	doc, err := conv.Convert(raw)
	if err != nil {
		t.Fatalf("Convert: unexpected error: %v", err)
	}

	dict, ok := doc.Child("dictionary")
	if !ok {
		t.Fatal("missing dictionary root")
	}
	entries, ok := dict.Child("entries")
	if !ok {
		t.Fatal("missing entries container")
	}

	// Exactly one <entry> in the source, still a sequence after conversion.
	entryNodes := entries.Children("entry")
	if len(entryNodes) != 1 {
		t.Fatalf("entry nodes: got %d, want 1", len(entryNodes))
	}

	entry := entryNodes[0]
	if got, _ := entry.Attr("publish"); got != "true" {
		t.Errorf("publish attr: got %q, want %q", got, "true")
	}

	head, ok := entry.Child("head")
	if !ok {
		t.Fatal("missing head")
	}
	if got, _ := head.ChildText("headword"); got != "zootie" {
		t.Errorf("headword: got %q, want %q", got, "zootie")
	}

	forms, _ := entry.Child("forms")
	formNodes := forms.Children("form")
	if len(formNodes) != 1 {
		t.Fatalf("form nodes: got %d, want 1", len(formNodes))
	}
	if got, _ := formNodes[0].Attr("freq"); got != "3" {
		t.Errorf("form freq: got %q, want %q", got, "3")
	}
	if got, _ := formNodes[0].ChildText("label"); got != "zootie" {
		t.Errorf("form label: got %q, want %q", got, "zootie")
	}
}

func TestConvert_MultipleSiblings(t *testing.T) {
	t.Parallel()

	raw := []byte(`<example>
  <artist>Raekwon</artist>
  <artist>Ghostface Killah</artist>
  <feat>Cappadonna</feat>
</example>`)

	doc, err := NewConverter().Convert(raw)
	if err != nil {
		t.Fatalf("Convert: unexpected error: %v", err)
	}

	ex, ok := doc.Child("example")
	if !ok {
		t.Fatal("missing example root")
	}

	artists := ex.Children("artist")
	if len(artists) != 2 {
		t.Fatalf("artists: got %d, want 2", len(artists))
	}
	if artists[0].Content() != "Raekwon" || artists[1].Content() != "Ghostface Killah" {
		t.Errorf("artist contents: got %q, %q", artists[0].Content(), artists[1].Content())
	}

	feats := ex.Children("feat")
	if len(feats) != 1 || feats[0].Content() != "Cappadonna" {
		t.Errorf("feat: got %v", feats)
	}
}

func TestConvert_AbsentChildrenYieldEmptySlice(t *testing.T) {
	t.Parallel()

	doc, err := NewConverter().Convert([]byte(`<sense id="e1_n_1"><definition>d</definition></sense>`))
	if err != nil {
		t.Fatalf("Convert: unexpected error: %v", err)
	}
	sense, _ := doc.Child("sense")

	if got := sense.Children("example"); len(got) != 0 {
		t.Errorf("absent children: got %d nodes, want 0", len(got))
	}
	if _, ok := sense.Child("examples"); ok {
		t.Error("absent child lookup: got ok=true, want false")
	}
}

func TestConvert_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewConverter().Convert([]byte(`<entry><head>unclosed`))
	if err == nil {
		t.Fatal("Convert: want error for malformed markup")
	}
	var malformed *MalformedSourceError
	if !errors.As(err, &malformed) {
		t.Errorf("Convert: want *MalformedSourceError, got %T", err)
	}
}

func TestNormalize_PreConvertedTree(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"entries": map[string]any{
			"entry": map[string]any{
				"head": map[string]any{"headword": "cheddar"},
			},
		},
	}

	doc := NewConverter().Normalize(tree)
	entries, _ := doc.Child("entries")
	got := entries.Children("entry")
	if len(got) != 1 {
		t.Fatalf("entry nodes: got %d, want 1", len(got))
	}
}
