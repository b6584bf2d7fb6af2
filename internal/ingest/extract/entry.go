package extract

import (
	"encoding/json"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

// EntryRecord is the parsed form of one dictionary entry document.
type EntryRecord struct {
	Headword string
	Slug     string
	SortKey  string
	Letter   string
	Publish  bool
	// Snapshot is a canonical serialization of the raw entry node, kept on
	// the persisted row for change detection across ingestion runs.
	Snapshot string

	Forms   []FormRecord
	Lexemes []LexemeRecord
}

// FormRecord is a parsed spelling variant.
type FormRecord struct {
	Label     string
	Slug      string
	Frequency int
}

// LexemeRecord groups an entry's senses under one part of speech.
type LexemeRecord struct {
	PartOfSpeech string
	Senses       []SenseRecord
}

// EntryNodes locates the entry sequence in a converted document,
// accepting either a bare <entry> root or a <dictionary><entries> wrapper.
func EntryNodes(doc doctree.Node) []doctree.Node {
	if nodes := doc.Children("entry"); len(nodes) > 0 {
		return nodes
	}
	if dict, ok := doc.Child("dictionary"); ok {
		doc = dict
	}
	if entries, ok := doc.Child("entries"); ok {
		return entries.Children("entry")
	}
	return nil
}

// ParseEntry extracts an EntryRecord from a raw entry node. Pure: no I/O,
// no persistence.
func ParseEntry(n doctree.Node) (EntryRecord, error) {
	head, ok := n.Child("head")
	if !ok {
		return EntryRecord{}, missingField("entry", "head")
	}
	headword, err := requireChildText(head, "entry", "headword")
	if err != nil {
		return EntryRecord{}, err
	}

	slug := domain.Slugify(headword)
	rec := EntryRecord{
		Headword: headword,
		Slug:     slug,
		SortKey:  domain.SortKey(headword),
		Letter:   domain.LetterBucket(slug),
		Publish:  boolAttr(n, "publish", false),
		Snapshot: snapshot(n),
	}

	for _, fn := range containerChildren(n, "forms", "form") {
		form, err := ParseForm(fn)
		if err != nil {
			return EntryRecord{}, err
		}
		rec.Forms = append(rec.Forms, form)
	}

	for _, ln := range containerChildren(n, "lexemes", "lexeme") {
		pos, err := requireAttr(ln, "lexeme", "pos")
		if err != nil {
			return EntryRecord{}, err
		}
		lex := LexemeRecord{PartOfSpeech: pos}
		for _, sn := range containerChildren(ln, "senses", "sense") {
			sense, err := ParseSense(sn, headword, pos, rec.Publish)
			if err != nil {
				return EntryRecord{}, err
			}
			lex.Senses = append(lex.Senses, sense)
		}
		rec.Lexemes = append(rec.Lexemes, lex)
	}

	return rec, nil
}

// ParseForm extracts a FormRecord from a raw form node.
func ParseForm(n doctree.Node) (FormRecord, error) {
	label, err := requireChildText(n, "form", "label")
	if err != nil {
		return FormRecord{}, err
	}
	freq, err := intAttr(n, "form", "freq", 0)
	if err != nil {
		return FormRecord{}, err
	}
	return FormRecord{Label: label, Slug: domain.Slugify(label), Frequency: freq}, nil
}

// snapshot serializes a raw node deterministically (JSON sorts map keys),
// so byte-equal snapshots mean an unchanged source document.
func snapshot(n doctree.Node) string {
	b, err := json.Marshal(map[string]any(n))
	if err != nil {
		return ""
	}
	return string(b)
}
