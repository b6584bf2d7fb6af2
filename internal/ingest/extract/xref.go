package extract

import (
	"github.com/rhymebook/rhymebook-backend/internal/domain"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

// XrefRecord is a parsed cross-reference from a sense to another headword
// or sense.
type XrefRecord struct {
	Word        string
	TypeCode    string
	TypeLabel   string
	TargetID    string
	TargetLemma string
	TargetSlug  string
	Position    *int
	Frequency   *int
}

// ParseXref extracts an XrefRecord. An absent or unrecognized type code
// resolves to the "Related Concept" label.
func ParseXref(n doctree.Node) (XrefRecord, error) {
	word, err := requireContent(n, "xref")
	if err != nil {
		return XrefRecord{}, err
	}

	code := optAttr(n, "type")
	targetID := optAttr(n, "target")
	lemma := optAttr(n, "lemma")

	rec := XrefRecord{
		Word:        word,
		TypeCode:    code,
		TypeLabel:   domain.XrefTypeLabel(code),
		TargetID:    targetID,
		TargetLemma: lemma,
		TargetSlug:  targetSlug(targetID, lemma, optAttr(n, "prefLabel"), word),
	}

	if pos, err := intAttr(n, "xref", "position", -1); err != nil {
		return XrefRecord{}, err
	} else if pos >= 0 {
		rec.Position = &pos
	}
	if freq, err := intAttr(n, "xref", "freq", -1); err != nil {
		return XrefRecord{}, err
	} else if freq >= 0 {
		rec.Frequency = &freq
	}

	return rec, nil
}

// targetSlug derives the slug a cross-reference or lyric link points at.
// A target id paired with a lemma yields a compound identifier addressing
// one sense of a headword; otherwise the preferred label wins over the
// raw text.
func targetSlug(targetID, lemma, prefLabel, text string) string {
	if targetID != "" && lemma != "" {
		return domain.Slugify(lemma) + "#" + targetID
	}
	if prefLabel != "" {
		return domain.Slugify(prefLabel)
	}
	return domain.Slugify(text)
}
