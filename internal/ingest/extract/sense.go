package extract

import (
	"strings"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

// SenseRecord is the parsed form of one sense node, including every child
// concept the sense owns.
type SenseRecord struct {
	XMLID        string
	Headword     string
	PartOfSpeech string
	Definition   string
	Etymology    *string
	Notes        *string
	Publish      bool

	Domains         []LabelRecord
	Regions         []LabelRecord
	SemanticClasses []LabelRecord
	SynSet          *SynSetRecord
	Examples        []ExampleRecord
	Xrefs           []XrefRecord
	Collocates      []CollocateRecord
}

// LabelRecord is a parsed domain, region, or semantic class reference.
// Name is the camelCase source token expanded into words.
type LabelRecord struct {
	Token string
	Slug  string
	Name  string
}

// SynSetRecord is a parsed synonym-set reference. Name is the snake_case
// target id expanded into words.
type SynSetRecord struct {
	TargetID string
	Slug     string
	Name     string
}

// CollocateRecord is a parsed collocate of a sense.
type CollocateRecord struct {
	Lemma     string
	TargetID  string
	Frequency int
}

// ParseSense extracts a SenseRecord. Headword, part of speech, and the
// entry's publish flag arrive as context from the enclosing entry; the
// publish attribute on the sense node overrides the inherited flag.
func ParseSense(n doctree.Node, headword, partOfSpeech string, entryPublish bool) (SenseRecord, error) {
	xmlID, err := requireAttr(n, "sense", "id")
	if err != nil {
		return SenseRecord{}, err
	}
	definition, err := requireChildText(n, "sense", "definition")
	if err != nil {
		return SenseRecord{}, err
	}

	rec := SenseRecord{
		XMLID:        xmlID,
		Headword:     headword,
		PartOfSpeech: partOfSpeech,
		Definition:   definition,
		Publish:      boolAttr(n, "publish", entryPublish),
	}

	if s, ok := n.ChildText("etym"); ok && strings.TrimSpace(s) != "" {
		etym := strings.TrimSpace(s)
		rec.Etymology = &etym
	}
	if s, ok := n.ChildText("notes"); ok && strings.TrimSpace(s) != "" {
		notes := strings.TrimSpace(s)
		rec.Notes = &notes
	}

	if rec.Domains, err = parseLabels(n, "domains", "domain"); err != nil {
		return SenseRecord{}, err
	}
	if rec.Regions, err = parseLabels(n, "regions", "region"); err != nil {
		return SenseRecord{}, err
	}
	if rec.SemanticClasses, err = parseLabels(n, "semanticClasses", "semanticClass"); err != nil {
		return SenseRecord{}, err
	}

	if ref, ok := n.Child("synSetRef"); ok {
		target, err := requireAttr(ref, "synSetRef", "target")
		if err != nil {
			return SenseRecord{}, err
		}
		name := domain.ExpandSnakeCase(target)
		rec.SynSet = &SynSetRecord{
			TargetID: target,
			Slug:     domain.Slugify(name),
			Name:     name,
		}
	}

	for _, xn := range containerChildren(n, "xrefs", "xref") {
		xref, err := ParseXref(xn)
		if err != nil {
			return SenseRecord{}, err
		}
		rec.Xrefs = append(rec.Xrefs, xref)
	}

	for _, cn := range containerChildren(n, "collocates", "collocate") {
		col, err := ParseCollocate(cn)
		if err != nil {
			return SenseRecord{}, err
		}
		rec.Collocates = append(rec.Collocates, col)
	}

	for _, en := range containerChildren(n, "examples", "example") {
		ex, err := ParseExample(en)
		if err != nil {
			return SenseRecord{}, err
		}
		rec.Examples = append(rec.Examples, ex)
	}

	return rec, nil
}

// ParseCollocate extracts a CollocateRecord from a raw collocate node.
func ParseCollocate(n doctree.Node) (CollocateRecord, error) {
	lemma, err := requireContent(n, "collocate")
	if err != nil {
		return CollocateRecord{}, err
	}
	target, err := requireAttr(n, "collocate", "target")
	if err != nil {
		return CollocateRecord{}, err
	}
	freq, err := intAttr(n, "collocate", "freq", 0)
	if err != nil {
		return CollocateRecord{}, err
	}
	return CollocateRecord{Lemma: lemma, TargetID: target, Frequency: freq}, nil
}

// parseLabels extracts the type tokens of a taxonomy container.
func parseLabels(n doctree.Node, container, item string) ([]LabelRecord, error) {
	var out []LabelRecord
	for _, ln := range containerChildren(n, container, item) {
		token, err := requireAttr(ln, item, "type")
		if err != nil {
			return nil, err
		}
		name := domain.ExpandCamelCase(token)
		out = append(out, LabelRecord{
			Token: token,
			Slug:  domain.Slugify(name),
			Name:  name,
		})
	}
	return out, nil
}
