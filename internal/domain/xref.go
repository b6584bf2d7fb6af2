package domain

// XrefTypeRelatedConcept is the display label assigned to cross-references
// whose source type code is absent or unrecognized.
const XrefTypeRelatedConcept = "Related Concept"

// xrefTypeLabels maps the ten source type codes to display labels.
var xrefTypeLabels = map[string]string{
	"hasSynonym":       "Synonym",
	"hasAntonym":       "Antonym",
	"hasHypernym":      "Hypernym",
	"hasHyponym":       "Hyponym",
	"partOf":           "Holonym",
	"hasPart":          "Meronym",
	"instanceOf":       "Instance Of",
	"derivesFrom":      "Derives From",
	"hasDerivative":    "Derivative",
	"conceptRelatesTo": XrefTypeRelatedConcept,
}

// XrefTypeLabel resolves a source cross-reference type code to its display
// label, defaulting to "Related Concept".
func XrefTypeLabel(code string) string {
	if label, ok := xrefTypeLabels[code]; ok {
		return label
	}
	return XrefTypeRelatedConcept
}
