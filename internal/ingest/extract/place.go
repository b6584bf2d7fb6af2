package extract

import (
	"strings"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// PlaceRecord is the parsed form of one level of a comma-separated place
// name. ParentFullName is the remainder after stripping the leading
// component, "" at the top of the containment chain.
type PlaceRecord struct {
	FullName       string
	Name           string
	Slug           string
	ParentFullName string
}

// ParsePlaceName decomposes one level of a full place name:
// "Brentwood, New York, USA" yields the place "Brentwood" with parent
// "New York, USA". Callers recurse on ParentFullName to build the
// containment chain.
func ParsePlaceName(fullName string) (PlaceRecord, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return PlaceRecord{}, missingField("place", "fullName")
	}

	name := fullName
	parent := ""
	if head, rest, ok := strings.Cut(fullName, ","); ok {
		name = strings.TrimSpace(head)
		parent = strings.TrimSpace(rest)
	}

	return PlaceRecord{
		FullName:       fullName,
		Name:           name,
		Slug:           domain.Slugify(fullName),
		ParentFullName: parent,
	}, nil
}
