package extract

import "fmt"

// ParseError reports a required field that is missing or malformed in a
// raw document node. It aborts the enclosing entry's ingestion pass but
// never the directory run.
type ParseError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("parse %s: field %q: %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("parse %s: missing required field %q", e.Entity, e.Field)
}

func missingField(entity, field string) error {
	return &ParseError{Entity: entity, Field: field}
}

func malformedField(entity, field, reason string) error {
	return &ParseError{Entity: entity, Field: field, Reason: reason}
}
