// Package doctree converts raw XML dictionary markup into a generic
// mapping/sequence/scalar tree. A fixed set of element names is forced to
// always parse as a sequence, even when the source holds exactly one
// element: the raw format does not distinguish "one" from "one of many",
// and downstream extractors must never branch on node shape.
package doctree

import (
	"fmt"

	"github.com/clbanning/mxj/v2"
)

const (
	textKey    = "#text"
	attrPrefix = "-"
)

// defaultListElements are the element names forced into sequence form.
var defaultListElements = []string{
	"entry", "form", "lexeme", "sense", "example",
	"artist", "feat", "domain", "region", "semanticClass",
	"collocate", "xref", "rhyme", "entity", "lyricLink",
}

// ListElements returns the default forced-sequence element set.
func ListElements() []string {
	out := make([]string, len(defaultListElements))
	copy(out, defaultListElements)
	return out
}

// MalformedSourceError reports that the markup could not be structurally
// parsed. Fatal for the file that produced it, never for the whole run.
type MalformedSourceError struct {
	cause error
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("malformed source markup: %v", e.cause)
}

func (e *MalformedSourceError) Unwrap() error { return e.cause }

// Node is one mapping node of a converted document. Element text lives
// under "#text", attributes under "-"-prefixed keys, children under their
// element names.
type Node map[string]any

// Converter turns raw markup into normalized Nodes.
type Converter struct {
	listElements map[string]bool
}

// NewConverter creates a Converter. With no arguments the default
// forced-sequence element set is used.
func NewConverter(listElements ...string) *Converter {
	if len(listElements) == 0 {
		listElements = defaultListElements
	}
	set := make(map[string]bool, len(listElements))
	for _, name := range listElements {
		set[name] = true
	}
	return &Converter{listElements: set}
}

// Convert parses raw XML into a normalized Node tree. A structural parse
// failure returns a *MalformedSourceError.
func (c *Converter) Convert(raw []byte) (Node, error) {
	m, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, &MalformedSourceError{cause: err}
	}
	return c.Normalize(map[string]any(m)), nil
}

// Normalize applies forced-sequence normalization to an already converted
// generic tree (the alternate, pre-converted document path).
func (c *Converter) Normalize(tree map[string]any) Node {
	return Node(c.normalizeMap(tree))
}

func (c *Converter) normalizeMap(m map[string]any) map[string]any {
	for key, val := range m {
		if c.listElements[key] {
			if _, ok := val.([]any); !ok {
				val = []any{val}
			}
		}
		m[key] = c.normalizeValue(val)
	}
	return m
}

func (c *Converter) normalizeValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return c.normalizeMap(v)
	case []any:
		for i, item := range v {
			v[i] = c.normalizeValue(item)
		}
		return v
	default:
		return val
	}
}

// Content returns the node's own element text, or "" for an empty element.
func (n Node) Content() string {
	if s, ok := n[textKey].(string); ok {
		return s
	}
	return ""
}

// Attr returns the named attribute value.
func (n Node) Attr(name string) (string, bool) {
	s, ok := n[attrPrefix+name].(string)
	return s, ok
}

// Child returns the named child as a Node. Scalar children (text-only
// elements) are wrapped so callers always receive a mapping.
func (n Node) Child(key string) (Node, bool) {
	switch v := n[key].(type) {
	case map[string]any:
		return Node(v), true
	case string:
		return Node{textKey: v}, true
	default:
		return nil, false
	}
}

// ChildText returns the text content of the named child element.
// An attribute-only or absent child yields ("", false).
func (n Node) ChildText(key string) (string, bool) {
	switch v := n[key].(type) {
	case string:
		return v, true
	case map[string]any:
		s, ok := v[textKey].(string)
		return s, ok
	default:
		return "", false
	}
}

// Children returns the named child sequence. An absent key yields an empty
// slice, never an error: optional children are an empty list, not an
// exceptional condition. Scalar items are wrapped as text-only Nodes.
func (n Node) Children(key string) []Node {
	seq, ok := n[key].([]any)
	if !ok {
		// A non-forced element may still appear as a singleton.
		if child, ok := n.Child(key); ok {
			return []Node{child}
		}
		return nil
	}
	out := make([]Node, 0, len(seq))
	for _, item := range seq {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, Node(v))
		case string:
			out = append(out, Node{textKey: v})
		}
	}
	return out
}
