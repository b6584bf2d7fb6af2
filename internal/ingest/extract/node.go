package extract

import (
	"strconv"
	"strings"

	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

// requireChildText returns the trimmed text of a required child element.
func requireChildText(n doctree.Node, entity, key string) (string, error) {
	s, ok := n.ChildText(key)
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", missingField(entity, key)
	}
	return s, nil
}

// requireContent returns the node's own trimmed text content.
func requireContent(n doctree.Node, entity string) (string, error) {
	s := strings.TrimSpace(n.Content())
	if s == "" {
		return "", missingField(entity, "#text")
	}
	return s, nil
}

// requireAttr returns a required attribute value.
func requireAttr(n doctree.Node, entity, name string) (string, error) {
	s, ok := n.Attr(name)
	s = strings.TrimSpace(s)
	if !ok || s == "" {
		return "", missingField(entity, name)
	}
	return s, nil
}

// optAttr returns an optional attribute value, "" when absent.
func optAttr(n doctree.Node, name string) string {
	s, _ := n.Attr(name)
	return strings.TrimSpace(s)
}

// intAttr parses an optional integer attribute, returning fallback when
// the attribute is absent. A present but non-numeric value is malformed.
func intAttr(n doctree.Node, entity, name string, fallback int) (int, error) {
	s, ok := n.Attr(name)
	if !ok || strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, malformedField(entity, name, "not an integer")
	}
	return v, nil
}

// requireIntAttr parses a required integer attribute.
func requireIntAttr(n doctree.Node, entity, name string) (int, error) {
	s, err := requireAttr(n, entity, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, malformedField(entity, name, "not an integer")
	}
	return v, nil
}

// boolAttr interprets a publish-style attribute. "true", "yes" and "1"
// are true; anything else, including absence, is the fallback.
func boolAttr(n doctree.Node, name string, fallback bool) bool {
	s, ok := n.Attr(name)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// containerChildren returns the grandchildren of a plural container
// element ("forms" → each "form"). An absent container is an empty list.
func containerChildren(n doctree.Node, container, item string) []doctree.Node {
	c, ok := n.Child(container)
	if !ok {
		return nil
	}
	return c.Children(item)
}
