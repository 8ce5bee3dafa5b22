package enml

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a node of an ENML body.
//
// Text holds the text between the start tag and the first child element.
// Tail holds the text between the end tag and the next sibling, which
// belongs to the parent's stream.
type Element struct {
	Tag      string
	Text     string
	Tail     string
	Attr     map[string]string
	Children []*Element
}

// Get returns the attribute value for key, or "" when it is absent.
func (e *Element) Get(key string) string {
	if e.Attr == nil {
		return ""
	}
	return e.Attr[key]
}

// FromNode converts an element node and its subtree into an Element.
// Comments and other non-element nodes are dropped.
func FromNode(n *html.Node) *Element {
	e := &Element{
		Tag:  strings.ToLower(n.Data),
		Attr: make(map[string]string, len(n.Attr)),
	}
	for _, attr := range n.Attr {
		e.Attr[attr.Key] = attr.Val
	}

	var last *Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if last == nil {
				e.Text += c.Data
				continue
			}
			last.Tail += c.Data
		case html.ElementNode:
			last = FromNode(c)
			e.Children = append(e.Children, last)
		}
	}
	return e
}
