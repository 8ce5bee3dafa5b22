// Package enml renders Evernote note bodies (ENML) as org-mode text.
//
// Conversion runs in two passes. Walk flattens the element tree into a
// Sequence of text fragments and structural markers, and Compose turns the
// sequence into wrapped, indented text.
package enml

import (
	"strings"

	"github.com/pkg/errors"
)

// Options configures Convert.
type Options struct {
	// Resolver locates attachments referenced by <en-media>. When nil the
	// placeholder names are used.
	Resolver Resolver

	// FillColumn is the wrap column, DefaultFillColumn when zero.
	FillColumn int
}

// Convert renders the tree rooted at root.
func Convert(root *Element, opts Options) (string, error) {
	seq, err := Walk(root, opts.Resolver)
	if err != nil {
		return "", errors.Wrap(err, "could not walk note body")
	}
	return Compose(seq, opts.FillColumn), nil
}

// ConvertString parses an ENML document and renders its <en-note> body.
func ConvertString(doc string, opts Options) (string, error) {
	root, err := Parse(strings.NewReader(doc))
	if err != nil {
		return "", err
	}
	return Convert(root, opts)
}
