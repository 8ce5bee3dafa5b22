package enml

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// ErrMalformed is returned when a document violates a structural
// assumption of the converter.
var ErrMalformed = errors.New("malformed enml")

// Elements that never have content, even when written without a
// self-closing slash.
var voidElements = map[string]bool{
	"br":    true,
	"hr":    true,
	"img":   true,
	"input": true,
	"col":   true,
	"area":  true,
	"wbr":   true,
}

// Parse reads an ENML document and returns its <en-note> element.
func Parse(r io.Reader) (*Element, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	note := doc.Find("en-note").First()
	if note.Length() == 0 {
		return nil, errors.Wrap(ErrMalformed, "no en-note element")
	}
	return FromNode(note.Get(0)), nil
}

// MediaHashes returns the hash attribute of every <en-media> element in
// document order.
func MediaHashes(r io.Reader) ([]string, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}

	var hashes []string
	doc.Find("en-media").Each(func(_ int, s *goquery.Selection) {
		if hash := s.AttrOr("hash", ""); hash != "" {
			hashes = append(hashes, hash)
		}
	})
	return hashes, nil
}

func parseDocument(r io.Reader) (*goquery.Document, error) {
	root, err := parseNodes(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse body")
	}
	return goquery.NewDocumentFromNode(root), nil
}

// parseNodes builds a node tree straight from the tokenizer. The HTML5 tree
// builder ignores the self-closing flag on unknown elements, which would
// nest everything after <en-media/> or <en-todo/> inside them.
func parseNodes(r io.Reader) (*html.Node, error) {
	z := html.NewTokenizer(r)
	root := &html.Node{Type: html.DocumentNode}
	cur := root

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return root, nil

		case html.TextToken:
			cur.AppendChild(&html.Node{
				Type: html.TextNode,
				Data: string(z.Text()),
			})

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			n := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     tok.Attr,
			}
			cur.AppendChild(n)
			if tt == html.StartTagToken && !voidElements[tok.Data] {
				cur = n
			}

		case html.EndTagToken:
			tok := z.Token()
			// close the nearest open element with this name, ignore strays
			for p := cur; p != nil && p.Type == html.ElementNode; p = p.Parent {
				if p.Data == tok.Data {
					cur = p.Parent
					break
				}
			}
		}
	}
}
