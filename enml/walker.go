package enml

import "strings"

// Placeholders used when an attachment cannot be resolved.
const (
	PlaceholderDir      = "NOTE_ATTACHMENT_DIR"
	PlaceholderFilename = "RESOURCE_FILENAME"
)

// Resolver maps an <en-media> hash to the directory and file name the
// attachment is stored under.
type Resolver interface {
	Resolve(hash string) (dir, filename string)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(hash string) (dir, filename string)

func (f ResolverFunc) Resolve(hash string) (string, string) {
	return f(hash)
}

type placeholder struct{}

func (placeholder) Resolve(string) (string, string) {
	return PlaceholderDir, PlaceholderFilename
}

type walker struct {
	seq      Sequence
	resolver Resolver
}

// Walk flattens the tree rooted at root into a fragment sequence. A nil
// resolver renders every attachment with the placeholder names.
func Walk(root *Element, resolver Resolver) (Sequence, error) {
	if resolver == nil {
		resolver = placeholder{}
	}
	w := &walker{resolver: resolver}
	if err := w.walk(root); err != nil {
		return nil, err
	}
	return w.seq, nil
}

func (w *walker) walk(e *Element) error {
	closeFn := decoratorFor(e.Tag)(w, e)

	if e.Text != "" && !listFiller(e, e.Text) {
		txt := e.Text
		if decorationTags[e.Tag] {
			txt = strings.TrimSpace(txt)
			txt = strings.TrimPrefix(txt, ",")
			txt = strings.TrimSuffix(txt, ",")
		}
		w.seq.text(stripNewlines(txt))
	}

	for _, c := range e.Children {
		// <div><br/></div> is a single empty line, not two
		if !(blockTags[e.Tag] && c.Tag == "br") {
			if err := w.walk(c); err != nil {
				return err
			}
		}
		if c.Tail != "" && !listFiller(e, c.Tail) {
			w.seq.text(stripNewlines(c.Tail))
		}
	}

	return closeFn()
}

// listFiller reports whether s is indentation between the items of a list,
// which would otherwise end up before the first bullet.
func listFiller(parent *Element, s string) bool {
	return listTags[parent.Tag] && strings.TrimSpace(s) == ""
}

func stripNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", "")
}
