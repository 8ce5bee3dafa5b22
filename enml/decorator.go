package enml

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// A decorator emits the open contribution of an element and returns the
// function emitting its close contribution, called once the children have
// been visited.
type decorator func(w *walker, e *Element) func() error

func done() error { return nil }

var (
	leadingPad  = regexp.MustCompile(`^[ ,]*`)
	trailingPad = regexp.MustCompile(`[ ,]*$`)
	spanStyle   = regexp.MustCompile(`italic|bold|underline`)
)

var decorators = map[string]decorator{
	"span":     span,
	"i":        decorate("/"),
	"em":       decorate("/"),
	"b":        decorate("*"),
	"strong":   decorate("*"),
	"u":        decorate("_"),
	"s":        decorate("+"),
	"strike":   decorate("+"),
	"del":      decorate("+"),
	"a":        link,
	"li":       listItem,
	"ul":       wrap(UnorderedListBegin, UnorderedListEnd),
	"ol":       wrap(OrderedListBegin, OrderedListEnd),
	"en-todo":  todo,
	"en-media": media,
	"div":      block,
	"p":        block,
	"br":       literal("\n"),
	"hr":       literal("\n----------\n"),
	"table":    table,
	"tr":       tableRow,
	"td":       literal("| "),
	"th":       literal("| "),
}

// Tags whose direct text is trimmed, the padding being re-emitted outside
// the decoration characters.
var decorationTags = map[string]bool{
	"span":   true,
	"i":      true,
	"em":     true,
	"b":      true,
	"strong": true,
	"u":      true,
	"s":      true,
	"strike": true,
	"del":    true,
}

var listTags = map[string]bool{
	"ul": true,
	"ol": true,
}

// Block containers collapse their direct <br> children.
var blockTags = map[string]bool{
	"div": true,
	"p":   true,
}

func decoratorFor(tag string) decorator {
	if d, ok := decorators[tag]; ok {
		return d
	}
	return plain
}

func plain(*walker, *Element) func() error {
	return done
}

// padding returns the leading and trailing runs of spaces and commas of the
// element's direct text.
func padding(e *Element) (lead, trail string) {
	if e.Text == "" {
		return "", ""
	}
	return leadingPad.FindString(e.Text), trailingPad.FindString(e.Text)
}

func emphasis(w *walker, e *Element, mark string) func() error {
	lead, trail := padding(e)
	w.seq.text(lead)
	w.seq.text(mark)
	return func() error {
		w.seq.text(mark)
		w.seq.text(trail)
		return nil
	}
}

func decorate(mark string) decorator {
	return func(w *walker, e *Element) func() error {
		return emphasis(w, e, mark)
	}
}

func span(w *walker, e *Element) func() error {
	var mark string
	switch spanStyle.FindString(e.Get("style")) {
	case "italic":
		mark = "/"
	case "bold":
		mark = "*"
	case "underline":
		mark = "_"
	}
	return emphasis(w, e, mark)
}

// link folds everything its children emitted into a single fragment so the
// composer never breaks a link apart.
func link(w *walker, e *Element) func() error {
	start := len(w.seq)
	return func() error {
		var desc strings.Builder
		for _, f := range w.seq[start:] {
			if !f.IsText() {
				return errors.Wrapf(ErrMalformed, "%s inside link to %q", f.Marker, e.Get("href"))
			}
			desc.WriteString(f.Text)
		}
		w.seq = w.seq[:start]
		w.seq.text(fmt.Sprintf("[[%s][%s]]", e.Get("href"), desc.String()))
		return nil
	}
}

func listItem(w *walker, _ *Element) func() error {
	w.seq.mark(ListItem)
	w.seq.mark(Indent)
	return func() error {
		w.seq.mark(Dedent)
		return nil
	}
}

func wrap(begin, end Marker) decorator {
	return func(w *walker, _ *Element) func() error {
		w.seq.mark(begin)
		return func() error {
			w.seq.mark(end)
			return nil
		}
	}
}

func literal(s string) decorator {
	return func(w *walker, _ *Element) func() error {
		w.seq.text(s)
		return done
	}
}

func todo(w *walker, e *Element) func() error {
	if strings.EqualFold(e.Get("checked"), "true") {
		w.seq.text("[X] ")
	} else {
		w.seq.text("[ ] ")
	}
	return done
}

func media(w *walker, e *Element) func() error {
	dir, filename := w.resolver.Resolve(e.Get("hash"))
	w.seq.text(fmt.Sprintf("[[file:%s][%s]]", path.Join(dir, filename), filename))
	return done
}

func block(w *walker, _ *Element) func() error {
	if w.seq.endsOpenLine() {
		w.seq.text("\n")
	}
	return func() error {
		w.seq.text("\n")
		return nil
	}
}

func table(w *walker, _ *Element) func() error {
	w.seq.text("\n|-")
	return func() error {
		w.seq.text("\n|-")
		return nil
	}
}

func tableRow(w *walker, _ *Element) func() error {
	w.seq.text("\n")
	w.seq.mark(RowStart)
	return func() error {
		w.seq.mark(RowEnd)
		return nil
	}
}
