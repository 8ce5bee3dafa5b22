package enml

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultFillColumn is the column text is wrapped at.
const DefaultFillColumn = 80

var (
	// a whole link, a run of spaces, a newline or a word
	chunkPattern = regexp.MustCompile(`\[\[[^\[\]]*?\]\[[^\[\]]*?\]\]| +|\n|[^ \n]+`)
	linkPattern  = regexp.MustCompile(`\[\[(.*?)\]\[(.*)\]\]$`)
)

// listContext is one level of list nesting. Ordered lists carry the number
// of the next item.
type listContext struct {
	ordered bool
	next    int
}

type composer struct {
	fill   int
	depth  int
	lists  []listContext
	inRow  bool
	column int
	out    strings.Builder
}

// Compose renders a fragment sequence as org text wrapped at fill columns.
// A fill of zero or less uses DefaultFillColumn.
func Compose(seq Sequence, fill int) string {
	if fill <= 0 {
		fill = DefaultFillColumn
	}
	c := &composer{fill: fill}
	for _, f := range seq {
		c.fragment(f)
	}
	return c.out.String()
}

func (c *composer) fragment(f Fragment) {
	switch f.Marker {
	case NoMarker:
		c.text(f.Text)
	case Indent:
		c.depth++
	case Dedent:
		if c.depth > 0 {
			c.depth--
		}
	case RowStart:
		c.inRow = true
	case RowEnd:
		c.inRow = false
	case OrderedListBegin:
		c.lists = append(c.lists, listContext{ordered: true, next: 1})
	case UnorderedListBegin:
		c.lists = append(c.lists, listContext{})
	case OrderedListEnd, UnorderedListEnd:
		if len(c.lists) > 0 {
			c.lists = c.lists[:len(c.lists)-1]
		}
	case ListItem:
		// TODO: number items of ordered lists once org output for them is
		// agreed on; every item is a bullet for now.
		c.text("\n- ")
	}
}

func (c *composer) text(s string) {
	if c.inRow {
		// table cells are never wrapped
		c.out.WriteString(stripNewlines(s))
		return
	}

	for _, chunk := range chunkPattern.FindAllString(s, -1) {
		width := displayWidth(chunk)
		switch {
		case chunk == "\n":
			c.newline()
		case c.column+width < c.fill:
			c.out.WriteString(chunk)
			c.column += width
		default:
			// past the fill column: no break is inserted, the column
			// restarts as if one had been
			c.out.WriteString(chunk)
			c.column = c.indent() + width
		}
	}
}

func (c *composer) newline() {
	c.out.WriteByte('\n')
	c.out.WriteString(strings.Repeat(" ", c.indent()))
	c.column = c.indent()
}

func (c *composer) indent() int {
	return 2 * c.depth
}

// displayWidth is the width of a chunk as org shows it: only the
// description of a link is visible.
func displayWidth(chunk string) int {
	if m := linkPattern.FindStringSubmatch(chunk); m != nil {
		return utf8.RuneCountInString(m[2])
	}
	return utf8.RuneCountInString(chunk)
}
