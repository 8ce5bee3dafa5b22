package enml

// Marker is a structural instruction for the composer.
type Marker uint8

const (
	// NoMarker marks a literal text fragment.
	NoMarker Marker = iota
	Indent
	Dedent
	RowStart
	RowEnd
	ListItem
	OrderedListBegin
	OrderedListEnd
	UnorderedListBegin
	UnorderedListEnd
)

var markerNames = [...]string{
	NoMarker:           "Text",
	Indent:             "Indent",
	Dedent:             "Dedent",
	RowStart:           "RowStart",
	RowEnd:             "RowEnd",
	ListItem:           "ListItem",
	OrderedListBegin:   "OrderedListBegin",
	OrderedListEnd:     "OrderedListEnd",
	UnorderedListBegin: "UnorderedListBegin",
	UnorderedListEnd:   "UnorderedListEnd",
}

func (m Marker) String() string {
	if int(m) < len(markerNames) {
		return markerNames[m]
	}
	return "Marker(?)"
}

// Fragment is either literal text or a structural marker.
type Fragment struct {
	Marker Marker
	Text   string
}

// Text returns a literal text fragment.
func Text(s string) Fragment {
	return Fragment{Text: s}
}

// IsText reports whether f carries literal text rather than a marker.
func (f Fragment) IsText() bool {
	return f.Marker == NoMarker
}

// Sequence is the walker's output, consumed once by the composer.
type Sequence []Fragment

func (s *Sequence) text(str string) {
	*s = append(*s, Text(str))
}

func (s *Sequence) mark(m Marker) {
	*s = append(*s, Fragment{Marker: m})
}

// endsOpenLine reports whether the last fragment is non-empty text that does
// not end with a newline.
func (s Sequence) endsOpenLine() bool {
	if len(s) == 0 {
		return false
	}
	last := s[len(s)-1]
	return last.IsText() && last.Text != "" && last.Text[len(last.Text)-1] != '\n'
}
