// Package enex reads Evernote export files.
package enex

import (
	"encoding/xml"
	"io"

	"github.com/pkg/errors"
)

// Reader streams the notes of an export one at a time, so large exports
// are never held in memory whole.
type Reader struct {
	dec *xml.Decoder
}

func NewReader(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	// titles exported by some clients contain HTML entities such as &nbsp;
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	return &Reader{dec: dec}
}

// Next returns the next note of the export, or io.EOF when there are no
// more notes.
func (r *Reader) Next() (*Note, error) {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, "could not read export")
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "note" {
			continue
		}

		var raw rawNote
		if err := r.dec.DecodeElement(&raw, &start); err != nil {
			return nil, errors.Wrap(err, "could not decode note")
		}
		return raw.note()
	}
}

type rawNote struct {
	Title      string   `xml:"title"`
	Content    string   `xml:"content"`
	Created    string   `xml:"created"`
	Updated    string   `xml:"updated"`
	Tags       []string `xml:"tag"`
	Attributes struct {
		SourceURL string `xml:"source-url"`
		Author    string `xml:"author"`
	} `xml:"note-attributes"`
	Resources []rawResource `xml:"resource"`
}

type rawResource struct {
	Data struct {
		Encoding string `xml:"encoding,attr"`
		Body     string `xml:",chardata"`
	} `xml:"data"`
	Mime       string `xml:"mime"`
	Attributes struct {
		FileName string `xml:"file-name"`
	} `xml:"resource-attributes"`
}

func (raw rawNote) note() (*Note, error) {
	created, err := ParseTime(raw.Created)
	if err != nil {
		return nil, errors.Wrapf(err, "note %q: invalid created date", raw.Title)
	}
	updated, err := ParseTime(raw.Updated)
	if err != nil {
		return nil, errors.Wrapf(err, "note %q: invalid updated date", raw.Title)
	}

	n := &Note{
		Title:     raw.Title,
		Content:   raw.Content,
		Created:   created,
		Updated:   updated,
		Tags:      raw.Tags,
		SourceURL: raw.Attributes.SourceURL,
		Author:    raw.Attributes.Author,
	}

	for i, rr := range raw.Resources {
		res, err := rr.resource()
		if err != nil {
			return nil, errors.Wrapf(err, "note %q: resource %d", raw.Title, i)
		}
		n.Resources = append(n.Resources, res)
	}
	return n, nil
}
