package enex

import (
	"strings"
	"time"

	"github.com/hhhapz/enexorg/enml"
	"github.com/pkg/errors"
)

// ErrNoContent is returned for notes without an ENML body.
var ErrNoContent = errors.New("note has no content")

const (
	timeLayout  = "20060102T150405Z"
	shortLayout = "20060102T1504"
)

type Note struct {
	Title     string
	Content   string
	Created   time.Time
	Updated   time.Time
	Tags      []string
	SourceURL string
	Author    string
	Resources []Resource
}

// Body parses the note's ENML content and returns its <en-note> element.
func (n *Note) Body() (*enml.Element, error) {
	if strings.TrimSpace(n.Content) == "" {
		return nil, ErrNoContent
	}
	root, err := enml.Parse(strings.NewReader(n.Content))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse content")
	}
	return root, nil
}

// Referenced splits the note's resources into those an <en-media> element
// of the body points at and the rest.
func (n *Note) Referenced() (used, unused []Resource, err error) {
	if len(n.Resources) == 0 {
		return nil, nil, nil
	}
	hashes, err := enml.MediaHashes(strings.NewReader(n.Content))
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not collect media")
	}

	refs := make(map[string]bool, len(hashes))
	for _, h := range hashes {
		refs[strings.ToLower(h)] = true
	}
	for _, res := range n.Resources {
		if refs[res.Hash] {
			used = append(used, res)
			continue
		}
		unused = append(unused, res)
	}
	return used, unused, nil
}

// ParseTime parses an export timestamp. Only the minutes are required, the
// seconds and zone suffix are optional. An empty string is the zero time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	if len(s) < len(shortLayout) {
		return time.Time{}, errors.Errorf("timestamp %q too short", s)
	}
	t, err := time.Parse(shortLayout, s[:len(shortLayout)])
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "could not parse timestamp %q", s)
	}
	return t, nil
}
