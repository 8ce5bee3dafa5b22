package enex

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hhhapz/enexorg/enml"
	"github.com/pkg/errors"
)

// Resource is a decoded note attachment. Hash is the hex MD5 of Data, the
// value <en-media hash="..."> refers to.
type Resource struct {
	Hash     string
	FileName string
	Mime     string
	Data     []byte
}

func (rr rawResource) resource() (Resource, error) {
	if enc := rr.Data.Encoding; enc != "" && enc != "base64" {
		return Resource{}, errors.Errorf("unsupported encoding %q", enc)
	}

	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(rr.Data.Body), ""))
	if err != nil {
		return Resource{}, errors.Wrap(err, "could not decode data")
	}

	sum := md5.Sum(data)
	res := Resource{
		Hash: hex.EncodeToString(sum[:]),
		Mime: rr.Mime,
		Data: data,
	}
	res.FileName = cleanFileName(rr.Attributes.FileName)
	if res.FileName == "" {
		res.FileName = res.Hash + extension(rr.Mime)
	}
	return res, nil
}

func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	switch name {
	case ".", "..", "/":
		return ""
	}
	return name
}

func extension(mimeType string) string {
	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// Attachments stores the resources of a single note under
// <root>/<id[:2]>/<id[2:]> and resolves <en-media> hashes to them.
type Attachments struct {
	ID  string
	Dir string

	byHash map[string]Resource
	order  []string
}

var _ enml.Resolver = (*Attachments)(nil)

// NewAttachments assigns a fresh id to a note's resources. File names that
// collide within the note are prefixed with the start of their hash.
func NewAttachments(root string, resources []Resource) *Attachments {
	id := uuid.New().String()
	a := &Attachments{
		ID:     id,
		Dir:    path.Join(root, id[:2], id[2:]),
		byHash: make(map[string]Resource, len(resources)),
	}

	names := map[string]bool{}
	for _, res := range resources {
		if _, ok := a.byHash[res.Hash]; ok {
			continue
		}
		if names[res.FileName] {
			res.FileName = res.Hash[:8] + "-" + res.FileName
		}
		names[res.FileName] = true
		a.byHash[res.Hash] = res
		a.order = append(a.order, res.Hash)
	}
	return a
}

// Resolve implements enml.Resolver. Unknown hashes resolve to the
// placeholder file name.
func (a *Attachments) Resolve(hash string) (string, string) {
	res, ok := a.byHash[hash]
	if !ok {
		return a.Dir, enml.PlaceholderFilename
	}
	return a.Dir, res.FileName
}

// Len is the number of distinct resources.
func (a *Attachments) Len() int {
	return len(a.order)
}

// Save writes every resource below base and returns the number of bytes
// written.
func (a *Attachments) Save(base string) (uint64, error) {
	if len(a.order) == 0 {
		return 0, nil
	}

	dir := filepath.Join(base, filepath.FromSlash(a.Dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(err, "could not create attachment dir")
	}

	var written uint64
	for _, hash := range a.order {
		res := a.byHash[hash]
		if err := os.WriteFile(filepath.Join(dir, res.FileName), res.Data, 0o644); err != nil {
			return written, errors.Wrapf(err, "could not write %s", res.FileName)
		}
		written += uint64(len(res.Data))
	}
	return written, nil
}
