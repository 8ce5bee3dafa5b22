package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hhhapz/enexorg/debug"
	"github.com/hhhapz/enexorg/enex"
	"github.com/hhhapz/enexorg/enml"
	"github.com/hhhapz/enexorg/org"
	"github.com/pkg/errors"
)

type converter struct {
	cfg configuration
}

// errNotExport is returned for inputs without the .enex extension.
var errNotExport = errors.New("not an .enex file")

// notebookName derives the notebook name from the export file name.
func notebookName(enexPath string) (string, error) {
	base := filepath.Base(enexPath)
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".enex") || len(base) == len(ext) {
		return "", errors.Wrap(errNotExport, enexPath)
	}
	return base[:len(base)-len(ext)], nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// prepareDir recreates dir, discarding the output of earlier runs.
func prepareDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrap(err, "could not clear output dir")
	}
	return errors.Wrap(os.MkdirAll(dir, 0o755), "could not create output dir")
}

// convertFile converts one export into <out>/<notebook>/<notebook>.org.
// Notes that fail to convert are logged and skipped.
func (c *converter) convertFile(ctx context.Context, enexPath string) (summary, error) {
	started := time.Now()
	name, err := notebookName(enexPath)
	if err != nil {
		return summary{}, err
	}

	outDir := c.cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(enexPath)
	}
	dir := filepath.Join(outDir, name)
	s := summary{orgPath: filepath.Join(dir, name+".org")}

	// the output dir is wiped below, it must never hold the export itself
	inside, err := within(dir, enexPath)
	if err != nil {
		return s, errors.Wrap(err, "could not resolve paths")
	}
	if inside {
		return s, errors.Errorf("output dir %s contains the export %s", dir, enexPath)
	}

	in, err := os.Open(enexPath)
	if err != nil {
		return s, errors.Wrap(err, "could not open export")
	}
	defer in.Close()

	if err := prepareDir(dir); err != nil {
		return s, err
	}

	out, err := os.Create(s.orgPath)
	if err != nil {
		return s, errors.Wrap(err, "could not create org file")
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	w.WriteString(org.FileHeader(name, c.cfg.Startup))

	r := enex.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		note, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s, err
		}

		entry, written, err := c.convertNote(note, dir)
		if err != nil {
			log.Printf("skipping note %q: %v", note.Title, err)
			s.skipped++
			continue
		}

		w.WriteString(entry)
		w.WriteString("\n")
		s.notes++
		s.attachments += written.files
		s.bytes += written.bytes
	}

	if err := w.Flush(); err != nil {
		return s, errors.Wrap(err, "could not write org file")
	}
	s.elapsed = time.Since(started)
	return s, out.Close()
}

// saved counts the attachments written for a note.
type saved struct {
	files int
	bytes uint64
}

// convertNote renders a note as an org entry and saves the attachments its
// body references below dir.
func (c *converter) convertNote(note *enex.Note, dir string) (string, saved, error) {
	body, err := note.Body()
	if err != nil {
		return "", saved{}, err
	}

	used, unused, err := note.Referenced()
	if err != nil {
		return "", saved{}, err
	}
	for _, res := range unused {
		debug.Log("note %q: skipping unreferenced resource %s (%s)", note.Title, res.FileName, res.Hash)
	}

	attachments := enex.NewAttachments(c.cfg.AttachmentRoot, used)
	seq, err := enml.Walk(body, attachments)
	if err != nil {
		return "", saved{}, err
	}
	debug.Dump(note.Title, seq)
	debug.Log("note %q: %d fragments, %d attachments", note.Title, len(seq), attachments.Len())

	entry := org.Entry{
		Level: 1,
		Title: note.Title,
		Tags:  note.Tags,
		Properties: []org.Property{
			{Key: "ID", Value: attachments.ID},
			{Key: "SOURCE", Value: note.SourceURL},
			{Key: "AUTHOR", Value: note.Author},
		},
		Body:    enml.Compose(seq, c.cfg.FillColumn),
		Created: note.Created,
	}
	if attachments.Len() > 0 {
		entry.Properties = append(entry.Properties, org.Property{Key: "ATTACH_DIR", Value: attachments.Dir})
	}

	var out saved
	if c.cfg.WriteResources {
		out.bytes, err = attachments.Save(dir)
		if err != nil {
			return "", saved{}, err
		}
		out.files = attachments.Len()
	}
	return entry.String(), out, nil
}
