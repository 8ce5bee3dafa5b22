package enex

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE en-export SYSTEM "http://xml.evernote.com/pub/evernote-export3.dtd">
<en-export export-date="20200101T000000Z" application="Evernote" version="Evernote Mac 7.0">
<note>
  <title>First&nbsp;note</title>
  <content><![CDATA[<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE en-note SYSTEM "http://xml.evernote.com/pub/enml2.dtd">
<en-note><div>Hello <b>world</b></div><en-media hash="5d41402abc4b2a76b9719d911017c592" type="text/plain"/></en-note>]]></content>
  <created>20130730T205204Z</created>
  <updated>20130731T101010Z</updated>
  <tag>work</tag>
  <tag>to do</tag>
  <note-attributes>
    <source-url>http://example.test/page</source-url>
    <author>someone</author>
  </note-attributes>
  <resource>
    <data encoding="base64">
aGVs
bG8=
    </data>
    <mime>text/plain</mime>
    <resource-attributes><file-name>hello.txt</file-name></resource-attributes>
  </resource>
</note>
<note>
  <title></title>
  <content><![CDATA[<en-note/>]]></content>
  <created>20140101T0930</created>
</note>
</en-export>`

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(export))

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "First\u00a0note", first.Title)
	assert.Equal(t, time.Date(2013, 7, 30, 20, 52, 4, 0, time.UTC), first.Created)
	assert.Equal(t, time.Date(2013, 7, 31, 10, 10, 10, 0, time.UTC), first.Updated)
	assert.Equal(t, []string{"work", "to do"}, first.Tags)
	assert.Equal(t, "http://example.test/page", first.SourceURL)
	assert.Equal(t, "someone", first.Author)

	require.Len(t, first.Resources, 1)
	res := first.Resources[0]
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", res.Hash)
	assert.Equal(t, "hello.txt", res.FileName)
	assert.Equal(t, "text/plain", res.Mime)
	assert.Equal(t, []byte("hello"), res.Data)

	body, err := first.Body()
	require.NoError(t, err)
	assert.Equal(t, "en-note", body.Tag)
	require.Len(t, body.Children, 2)

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "", second.Title)
	assert.Equal(t, time.Date(2014, 1, 1, 9, 30, 0, 0, time.UTC), second.Created)
	assert.True(t, second.Updated.IsZero())

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestNoteBodyWithoutContent(t *testing.T) {
	n := &Note{Title: "empty"}
	_, err := n.Body()
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: time.Time{}},
		{in: "20130730T205204Z", want: time.Date(2013, 7, 30, 20, 52, 4, 0, time.UTC)},
		{in: "20130730T2052", want: time.Date(2013, 7, 30, 20, 52, 0, 0, time.UTC)},
		{in: "20130730T205204", want: time.Date(2013, 7, 30, 20, 52, 0, 0, time.UTC)},
		{in: "2013", wantErr: true},
		{in: "yesterday at noon", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseTime(c.in)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestResourceDefaults(t *testing.T) {
	var rr rawResource
	rr.Data.Body = "aGVsbG8="
	rr.Mime = "image/png"
	rr.Attributes.FileName = `C:\scans\..\photo.png`

	res, err := rr.resource()
	require.NoError(t, err)
	assert.Equal(t, "photo.png", res.FileName)

	rr.Attributes.FileName = ""
	res, err = rr.resource()
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592.png", res.FileName)

	rr.Data.Encoding = "hex"
	_, err = rr.resource()
	assert.Error(t, err)
}

func TestAttachments(t *testing.T) {
	resources := []Resource{
		{Hash: "aaaaaaaaaaaa", FileName: "img.png", Data: []byte("one")},
		{Hash: "bbbbbbbbbbbb", FileName: "img.png", Data: []byte("two")},
		{Hash: "aaaaaaaaaaaa", FileName: "img.png", Data: []byte("one")},
	}

	a := NewAttachments("data", resources)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, "data/"+a.ID[:2]+"/"+a.ID[2:], a.Dir)

	dir, name := a.Resolve("aaaaaaaaaaaa")
	assert.Equal(t, a.Dir, dir)
	assert.Equal(t, "img.png", name)

	_, name = a.Resolve("bbbbbbbbbbbb")
	assert.Equal(t, "bbbbbbbb-img.png", name)

	_, name = a.Resolve("missing")
	assert.Equal(t, "RESOURCE_FILENAME", name)

	base := t.TempDir()
	written, err := a.Save(base)
	require.NoError(t, err)
	assert.EqualValues(t, 6, written)

	data, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(a.Dir), "bbbbbbbb-img.png"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestAttachmentsDistinctIDs(t *testing.T) {
	a, b := NewAttachments("data", nil), NewAttachments("data", nil)
	assert.NotEqual(t, a.ID, b.ID)

	written, err := a.Save(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestNoteReferenced(t *testing.T) {
	n := &Note{
		Content: `<en-note><en-media hash="AAAA"/><div><en-media hash="cccc"></en-media></div></en-note>`,
		Resources: []Resource{
			{Hash: "aaaa", FileName: "a.png"},
			{Hash: "bbbb", FileName: "b.png"},
			{Hash: "cccc", FileName: "c.png"},
		},
	}

	used, unused, err := n.Referenced()
	require.NoError(t, err)
	assert.Equal(t, []Resource{n.Resources[0], n.Resources[2]}, used)
	assert.Equal(t, []Resource{n.Resources[1]}, unused)

	used, unused, err = (&Note{}).Referenced()
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Empty(t, unused)
}
