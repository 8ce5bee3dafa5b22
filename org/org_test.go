package org

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEntryString(t *testing.T) {
	e := Entry{
		Title: "Shopping\u00a0list",
		Tags:  []string{"home", "to do", "  ", "c++"},
		Properties: []Property{
			{Key: "ID", Value: "1234"},
			{Key: "SOURCE", Value: ""},
			{Key: "AUTHOR", Value: "me"},
		},
		Body:    "\n- milk\n* not a headline",
		Created: time.Date(2013, 7, 30, 20, 52, 4, 0, time.UTC),
	}

	want := "* Shopping list :home:to_do:c:\n" +
		"  :PROPERTIES:\n" +
		"  :ID: 1234\n" +
		"  :AUTHOR: me\n" +
		"  :END:\n" +
		"\n" +
		"\n- milk\n\\* not a headline\n" +
		"\n" +
		"[2013-07-30 Tue 20:52]\n"

	assert.Equal(t, want, e.String())
}

func TestEntryDefaults(t *testing.T) {
	e := Entry{Level: 0, Body: "body"}
	assert.Equal(t, "* UNTITLED NOTE\n  :PROPERTIES:\n  :END:\n\nbody\n\n", e.String())

	e = Entry{Level: 3, Title: "deep"}
	assert.Contains(t, e.String(), "*** deep\n")
}

func TestFileHeader(t *testing.T) {
	assert.Equal(t, "#+TITLE: notebook\n#+STARTUP: content\n\n", FileHeader("notebook", "content"))
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"a&nbsp;b", "a b"},
		{"a\u00a0b", "a b"},
		{"* top", `\* top`},
		{"x\n* item\n** two", "x\n\\* item\n** two"},
		{"a * b", "a * b"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, CleanText(c.in), c.in)
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2021, 2, 3, 4, 5, 0, 0, time.UTC)
	assert.Equal(t, "[2021-02-03 Wed 04:05]", Timestamp(ts))
}
