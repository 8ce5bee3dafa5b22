// Package org renders notes as org-mode entries.
package org

import (
	"regexp"
	"strings"
	"time"
)

// Untitled is the headline used for notes without a title.
const Untitled = "UNTITLED NOTE"

var (
	tagInvalid = regexp.MustCompile(`[^[:alnum:]_@#%]+`)
	headline   = regexp.MustCompile(`(?m)^\* `)
)

// Property is a single line of a property drawer.
type Property struct {
	Key   string
	Value string
}

// Entry is one headline with its property drawer, body and timestamp.
type Entry struct {
	Level      int
	Title      string
	Tags       []string
	Properties []Property
	Body       string
	Created    time.Time
}

func (e Entry) String() string {
	var b strings.Builder

	level := e.Level
	if level < 1 {
		level = 1
	}
	b.WriteString(strings.Repeat("*", level))
	b.WriteByte(' ')

	title := strings.TrimSpace(CleanText(e.Title))
	if title == "" {
		title = Untitled
	}
	b.WriteString(title)
	if tags := formatTags(e.Tags); tags != "" {
		b.WriteByte(' ')
		b.WriteString(tags)
	}
	b.WriteByte('\n')

	b.WriteString("  :PROPERTIES:\n")
	for _, p := range e.Properties {
		if p.Value == "" {
			continue
		}
		b.WriteString("  :" + p.Key + ": " + p.Value + "\n")
	}
	b.WriteString("  :END:\n\n")

	b.WriteString(CleanText(e.Body))
	b.WriteString("\n\n")

	if !e.Created.IsZero() {
		b.WriteString(Timestamp(e.Created))
		b.WriteByte('\n')
	}
	return b.String()
}

// FileHeader returns the in-buffer settings opening an org file.
func FileHeader(title, startup string) string {
	return "#+TITLE: " + title + "\n#+STARTUP: " + startup + "\n\n"
}

// CleanText replaces non-breaking spaces and escapes lines that would
// otherwise start a new headline.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return headline.ReplaceAllString(s, `\* `)
}

// Timestamp formats t as an inactive org timestamp.
func Timestamp(t time.Time) string {
	return t.Format("[2006-01-02 Mon 15:04]")
}

func formatTags(tags []string) string {
	var clean []string
	for _, tag := range tags {
		tag = strings.Trim(tagInvalid.ReplaceAllString(strings.TrimSpace(tag), "_"), "_")
		if tag != "" {
			clean = append(clean, tag)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	return ":" + strings.Join(clean, ":") + ":"
}
