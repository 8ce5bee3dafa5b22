package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

type summary struct {
	orgPath     string
	notes       int
	skipped     int
	attachments int
	bytes       uint64
	elapsed     time.Duration
}

func (s summary) String() string {
	return fmt.Sprintf("%s: %s notes, %s skipped, %s attachments (%s) in %s",
		s.orgPath,
		humanize.Comma(int64(s.notes)),
		humanize.Comma(int64(s.skipped)),
		humanize.Comma(int64(s.attachments)),
		humanize.Bytes(s.bytes),
		s.elapsed.Round(time.Millisecond),
	)
}
