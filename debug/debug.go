// Package debug writes verbose diagnostics to stderr when enabled.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/k0kubun/pp"
)

var (
	// Enabled turns on Log output.
	Enabled bool

	// Dumps turns on Dump output.
	Dumps bool
)

var (
	mu     sync.Mutex
	writer io.Writer = os.Stderr
)

// SetWriter overrides the destination for debug output.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
}

// Log writes a formatted, timestamped line when debug logging is enabled.
func Log(format string, args ...interface{}) {
	if !Enabled {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	fmt.Fprintf(writer, "[DEBUG %s] ", time.Now().Format("15:04:05.000"))
	fmt.Fprintf(writer, format, args...)
	fmt.Fprintln(writer)
}

// Dump pretty-prints v under a label when dumps are enabled.
func Dump(label string, v interface{}) {
	if !Dumps {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	fmt.Fprintf(writer, "[DUMP %s]\n", label)
	pp.Fprintln(writer, v)
}
