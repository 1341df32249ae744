// Package logging provides the logger capability injected into the request
// pipeline, and cause-chain error reporting.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Logger is the capability the server core depends on. It is injected at
// construction time so the core never touches process-global state.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// ColorLogger writes leveled, colored lines to a single writer.
type ColorLogger struct {
	mu  sync.Mutex
	out io.Writer

	info string
	err  string
}

// New returns a ColorLogger writing to out. Setting the NO_ANSI environment
// variable disables color globally.
func New(out io.Writer) *ColorLogger {
	if _, ok := os.LookupEnv("NO_ANSI"); ok {
		color.NoColor = true
	}
	return &ColorLogger{
		out:  out,
		info: color.New(color.FgCyan).Sprint("info:"),
		err:  color.New(color.FgRed).Sprint("error:"),
	}
}

func (l *ColorLogger) Infof(format string, args ...any) {
	l.write(l.info, format, args)
}

func (l *ColorLogger) Errorf(format string, args ...any) {
	l.write(l.err, format, args)
}

func (l *ColorLogger) write(level, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", level, fmt.Sprintf(format, args...))
}

// ErrorChain reports an error and every underlying cause, one line each,
// outermost first.
func ErrorChain(l Logger, err error) {
	l.Errorf("%v", err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		l.Errorf("caused by: %v", cause)
	}
}
