package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// CLILogger writes prefixed, coloured lines for the command line. Debug
// output needs Verbose; Silence drops everything below errors.
type CLILogger struct {
	out       io.Writer
	mu        sync.Mutex
	isSilent  bool
	isVerbose bool

	debug *color.Color
	warn  *color.Color
	err   *color.Color
}

func NewCLILogger(out io.Writer) *CLILogger {
	if out == nil {
		out = os.Stderr
	}
	return &CLILogger{
		out:   out,
		debug: color.New(color.Faint),
		warn:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
	}
}

func (l *CLILogger) Silence() {
	if l == nil {
		return
	}
	l.isSilent = true
}

func (l *CLILogger) Verbose() {
	if l == nil {
		return
	}
	l.isVerbose = true
}

func (l *CLILogger) Debugf(msg string, args ...any) {
	if l == nil || l.isSilent || !l.isVerbose {
		return
	}
	l.write(l.debug, "debug", msg, args)
}

func (l *CLILogger) Infof(msg string, args ...any) {
	if l == nil || l.isSilent {
		return
	}
	l.write(nil, "", msg, args)
}

func (l *CLILogger) Warnf(msg string, args ...any) {
	if l == nil || l.isSilent {
		return
	}
	l.write(l.warn, "warning", msg, args)
}

func (l *CLILogger) Errorf(msg string, args ...any) {
	if l == nil {
		return
	}
	l.write(l.err, "error", msg, args)
}

func (l *CLILogger) write(c *color.Color, prefix, msg string, args []any) {
	line := fmt.Sprintf(msg, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if c == nil {
		fmt.Fprintln(l.out, line)
		return
	}
	c.Fprint(l.out, prefix+": ")
	fmt.Fprintln(l.out, line)
}
