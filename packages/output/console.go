package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/axotly/packages/core/runner"
)

type ConsoleFormatter struct {
	writer       io.Writer
	verbose      bool
	noColor      bool
	showResponse bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithShowResponse prints the request and response of every failed or
// errored test in the Failures section.
func WithShowResponse(show bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.showResponse = show
	}
}

// FormatSummary renders the whole run: tests grouped by file, the failures,
// the parse errors and the totals.
func (f *ConsoleFormatter) FormatSummary(summary *runner.RunSummary) {
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for _, file := range summary.Files() {
		fmt.Fprintf(f.writer, "\n%s\n", bold(file.Path))
		for _, r := range file.Results {
			fmt.Fprintf(f.writer, "  %s %s %s\n", glyph(r), r.Test.DisplayName(), cyan(formatMs(r.Duration, "(", ")")))
			if f.verbose && r.Response != nil {
				fmt.Fprintf(f.writer, "    Status: %d in %dms\n", r.Response.StatusCode, r.Response.DurationMs())
			}
		}
	}

	failed := unsuccessful(summary)
	if len(failed) > 0 {
		fmt.Fprintf(f.writer, "\n%s\n", bold("Failures:"))
		for i, r := range failed {
			fmt.Fprintf(f.writer, "\n  %d) %s:%d › %s\n", i+1, r.Test.File, r.Test.StartLine, r.Test.DisplayName())
			if r.Err != nil {
				fmt.Fprintf(f.writer, "     %s\n", red(r.Err.Error()))
			}
			for _, d := range r.Failures {
				fmt.Fprintf(f.writer, "     %s %s\n", red("→"), d.String())
			}
			if f.showResponse {
				writeExchange(f.writer, r, "     ")
			}
		}
	}

	writeParseErrors(f.writer, summary)
	writeTotals(f.writer, summary)
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("axotly"), version)
}
