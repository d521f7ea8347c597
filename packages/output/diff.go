package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/axotly/packages/assertions"
	"github.com/abdul-hamid-achik/axotly/packages/core/runner"
)

// DiffFormatter prints every failed expectation inline as a numbered pair of
// "- expected" and "+ actual" lines.
type DiffFormatter struct {
	writer       io.Writer
	noColor      bool
	showResponse bool
}

type DiffOption func(*DiffFormatter)

func NewDiffFormatter(opts ...DiffOption) *DiffFormatter {
	f := &DiffFormatter{
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

func DiffWithWriter(w io.Writer) DiffOption {
	return func(f *DiffFormatter) {
		f.writer = w
	}
}

func DiffWithNoColor(nc bool) DiffOption {
	return func(f *DiffFormatter) {
		f.noColor = nc
	}
}

func DiffWithShowResponse(show bool) DiffOption {
	return func(f *DiffFormatter) {
		f.showResponse = show
	}
}

func (f *DiffFormatter) FormatSummary(summary *runner.RunSummary) {
	bold := color.New(color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, file := range summary.Files() {
		fmt.Fprintf(f.writer, "\n%s\n", bold(file.Path))
		for _, r := range file.Results {
			fmt.Fprintf(f.writer, "  %s %s\n", glyph(r), r.Test.DisplayName())
			if r.Err != nil {
				fmt.Fprintf(f.writer, "      %s\n", yellow(r.Err.Error()))
			}
			for i, d := range r.Failures {
				f.formatFailure(i+1, d)
			}
			if f.showResponse && !r.Passed() {
				writeExchange(f.writer, r, "      ")
			}
		}
	}

	writeParseErrors(f.writer, summary)
	writeTotals(f.writer, summary)
}

func (f *DiffFormatter) formatFailure(n int, d *assertions.FailureDetail) {
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	actual := d.Actual
	if d.Kind == assertions.PathNotFound {
		actual = "(path not found)"
	}
	fmt.Fprintf(f.writer, "      %d) %s\n", n, d.Path)
	fmt.Fprintf(f.writer, "      %s\n", green("- "+d.Expected))
	fmt.Fprintf(f.writer, "      %s\n", red("+ "+actual))
}

func (f *DiffFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *DiffFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("axotly"), version)
}
