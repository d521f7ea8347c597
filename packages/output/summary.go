package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/axotly/packages/core/runner"
)

func glyph(r *runner.TestResult) string {
	switch r.Outcome {
	case runner.OutcomePassed:
		return color.New(color.FgGreen).Sprint("✓")
	case runner.OutcomeFailed:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return color.New(color.FgYellow).Sprint("!")
	}
}

func formatMs(d time.Duration, open, close string) string {
	return fmt.Sprintf("%s%dms%s", open, d.Milliseconds(), close)
}

func unsuccessful(summary *runner.RunSummary) []*runner.TestResult {
	var out []*runner.TestResult
	for _, r := range summary.Results {
		if r.Outcome != runner.OutcomePassed {
			out = append(out, r)
		}
	}
	return out
}

func writeParseErrors(w io.Writer, summary *runner.RunSummary) {
	if len(summary.ParseErrors) == 0 {
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "\n%s\n\n", bold("Parse errors:"))
	for _, e := range summary.ParseErrors {
		fmt.Fprintf(w, "  %s %s\n", red("✗"), e.Error())
		if e.Snippet != "" {
			fmt.Fprintf(w, "      %s\n", e.Snippet)
		}
	}
}

func writeTotals(w io.Writer, summary *runner.RunSummary) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Tests:   ")
	if summary.Passed > 0 {
		fmt.Fprintf(w, "%s, ", green(fmt.Sprintf("%d passed", summary.Passed)))
	}
	if summary.Failed > 0 {
		fmt.Fprintf(w, "%s, ", red(fmt.Sprintf("%d failed", summary.Failed)))
	}
	if summary.Errored > 0 {
		fmt.Fprintf(w, "%s, ", yellow(fmt.Sprintf("%d errored", summary.Errored)))
	}
	fmt.Fprintf(w, "%d total\n", summary.Total())
	if n := len(summary.ParseErrors); n > 0 {
		fmt.Fprintf(w, "Files:   %s\n", red(fmt.Sprintf("%d skipped (parse errors)", n)))
	}
	if l := summary.Latency; l.Count > 0 {
		fmt.Fprintf(w, "Latency: p50 %s, p95 %s, p99 %s, max %s\n",
			formatMs(l.P50, "", ""), formatMs(l.P95, "", ""), formatMs(l.P99, "", ""), formatMs(l.Max, "", ""))
	}
	fmt.Fprintf(w, "Time:    %s\n", formatMs(summary.Duration, "", ""))
}
