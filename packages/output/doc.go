// Package output renders run summaries for the terminal.
//
// Two renderers are available:
//   - Console: tests grouped by file, then a Failures section and totals
//   - Diff: every failed expectation inline as "- expected" / "+ actual"
//
// Both print the report once, after the run has finished or was cancelled.
// FormatResponse is shared with the fetch command.
package output
