// Package cmd implements the axotly CLI commands using Cobra.
//
// Available commands:
//   - run: Execute the tests of .ax files concurrently
//   - validate: Check test file syntax without executing
//   - list: Display all tests defined in files
//   - fetch: Send a single ad-hoc request and print the response
//   - version: Show axotly version information
//
// Commands report through the output package and return an ExitError
// carrying the process exit code; Execute is the only place that exits.
package cmd
