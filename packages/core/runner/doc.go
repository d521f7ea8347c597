// Package runner executes axotly tests and collects their results.
//
// It provides functionality for:
//   - Loading a suite of .ax files, keeping parse errors per file
//   - Running tests on a fixed pool of concurrent workers
//   - Reporting results in discovery order regardless of completion order
//   - Cancelling a run and reporting unfinished tests as errored
//   - Optional dispatch rate limiting and latency percentiles
//
// Tests never share state. The only shared collaborator is the Transport,
// which must be safe for concurrent use.
package runner
