// Package assertions evaluates expectations against HTTP responses.
//
// Every response is wrapped in an Envelope exposing status, headers and body
// (parsed JSON, or the raw text when the body is not JSON). Expectation paths
// are resolved against that envelope segment by segment:
//   - a name segment selects an object key
//   - a numeric segment selects an array position
//
// Equality is strict and typed: numbers compare by value, strings by content,
// booleans by identity and null only matches null. Mismatches are returned as
// FailureDetail values, never as errors.
package assertions
