// Package value provides the JSON value model shared by the parser and the
// assertion evaluator.
//
// A Value is a tagged union over the six JSON kinds:
//   - null
//   - boolean
//   - number (always compared by numeric value)
//   - string
//   - array
//   - object (keys keep their document order)
//
// Response bodies are decoded with gjson and converted into Values so that
// equality and literal rendering are defined in one place.
package value
