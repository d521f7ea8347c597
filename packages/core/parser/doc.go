// Package parser provides parsing functionality for axotly .ax test files.
//
// A file holds any number of TEST...END blocks:
//
//	TEST Get user
//	GET https://api.example.com/users/1
//	Accept: application/json
//	EXPECT status == 200
//	EXPECT body.name == "Juan"
//	EXPECT body.tags[0] EXISTS
//	END
//
// The parser handles:
//   - Request lines (GET, POST, PUT, PATCH, DELETE followed by a URL)
//   - Header lines of the form Name: Value
//   - Raw body blocks between BODY and BODYEND, copied verbatim
//   - Expectations with ==, !=, <, <=, >, >=, IN, BETWEEN and EXISTS
//   - Comment lines starting with #
//
// Parsing is line oriented and driven by an explicit state machine. The first
// malformed construct stops parsing of that file with a *ParseError carrying
// the file name and line.
package parser
