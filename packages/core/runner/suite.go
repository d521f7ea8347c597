package runner

import (
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
)

// Suite is the parsed form of a set of .ax files. Files that failed to parse
// contribute no tests; their errors are kept for reporting.
type Suite struct {
	Files       []*parser.File
	Tests       []*parser.Test
	ParseErrors []*parser.ParseError
}

// LoadSuite parses paths in order. A ParseError only excludes its own file;
// any other error (an unreadable file) aborts loading.
func LoadSuite(paths []string) (*Suite, error) {
	suite := &Suite{}
	for _, path := range paths {
		file, err := parser.ParseFile(path)
		if err != nil {
			var parseErr *parser.ParseError
			if errors.As(err, &parseErr) {
				suite.ParseErrors = append(suite.ParseErrors, parseErr)
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		suite.Files = append(suite.Files, file)
		suite.Tests = append(suite.Tests, file.Tests...)
	}
	return suite, nil
}
