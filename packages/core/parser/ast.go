package parser

import (
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/axotly/packages/value"
)

type File struct {
	Path  string
	Tests []*Test
}

// Test is one TEST...END block. It is never modified after parsing.
type Test struct {
	Name         string
	File         string
	StartLine    int
	EndLine      int
	Request      *Request
	Expectations []*Expectation
}

// DisplayName returns the declared name, or "METHOD URL" for unnamed tests.
func (t *Test) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Request == nil {
		return "<unnamed>"
	}
	return t.Request.Method + " " + t.Request.URL
}

type Request struct {
	Method  string
	URL     string
	Headers []*Header
	Body    *Body
	Line    int
}

type Header struct {
	Key   string
	Value string
	Line  int
}

// Body holds the raw text between BODY and BODYEND. It is never interpreted.
type Body struct {
	Raw  string
	Line int
}

// Methods lists the request methods accepted on a request line.
var Methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

func IsMethod(s string) bool {
	for _, m := range Methods {
		if s == m {
			return true
		}
	}
	return false
}

type Expectation struct {
	Path     Path
	Operator Operator
	// Expected is the right-hand literal of binary operators.
	Expected value.Value
	// Candidates holds the literals of an IN list.
	Candidates []value.Value
	// Low and High are the inclusive bounds of BETWEEN.
	Low  value.Value
	High value.Value
	Line int
}

// ExpectedString renders the right-hand side of the expectation. Equality
// renders the bare literal; other operators are prefixed with their keyword.
func (e *Expectation) ExpectedString() string {
	switch e.Operator {
	case OpEquals:
		return e.Expected.String()
	case OpNotEquals, OpGreaterThan, OpGreaterOrEqual, OpLessThan, OpLessOrEqual:
		return e.Operator.String() + " " + e.Expected.String()
	case OpIn:
		parts := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			parts[i] = c.JSON()
		}
		return "in [" + strings.Join(parts, ", ") + "]"
	case OpBetween:
		return "between " + e.Low.String() + " and " + e.High.String()
	case OpExists:
		return "exists"
	case OpTruthy:
		return "true"
	}
	return ""
}

// String renders the expectation in DSL form, without the EXPECT keyword.
func (e *Expectation) String() string {
	switch e.Operator {
	case OpIn:
		parts := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			parts[i] = c.JSON()
		}
		return e.Path.String() + " IN [" + strings.Join(parts, ", ") + "]"
	case OpBetween:
		return e.Path.String() + " BETWEEN " + e.Low.JSON() + " AND " + e.High.JSON()
	case OpExists:
		return e.Path.String() + " EXISTS"
	case OpTruthy:
		return e.Path.String()
	}
	return e.Path.String() + " " + e.Operator.String() + " " + e.Expected.JSON()
}

type Operator int

const (
	OpEquals Operator = iota
	OpNotEquals
	OpGreaterThan
	OpGreaterOrEqual
	OpLessThan
	OpLessOrEqual
	OpIn
	OpBetween
	OpExists
	OpTruthy
)

func (op Operator) String() string {
	switch op {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpGreaterThan:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpLessThan:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpIn:
		return "IN"
	case OpBetween:
		return "BETWEEN"
	case OpExists:
		return "EXISTS"
	case OpTruthy:
		return "is true"
	default:
		return "unknown"
	}
}

func lookupComparison(s string) (Operator, bool) {
	switch s {
	case "==":
		return OpEquals, true
	case "!=":
		return OpNotEquals, true
	case ">":
		return OpGreaterThan, true
	case ">=":
		return OpGreaterOrEqual, true
	case "<":
		return OpLessThan, true
	case "<=":
		return OpLessOrEqual, true
	}
	return OpEquals, false
}

type ParseError struct {
	File    string
	Line    int
	Message string
	Snippet string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + e.Message
	}
	return "line " + strconv.Itoa(e.Line) + ": " + e.Message
}
