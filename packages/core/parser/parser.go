package parser

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/axotly/packages/value"
)

type parserState int

const (
	stateAwaitTest parserState = iota
	stateAwaitRequest
	stateAwaitHeaderBodyOrExpect
	stateInBody
	stateAwaitExpectOrEnd
)

func (s parserState) String() string {
	switch s {
	case stateAwaitTest:
		return "AwaitTest"
	case stateAwaitRequest:
		return "AwaitRequest"
	case stateAwaitHeaderBodyOrExpect:
		return "AwaitHeaderBodyOrExpect"
	case stateInBody:
		return "InBody"
	case stateAwaitExpectOrEnd:
		return "AwaitExpectOrEnd"
	default:
		return "unknown"
	}
}

type transitionFunc func(p *Parser, line Line) (parserState, error)

var transitions = [...]transitionFunc{
	stateAwaitTest:               (*Parser).awaitTest,
	stateAwaitRequest:            (*Parser).awaitRequest,
	stateAwaitHeaderBodyOrExpect: (*Parser).awaitHeaderBodyOrExpect,
	stateInBody:                  (*Parser).inBody,
	stateAwaitExpectOrEnd:        (*Parser).awaitExpectOrEnd,
}

var headerPattern = regexp.MustCompile("^([A-Za-z0-9!#$%&'*+.^_`|~-]+):[ \t]*(.*)$")

type Parser struct {
	scanner *LineScanner
	file    string
	state   parserState
	current *Test
	body    []string
	tests   []*Test
}

func NewParser(input string) *Parser {
	return &Parser{
		scanner: NewLineScanner(input),
		state:   stateAwaitTest,
	}
}

func ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content), path)
}

func Parse(input, filename string) (*File, error) {
	p := NewParser(input)
	p.file = filename
	return p.ParseFile()
}

// ParseFile runs the state machine over every line and stops at the first
// malformed construct.
func (p *Parser) ParseFile() (*File, error) {
	for {
		line, ok := p.scanner.Next()
		if !ok {
			break
		}
		if p.state != stateInBody && (line.Kind == LineBlank || line.Kind == LineComment) {
			continue
		}
		next, err := transitions[p.state](p, line)
		if err != nil {
			return nil, err
		}
		p.state = next
	}

	if p.state != stateAwaitTest {
		return nil, &ParseError{
			File:    p.file,
			Line:    p.current.StartLine,
			Message: "unterminated test",
			Snippet: "TEST " + p.current.Name,
		}
	}

	return &File{Path: p.file, Tests: p.tests}, nil
}

func (p *Parser) errorf(line Line, format string, args ...any) *ParseError {
	return &ParseError{
		File:    p.file,
		Line:    line.Number,
		Message: fmt.Sprintf(format, args...),
		Snippet: line.Text,
	}
}

func (p *Parser) awaitTest(line Line) (parserState, error) {
	if line.Kind != LineTest {
		return stateAwaitTest, p.errorf(line, "expected TEST, got %q", line.Text)
	}
	p.current = &Test{
		Name:      unquoteName(line.Arg),
		File:      p.file,
		StartLine: line.Number,
	}
	return stateAwaitRequest, nil
}

func (p *Parser) awaitRequest(line Line) (parserState, error) {
	method, url := line.Text, ""
	if i := strings.IndexAny(line.Text, " \t"); i >= 0 {
		method, url = line.Text[:i], strings.TrimSpace(line.Text[i+1:])
	}
	if line.Kind != LineText || !IsMethod(method) || url == "" {
		return stateAwaitRequest, p.errorf(line, "expected request line")
	}
	p.current.Request = &Request{
		Method: method,
		URL:    url,
		Line:   line.Number,
	}
	return stateAwaitHeaderBodyOrExpect, nil
}

func (p *Parser) awaitHeaderBodyOrExpect(line Line) (parserState, error) {
	switch line.Kind {
	case LineBody:
		p.body = p.body[:0]
		p.current.Request.Body = &Body{Line: line.Number}
		return stateInBody, nil
	case LineExpect:
		if err := p.addExpectation(line); err != nil {
			return stateAwaitHeaderBodyOrExpect, err
		}
		return stateAwaitExpectOrEnd, nil
	case LineEnd:
		return stateAwaitHeaderBodyOrExpect, p.errorf(line, "expected at least one EXPECT before END")
	}

	if line.Kind == LineText {
		if m := headerPattern.FindStringSubmatch(line.Text); m != nil {
			p.current.Request.Headers = append(p.current.Request.Headers, &Header{
				Key:   m[1],
				Value: strings.TrimSpace(m[2]),
				Line:  line.Number,
			})
			return stateAwaitHeaderBodyOrExpect, nil
		}
	}
	return stateAwaitHeaderBodyOrExpect, p.errorf(line, "expected header, BODY or EXPECT, got %q", line.Text)
}

func (p *Parser) inBody(line Line) (parserState, error) {
	if line.Raw == "BODYEND" {
		p.current.Request.Body.Raw = strings.Join(p.body, "\n")
		return stateAwaitExpectOrEnd, nil
	}
	p.body = append(p.body, line.Raw)
	return stateInBody, nil
}

func (p *Parser) awaitExpectOrEnd(line Line) (parserState, error) {
	switch line.Kind {
	case LineExpect:
		if err := p.addExpectation(line); err != nil {
			return stateAwaitExpectOrEnd, err
		}
		return stateAwaitExpectOrEnd, nil
	case LineEnd:
		if len(p.current.Expectations) == 0 {
			return stateAwaitExpectOrEnd, p.errorf(line, "expected at least one EXPECT before END")
		}
		p.current.EndLine = line.Number
		p.tests = append(p.tests, p.current)
		p.current = nil
		return stateAwaitTest, nil
	}
	return stateAwaitExpectOrEnd, p.errorf(line, "expected EXPECT or END, got %q", line.Text)
}

func (p *Parser) addExpectation(line Line) error {
	exp, err := parseExpectation(line.Arg)
	if err != nil {
		return p.errorf(line, "%s", err.Error())
	}
	exp.Line = line.Number
	p.current.Expectations = append(p.current.Expectations, exp)
	return nil
}

func unquoteName(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	return name
}

// exprParser parses the expression of one EXPECT line.
type exprParser struct {
	lexer    *Lexer
	curToken Token
}

func (e *exprParser) nextToken() {
	e.curToken = e.lexer.NextToken()
}

func parseExpectation(expr string) (*Expectation, error) {
	e := &exprParser{lexer: NewLexer(expr)}
	e.nextToken()

	if e.curToken.Type != TokenWord {
		return nil, fmt.Errorf("expected path after EXPECT")
	}
	path, err := ParsePath(e.curToken.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %v", err)
	}
	exp := &Expectation{Path: path}
	e.nextToken()

	switch {
	case e.curToken.Type == TokenEOF:
		exp.Operator = OpTruthy
		return exp, nil
	case e.curToken.Type == TokenOperator:
		op, ok := lookupComparison(e.curToken.Value)
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", e.curToken.Value)
		}
		exp.Operator = op
		e.nextToken()
		if exp.Expected, err = e.parseLiteral(); err != nil {
			return nil, err
		}
	case e.curToken.Type == TokenWord && e.curToken.Value == "IN":
		exp.Operator = OpIn
		e.nextToken()
		if exp.Candidates, err = e.parseList(); err != nil {
			return nil, err
		}
	case e.curToken.Type == TokenWord && e.curToken.Value == "BETWEEN":
		exp.Operator = OpBetween
		e.nextToken()
		if exp.Low, err = e.parseLiteral(); err != nil {
			return nil, err
		}
		if e.curToken.Type != TokenWord || e.curToken.Value != "AND" {
			return nil, fmt.Errorf("expected AND in BETWEEN")
		}
		e.nextToken()
		if exp.High, err = e.parseLiteral(); err != nil {
			return nil, err
		}
	case e.curToken.Type == TokenWord && e.curToken.Value == "EXISTS":
		exp.Operator = OpExists
		e.nextToken()
	default:
		return nil, fmt.Errorf("expected operator after %s, got %q", path.Raw, e.curToken.Value)
	}

	if e.curToken.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected trailing input %q", e.curToken.Value)
	}
	return exp, nil
}

func (e *exprParser) parseLiteral() (value.Value, error) {
	tok := e.curToken
	switch tok.Type {
	case TokenString:
		e.nextToken()
		return value.String(tok.Value), nil
	case TokenWord:
		e.nextToken()
		return parseBareLiteral(tok.Value)
	case TokenIllegal:
		return value.Null(), fmt.Errorf("invalid literal: %s", tok.Value)
	}
	return value.Null(), fmt.Errorf("expected literal, got %s", tok.Type)
}

func parseBareLiteral(word string) (value.Value, error) {
	switch word {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "null":
		return value.Null(), nil
	}
	n, err := strconv.ParseFloat(word, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return value.Null(), fmt.Errorf("invalid literal %q", word)
	}
	return value.Number(n), nil
}

func (e *exprParser) parseList() ([]value.Value, error) {
	if e.curToken.Type != TokenLeftBracket {
		return nil, fmt.Errorf("expected '[' after IN")
	}
	e.nextToken()

	var items []value.Value
	for {
		if e.curToken.Type == TokenRightBracket && len(items) == 0 {
			return nil, fmt.Errorf("empty IN list")
		}
		item, err := e.parseLiteral()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		switch e.curToken.Type {
		case TokenComma:
			e.nextToken()
		case TokenRightBracket:
			e.nextToken()
			return items, nil
		default:
			return nil, fmt.Errorf("expected ',' or ']' in IN list")
		}
	}
}
