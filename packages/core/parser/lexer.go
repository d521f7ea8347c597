package parser

import (
	"strings"
)

type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineTest
	LineEnd
	LineBody
	LineBodyEnd
	LineExpect
	LineText
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineTest:
		return "TEST"
	case LineEnd:
		return "END"
	case LineBody:
		return "BODY"
	case LineBodyEnd:
		return "BODYEND"
	case LineExpect:
		return "EXPECT"
	default:
		return "text"
	}
}

// Line is one classified source line. Raw keeps the line verbatim (minus the
// line terminator) for body blocks; Text is trimmed; Arg is what follows the
// TEST or EXPECT keyword.
type Line struct {
	Number int
	Raw    string
	Text   string
	Kind   LineKind
	Arg    string
}

type LineScanner struct {
	lines []string
	pos   int
}

func NewLineScanner(input string) *LineScanner {
	return &LineScanner{lines: strings.Split(input, "\n")}
}

// Next returns the next line, or false at end of input. A trailing newline
// does not produce an extra line.
func (s *LineScanner) Next() (Line, bool) {
	if s.pos >= len(s.lines) {
		return Line{}, false
	}
	if s.pos == len(s.lines)-1 && s.lines[s.pos] == "" {
		s.pos++
		return Line{}, false
	}
	raw := strings.TrimSuffix(s.lines[s.pos], "\r")
	s.pos++
	line := classifyLine(raw)
	line.Number = s.pos
	return line, true
}

func classifyLine(raw string) Line {
	text := strings.TrimSpace(raw)
	line := Line{Raw: raw, Text: text, Kind: LineText}

	switch {
	case text == "":
		line.Kind = LineBlank
	case strings.HasPrefix(text, "#"):
		line.Kind = LineComment
	case text == "END":
		line.Kind = LineEnd
	case text == "BODY":
		line.Kind = LineBody
	case text == "BODYEND":
		line.Kind = LineBodyEnd
	default:
		if arg, ok := keywordArg(text, "TEST"); ok {
			line.Kind = LineTest
			line.Arg = arg
		} else if arg, ok := keywordArg(text, "EXPECT"); ok {
			line.Kind = LineExpect
			line.Arg = arg
		}
	}
	return line
}

func keywordArg(text, keyword string) (string, bool) {
	if text == keyword {
		return "", true
	}
	if !strings.HasPrefix(text, keyword) {
		return "", false
	}
	rest := text[len(keyword):]
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenWord
	TokenString
	TokenOperator
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenIllegal
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of line"
	case TokenWord:
		return "word"
	case TokenString:
		return "string"
	case TokenOperator:
		return "operator"
	case TokenLeftBracket:
		return "'['"
	case TokenRightBracket:
		return "']'"
	case TokenComma:
		return "','"
	default:
		return "illegal"
	}
}

type Token struct {
	Type   TokenType
	Value  string
	Column int
}

// Lexer tokenizes the expression that follows EXPECT.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	column  int
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
}

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	tok := Token{Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		return tok
	case '"':
		return l.readString()
	case '[':
		tok.Type = TokenLeftBracket
		tok.Value = "["
	case ']':
		tok.Type = TokenRightBracket
		tok.Value = "]"
	case ',':
		tok.Type = TokenComma
		tok.Value = ","
	case '=', '!':
		if l.peekChar() != '=' {
			tok.Type = TokenIllegal
			tok.Value = string(l.ch)
			break
		}
		first := l.ch
		l.readChar()
		tok.Type = TokenOperator
		tok.Value = string(first) + "="
	case '<', '>':
		tok.Type = TokenOperator
		tok.Value = string(l.ch)
		if l.peekChar() == '=' {
			l.readChar()
			tok.Value += "="
		}
	default:
		tok.Type = TokenWord
		tok.Value = l.readWord()
		return tok
	}

	l.readChar()
	return tok
}

// readString reads a double-quoted string. The only escape is \" for a
// literal quote; any other backslash is kept as is.
func (l *Lexer) readString() Token {
	tok := Token{Type: TokenString, Column: l.column}
	var b strings.Builder
	l.readChar()
	for {
		switch {
		case l.ch == 0:
			tok.Type = TokenIllegal
			tok.Value = "unterminated string"
			return tok
		case l.ch == '\\' && l.peekChar() == '"':
			b.WriteByte('"')
			l.readChar()
		case l.ch == '"':
			l.readChar()
			tok.Value = b.String()
			return tok
		default:
			b.WriteByte(l.ch)
		}
		l.readChar()
	}
}

// readWord reads a path or bare literal. Brackets belong to the word while
// they are balanced, so items[0] is one word and the ']' closing an IN list
// is not.
func (l *Lexer) readWord() string {
	start := l.pos
	depth := 0
	for l.ch != 0 && !isWordBreak(l.ch) {
		if l.ch == '[' {
			depth++
		} else if l.ch == ']' {
			if depth == 0 {
				break
			}
			depth--
		}
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isWordBreak(ch byte) bool {
	switch ch {
	case ' ', '\t', ',', '"', '=', '!', '<', '>':
		return true
	}
	return false
}
