package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineScanner(t *testing.T) {
	input := "TEST \"T1\"\r\nGET https://x/1\n\n  # note\nEXPECT status == 200\nEND\n"
	s := NewLineScanner(input)

	var lines []Line
	for {
		line, ok := s.Next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}

	require.Len(t, lines, 6)
	assert.Equal(t, LineTest, lines[0].Kind)
	assert.Equal(t, `"T1"`, lines[0].Arg)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, LineText, lines[1].Kind)
	assert.Equal(t, "GET https://x/1", lines[1].Raw)
	assert.Equal(t, LineBlank, lines[2].Kind)
	assert.Equal(t, LineComment, lines[3].Kind)
	assert.Equal(t, LineExpect, lines[4].Kind)
	assert.Equal(t, "status == 200", lines[4].Arg)
	assert.Equal(t, 5, lines[4].Number)
	assert.Equal(t, LineEnd, lines[5].Kind)
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		raw  string
		kind LineKind
		arg  string
	}{
		{"TEST", LineTest, ""},
		{"TEST   spaced name  ", LineTest, "spaced name"},
		{"TESTING", LineText, ""},
		{"  END  ", LineEnd, ""},
		{"ENDING", LineText, ""},
		{"BODY", LineBody, ""},
		{"BODYEND", LineBodyEnd, ""},
		{"EXPECT\tbody.id EXISTS", LineExpect, "body.id EXISTS"},
		{"EXPECTATION", LineText, ""},
		{"Content-Type: application/json", LineText, ""},
		{"", LineBlank, ""},
		{"\t ", LineBlank, ""},
		{"# comment", LineComment, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			line := classifyLine(tt.raw)
			assert.Equal(t, tt.kind, line.Kind)
			assert.Equal(t, tt.arg, line.Arg)
		})
	}
}

func TestLexer_NextToken(t *testing.T) {
	input := `body.items[0].name IN [200, "x", true]`

	expected := []Token{
		{Type: TokenWord, Value: "body.items[0].name"},
		{Type: TokenWord, Value: "IN"},
		{Type: TokenLeftBracket, Value: "["},
		{Type: TokenWord, Value: "200"},
		{Type: TokenComma, Value: ","},
		{Type: TokenString, Value: "x"},
		{Type: TokenComma, Value: ","},
		{Type: TokenWord, Value: "true"},
		{Type: TokenRightBracket, Value: "]"},
		{Type: TokenEOF},
	}

	l := NewLexer(input)
	for i, exp := range expected {
		tok := l.NextToken()
		assert.Equal(t, exp.Type, tok.Type, "token %d type", i)
		assert.Equal(t, exp.Value, tok.Value, "token %d value", i)
	}
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		input string
		op    string
	}{
		{"status==200", "=="},
		{"status != 200", "!="},
		{"status>200", ">"},
		{"status >= 200", ">="},
		{"status<200", "<"},
		{"status <= 200", "<="},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewLexer(tt.input)
			assert.Equal(t, Token{Type: TokenWord, Value: "status", Column: 1}, l.NextToken())
			tok := l.NextToken()
			assert.Equal(t, TokenOperator, tok.Type)
			assert.Equal(t, tt.op, tok.Value)
			assert.Equal(t, "200", l.NextToken().Value)
			assert.Equal(t, TokenEOF, l.NextToken().Type)
		})
	}
}

func TestLexer_Strings(t *testing.T) {
	l := NewLexer(`"say \"hi\"" "C:\path"`)

	tok := l.NextToken()
	assert.Equal(t, TokenString, tok.Type)
	assert.Equal(t, `say "hi"`, tok.Value)

	tok = l.NextToken()
	assert.Equal(t, TokenString, tok.Type)
	assert.Equal(t, `C:\path`, tok.Value)
}

func TestLexer_Illegal(t *testing.T) {
	tok := NewLexer(`"open`).NextToken()
	assert.Equal(t, TokenIllegal, tok.Type)
	assert.Equal(t, "unterminated string", tok.Value)

	l := NewLexer("status = 200")
	l.NextToken()
	tok = l.NextToken()
	assert.Equal(t, TokenIllegal, tok.Type)
	assert.Equal(t, "=", tok.Value)
}
