package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
)

func TestBuildRequestFromAST(t *testing.T) {
	req := BuildRequestFromAST(&parser.Request{
		Method: "POST",
		URL:    "https://api.example.com/users",
		Headers: []*parser.Header{
			{Key: "Authorization", Value: "Bearer a"},
			{Key: "Authorization", Value: "Bearer b"},
		},
		Body: &parser.Body{Raw: `{"name": "Juan"}`},
	})

	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://api.example.com/users", req.URL)
	assert.Equal(t, `{"name": "Juan"}`, req.Body)
	assert.Equal(t, "Bearer b", req.Header("authorization"))
	assert.Equal(t, "application/json", req.Header("Content-Type"))
}

func TestBuildRequestFromAST_ContentType(t *testing.T) {
	tests := []struct {
		name     string
		headers  []*parser.Header
		body     *parser.Body
		expected string
	}{
		{"no body", nil, nil, ""},
		{"json body", nil, &parser.Body{Raw: `[1, 2]`}, "application/json"},
		{"text body", nil, &parser.Body{Raw: `name=Juan`}, ""},
		{
			"declared content type wins",
			[]*parser.Header{{Key: "content-type", Value: "text/plain"}},
			&parser.Body{Raw: `{"a": 1}`},
			"text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildRequestFromAST(&parser.Request{
				Method:  "POST",
				URL:     "https://x",
				Headers: tt.headers,
				Body:    tt.body,
			})
			assert.Equal(t, tt.expected, req.Header("Content-Type"))
		})
	}
}

func TestCurlCommand(t *testing.T) {
	req := NewRequest("POST", "https://api.example.com/users?a=1&b=2").
		SetHeader("Content-Type", "application/json").
		SetBody(`{"name": "O'Brien"}`)

	assert.Equal(t,
		`curl -i -X POST -H 'Content-Type: application/json' --data-raw '{"name": "O'"'"'Brien"}' 'https://api.example.com/users?a=1&b=2'`,
		CurlCommand(req),
	)

	assert.Equal(t, "curl -i -X GET https://x/1", CurlCommand(NewRequest("GET", "https://x/1")))
}
