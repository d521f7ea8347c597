package http

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
)

type Header struct {
	Key   string
	Value string
}

// Request is a wire request. Headers keep declaration order and may repeat;
// the last value for a name is the one sent.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    string
	Timeout time.Duration
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method: method,
		URL:    requestURL,
	}
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Headers = append(r.Headers, Header{Key: key, Value: value})
	return r
}

func (r *Request) SetBody(body string) *Request {
	r.Body = body
	return r
}

func (r *Request) SetTimeout(d time.Duration) *Request {
	r.Timeout = d
	return r
}

// Header returns the effective value of a header, matching names
// case-insensitively.
func (r *Request) Header(key string) string {
	for i := len(r.Headers) - 1; i >= 0; i-- {
		if strings.EqualFold(r.Headers[i].Key, key) {
			return r.Headers[i].Value
		}
	}
	return ""
}

func (r *Request) HasHeader(key string) bool {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			return true
		}
	}
	return false
}

// BuildRequestFromAST converts a parsed request into a wire request. A body
// that is valid JSON gets a Content-Type of application/json unless the test
// declares one.
func BuildRequestFromAST(req *parser.Request) *Request {
	r := NewRequest(req.Method, req.URL)

	for _, h := range req.Headers {
		r.SetHeader(h.Key, h.Value)
	}

	if req.Body != nil {
		r.SetBody(req.Body.Raw)
		if !r.HasHeader("Content-Type") && gjson.Valid(req.Body.Raw) {
			r.SetHeader("Content-Type", "application/json")
		}
	}

	return r
}
