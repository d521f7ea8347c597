package http

import (
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// HeaderNames returns the response header names sorted for stable output.
func (r *Response) HeaderNames() []string {
	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

// IsJSON reports whether the body should be treated as JSON, either by its
// declared content type or by its content.
func (r *Response) IsJSON() bool {
	if strings.Contains(r.ContentType(), "json") {
		return true
	}
	return gjson.ValidBytes(r.Body)
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
