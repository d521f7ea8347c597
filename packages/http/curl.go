package http

import (
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CurlCommand renders a shell command that reproduces the request.
func CurlCommand(req *Request) string {
	var b commandBuilder
	b.add("curl", "-i", "-X", req.Method)
	for _, h := range req.Headers {
		b.add("-H", h.Key+": "+h.Value)
	}
	if req.Body != "" {
		b.add("--data-raw", req.Body)
	}
	b.add(req.URL)
	return b.String()
}
