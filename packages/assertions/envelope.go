package assertions

import (
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
	"github.com/abdul-hamid-achik/axotly/packages/http"
	"github.com/abdul-hamid-achik/axotly/packages/value"
)

// Envelope is the root that expectation paths are resolved against:
//
//	{"status": 200, "headers": {"content-type": "..."}, "body": <json or text>}
//
// It is built once per response and only read afterwards.
type Envelope struct {
	root value.Value
}

func NewEnvelope(resp *http.Response) *Envelope {
	return NewEnvelopeFromParts(resp.StatusCode, resp.Headers, resp.Body)
}

// NewEnvelopeFromParts builds an envelope from raw response parts. A body
// that does not parse as JSON is exposed as a string.
func NewEnvelopeFromParts(status int, headers map[string]string, body []byte) *Envelope {
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	sort.Strings(names)

	fields := make([]value.Field, 0, len(names))
	for _, k := range names {
		fields = append(fields, value.Field{Key: strings.ToLower(k), Value: value.String(headers[k])})
	}

	parsed, err := value.Parse(body)
	if err != nil {
		parsed = value.String(string(body))
	}

	return &Envelope{
		root: value.Object(
			value.Field{Key: "status", Value: value.Int(status)},
			value.Field{Key: "headers", Value: value.Object(fields...)},
			value.Field{Key: "body", Value: parsed},
		),
	}
}

func (e *Envelope) Root() value.Value {
	return e.root
}

// Resolve walks path from the envelope root. It reports false at the first
// segment that does not exist: an absent key, an index out of range or any
// step into a scalar.
func (e *Envelope) Resolve(path parser.Path) (value.Value, bool) {
	current := e.root
	for i, seg := range path.Segments {
		if i == 1 && path.Segments[0].Key == "headers" && !seg.IsIndex {
			seg.Key = strings.ToLower(seg.Key)
		}
		next, ok := step(current, seg)
		if !ok {
			return value.Null(), false
		}
		current = next
	}
	return current, true
}

func step(v value.Value, seg parser.Segment) (value.Value, bool) {
	switch v.Kind() {
	case value.KindObject:
		return v.Field(seg.Key)
	case value.KindArray:
		if !seg.IsIndex {
			return value.Null(), false
		}
		return v.Index(seg.Index)
	default:
		return value.Null(), false
	}
}
