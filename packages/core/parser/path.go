package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array position.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is a parsed expectation target such as body.items.0.name or
// body.items[0].name. Both spellings produce the same segments.
type Path struct {
	Raw      string
	Segments []Segment
}

func (p Path) String() string {
	return p.Raw
}

// Root returns the first segment's key, which selects the envelope member.
func (p Path) Root() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0].String()
}

func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return Path{}, fmt.Errorf("empty path")
	}

	path := Path{Raw: raw}
	for _, part := range strings.Split(raw, ".") {
		segs, err := parsePathPart(part)
		if err != nil {
			return Path{}, fmt.Errorf("%q: %w", raw, err)
		}
		path.Segments = append(path.Segments, segs...)
	}
	return path, nil
}

func parsePathPart(part string) ([]Segment, error) {
	name := part
	rest := ""
	if i := strings.IndexByte(part, '['); i >= 0 {
		name = part[:i]
		rest = part[i:]
	}
	if name == "" {
		return nil, fmt.Errorf("empty segment")
	}
	if strings.ContainsRune(name, ']') {
		return nil, fmt.Errorf("unexpected ']' in segment %q", name)
	}

	segs := []Segment{newSegment(name)}
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return nil, fmt.Errorf("unclosed index in segment %q", part)
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil || idx < 0 || !isDigits(rest[1:end]) {
			return nil, fmt.Errorf("invalid index %q", rest[1:end])
		}
		segs = append(segs, Segment{Key: rest[1:end], Index: idx, IsIndex: true})
		rest = rest[end+1:]
	}
	return segs, nil
}

func newSegment(name string) Segment {
	if isDigits(name) {
		if idx, err := strconv.Atoi(name); err == nil {
			return Segment{Key: name, Index: idx, IsIndex: true}
		}
	}
	return Segment{Key: name}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
