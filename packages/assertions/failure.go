package assertions

import "fmt"

type FailureKind int

const (
	PathNotFound FailureKind = iota
	ValueMismatch
)

func (k FailureKind) String() string {
	switch k {
	case PathNotFound:
		return "path not found"
	case ValueMismatch:
		return "value mismatch"
	default:
		return "unknown"
	}
}

// FailureDetail describes one expectation that did not hold. It is data
// carried in a test result, not an error.
type FailureDetail struct {
	Path     string
	Kind     FailureKind
	Expected string
	Actual   string
	Line     int
}

func (f *FailureDetail) Message() string {
	if f.Kind == PathNotFound {
		return "path not found"
	}
	return fmt.Sprintf("value mismatch: expected %s, got %s", f.Expected, f.Actual)
}

func (f *FailureDetail) String() string {
	return f.Path + ": " + f.Message()
}
