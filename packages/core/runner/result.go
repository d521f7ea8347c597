package runner

import (
	"time"

	"github.com/abdul-hamid-achik/axotly/packages/assertions"
	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
	"github.com/abdul-hamid-achik/axotly/packages/http"
)

type Outcome int

const (
	OutcomePassed Outcome = iota
	OutcomeFailed
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// TestResult is created once when a test finishes and never updated.
type TestResult struct {
	Test     *parser.Test
	Outcome  Outcome
	Failures []*assertions.FailureDetail
	Err      *http.RequestError
	Duration time.Duration
	Request  *http.Request
	Response *http.Response
}

func (r *TestResult) Passed() bool {
	return r.Outcome == OutcomePassed
}

// RunSummary holds one result per test in discovery order, independent of
// the order in which tests completed.
type RunSummary struct {
	ID          string
	Results     []*TestResult
	Passed      int
	Failed      int
	Errored     int
	Duration    time.Duration
	ParseErrors []*parser.ParseError
	Latency     Latency
}

func (s *RunSummary) Total() int {
	return len(s.Results)
}

func (s *RunSummary) Success() bool {
	return s.Failed == 0 && s.Errored == 0 && len(s.ParseErrors) == 0
}

type FileResults struct {
	Path    string
	Results []*TestResult
}

// Files groups results by source file, keeping discovery order.
func (s *RunSummary) Files() []*FileResults {
	var files []*FileResults
	index := make(map[string]*FileResults)
	for _, r := range s.Results {
		group, ok := index[r.Test.File]
		if !ok {
			group = &FileResults{Path: r.Test.File}
			index[r.Test.File] = group
			files = append(files, group)
		}
		group.Results = append(group.Results, r)
	}
	return files
}

func newSummary(id string, results []*TestResult, duration time.Duration, latency Latency) *RunSummary {
	s := &RunSummary{
		ID:       id,
		Results:  results,
		Duration: duration,
		Latency:  latency,
	}
	for _, r := range results {
		switch r.Outcome {
		case OutcomePassed:
			s.Passed++
		case OutcomeFailed:
			s.Failed++
		case OutcomeErrored:
			s.Errored++
		}
	}
	return s
}
