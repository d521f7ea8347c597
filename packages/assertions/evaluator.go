package assertions

import (
	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
	"github.com/abdul-hamid-achik/axotly/packages/http"
	"github.com/abdul-hamid-achik/axotly/packages/value"
)

type Result struct {
	Passed  bool
	Actual  value.Value
	Failure *FailureDetail
}

type Evaluator struct {
	envelope *Envelope
}

func NewEvaluator(resp *http.Response) *Evaluator {
	return NewEnvelopeEvaluator(NewEnvelope(resp))
}

func NewEnvelopeEvaluator(env *Envelope) *Evaluator {
	return &Evaluator{envelope: env}
}

func (e *Evaluator) Evaluate(exp *parser.Expectation) *Result {
	actual, ok := e.envelope.Resolve(exp.Path)
	if !ok {
		return &Result{
			Failure: &FailureDetail{
				Path:     exp.Path.Raw,
				Kind:     PathNotFound,
				Expected: exp.ExpectedString(),
				Line:     exp.Line,
			},
		}
	}

	if compare(actual, exp) {
		return &Result{Passed: true, Actual: actual}
	}

	return &Result{
		Actual: actual,
		Failure: &FailureDetail{
			Path:     exp.Path.Raw,
			Kind:     ValueMismatch,
			Expected: exp.ExpectedString(),
			Actual:   actual.String(),
			Line:     exp.Line,
		},
	}
}

// EvaluateAll evaluates every expectation in declaration order and returns
// one FailureDetail per expectation that did not hold.
func (e *Evaluator) EvaluateAll(exps []*parser.Expectation) []*FailureDetail {
	var failures []*FailureDetail
	for _, exp := range exps {
		if r := e.Evaluate(exp); !r.Passed {
			failures = append(failures, r.Failure)
		}
	}
	return failures
}

func compare(actual value.Value, exp *parser.Expectation) bool {
	switch exp.Operator {
	case parser.OpEquals:
		return actual.Equal(exp.Expected)
	case parser.OpNotEquals:
		return !actual.Equal(exp.Expected)
	case parser.OpGreaterThan, parser.OpGreaterOrEqual, parser.OpLessThan, parser.OpLessOrEqual:
		return compareNumeric(actual, exp.Expected, exp.Operator)
	case parser.OpIn:
		for _, c := range exp.Candidates {
			if actual.Equal(c) {
				return true
			}
		}
		return false
	case parser.OpBetween:
		return compareNumeric(actual, exp.Low, parser.OpGreaterOrEqual) &&
			compareNumeric(actual, exp.High, parser.OpLessOrEqual)
	case parser.OpExists:
		return true
	case parser.OpTruthy:
		b, ok := actual.AsBool()
		return ok && b
	default:
		return false
	}
}

func compareNumeric(actual, expected value.Value, op parser.Operator) bool {
	a, aOk := actual.AsNumber()
	b, bOk := expected.AsNumber()
	if !aOk || !bOk {
		return false
	}

	switch op {
	case parser.OpGreaterThan:
		return a > b
	case parser.OpGreaterOrEqual:
		return a >= b
	case parser.OpLessThan:
		return a < b
	case parser.OpLessOrEqual:
		return a <= b
	}
	return false
}
