package runner

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/axotly/packages/assertions"
	"github.com/abdul-hamid-achik/axotly/packages/core/parser"
	"github.com/abdul-hamid-achik/axotly/packages/http"
	"github.com/abdul-hamid-achik/axotly/packages/logging"
)

const (
	// DefaultTimeout is the per-request timeout when none is configured
	DefaultTimeout = 30 * time.Second
	// MinConcurrency keeps execution concurrent on single-CPU machines
	MinConcurrency = 2
)

// DefaultConcurrency is the worker count used when Config.Concurrency is
// not set.
func DefaultConcurrency() int {
	return max(MinConcurrency, runtime.NumCPU())
}

// Transport performs one request. It is shared by all workers and must be
// safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, req *http.Request) (*http.Response, error)
}

type Config struct {
	Concurrency int
	Timeout     time.Duration
	// RateLimit caps dispatches per second. Zero means unlimited.
	RateLimit float64
	Transport Transport
	Logger    logging.Logger
}

type Runner struct {
	transport Transport
	config    *Config
	logger    logging.Logger
}

func NewRunner(cfg *Config) *Runner {
	c := Config{}
	if cfg != nil {
		c = *cfg
	}
	cfg = &c
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.NewClient(http.WithTimeout(cfg.Timeout))
	}

	return &Runner{
		transport: transport,
		config:    cfg,
		logger:    logging.OrDiscard(cfg.Logger),
	}
}

// RunSuite runs every test of the suite and attaches its parse errors to the
// summary.
func (r *Runner) RunSuite(ctx context.Context, suite *Suite) *RunSummary {
	summary := r.Run(ctx, suite.Tests)
	summary.ParseErrors = suite.ParseErrors
	return summary
}

// Run executes tests on a fixed pool of workers. Each worker pulls the next
// test index and writes its result into that index's slot, so the summary
// keeps the order of tests no matter how completions interleave. Once ctx is
// cancelled nothing new is dispatched and every test without a result is
// reported as errored with a cancelled error.
func (r *Runner) Run(ctx context.Context, tests []*parser.Test) *RunSummary {
	start := time.Now()
	id := uuid.NewString()
	results := make([]*TestResult, len(tests))
	latency := newLatencyRecorder()

	var limiter *rate.Limiter
	if r.config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.config.RateLimit), 1)
	}

	workers := min(r.config.Concurrency, len(tests))
	r.logger.Debugf("run %s: %d tests on %d workers", id, len(tests), workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.runTest(ctx, tests[idx], latency)
			}
		}()
	}

dispatch:
	for i := range tests {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
		}
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	for i, res := range results {
		if res == nil {
			results[i] = &TestResult{
				Test:    tests[i],
				Outcome: OutcomeErrored,
				Err:     http.NewCancelledError(),
			}
		}
	}

	summary := newSummary(id, results, time.Since(start), latency.Snapshot())
	r.logger.Debugf("run %s: %d passed, %d failed, %d errored in %s",
		id, summary.Passed, summary.Failed, summary.Errored, summary.Duration)
	return summary
}

func (r *Runner) runTest(ctx context.Context, test *parser.Test, latency *latencyRecorder) *TestResult {
	result := &TestResult{Test: test}

	req := http.BuildRequestFromAST(test.Request).SetTimeout(r.config.Timeout)
	result.Request = req

	r.logger.Debugf("%s %s (%s)", req.Method, req.URL, test.DisplayName())

	start := time.Now()
	resp, err := r.transport.Send(ctx, req)
	result.Duration = time.Since(start)

	if err != nil {
		result.Outcome = OutcomeErrored
		result.Err = asRequestError(err)
		r.logger.Debugf("%s: %v", test.DisplayName(), result.Err)
		return result
	}
	result.Response = resp
	latency.Record(result.Duration)

	evaluator := assertions.NewEvaluator(resp)
	result.Failures = evaluator.EvaluateAll(test.Expectations)
	if len(result.Failures) > 0 {
		result.Outcome = OutcomeFailed
	} else {
		result.Outcome = OutcomePassed
	}

	r.logger.Debugf("%s: %s in %s", test.DisplayName(), result.Outcome, result.Duration)
	return result
}

func asRequestError(err error) *http.RequestError {
	var reqErr *http.RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	if errors.Is(err, context.Canceled) {
		return http.NewCancelledError()
	}
	return &http.RequestError{Kind: http.ErrorOther, Message: err.Error(), Err: err}
}
