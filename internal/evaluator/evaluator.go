// Package evaluator defines the code-evaluation collaborator. The contest
// core never runs untrusted code itself; it hands a submission to an
// Evaluator and consumes the verdict.
package evaluator

import (
	"context"
	"errors"
	"time"

	"github.com/charansai0108/Skill-port-sub002/internal/domain"
)

// Result is the outcome of evaluating one submission against a problem's
// test cases.
type Result struct {
	Verdict         domain.Verdict `json:"verdict"`
	TestCasesPassed int            `json:"test_cases_passed"`
	TotalTestCases  int            `json:"total_test_cases"`
	ExecutionTimeMs int64          `json:"execution_time_ms"`
	MemoryKb        int64          `json:"memory_kb"`
}

// Evaluator runs code against a problem's hidden test cases.
type Evaluator interface {
	Evaluate(ctx context.Context, code, language string, problem domain.ContestProblem) (*Result, error)
}

// timeoutEvaluator bounds every evaluation with a deadline. A judge that
// overruns the deadline is reported as time_limit_exceeded rather than an
// error, so a hung evaluation never fails the submission request.
type timeoutEvaluator struct {
	inner   Evaluator
	timeout time.Duration
}

// WithTimeout wraps an evaluator with a per-call deadline.
func WithTimeout(inner Evaluator, timeout time.Duration) Evaluator {
	return &timeoutEvaluator{inner: inner, timeout: timeout}
}

func (e *timeoutEvaluator) Evaluate(ctx context.Context, code, language string, problem domain.ContestProblem) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := e.inner.Evaluate(ctx, code, language, problem)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Result{
				Verdict:         domain.VerdictTimeLimitExceeded,
				TestCasesPassed: 0,
				TotalTestCases:  len(problem.TestCases),
				ExecutionTimeMs: e.timeout.Milliseconds(),
			}, nil
		}
		return nil, err
	}
	return result, nil
}
