// Package invoker implements the Agent Invoker described in
// SPEC_FULL.md §4.5: a single in-flight call to the active agent at a
// time, with per-attempt timeout, exponential backoff retry on transient
// failures, and a spinner lifecycle that starts and stops on every exit
// path.
package invoker

import (
	"context"
	"fmt"
	"time"

	"github.com/strandschat/chatloop/internal/agent"
)

// SpinnerController is the minimal lifecycle an invocation drives; the ui
// package's Spinner satisfies it. Keeping the dependency as an interface
// here lets this package stay free of any terminal/rendering import.
type SpinnerController interface {
	Start()
	Stop()
}

// Result is the outcome of a single Invoke call: either a Response, or an
// error that has already exhausted all retries.
type Result struct {
	Response agent.Response
	Attempts int
	Category ErrorCategory
	Err      error
}

// Options configures a single invocation's retry behavior, normally read
// straight out of the effective config's behavior.* keys (§4.1, §4.5).
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// sleepFunc is overridable in tests so retry-delay assertions do not
// actually wait out exponential backoff.
var sleepFunc = time.Sleep

// Invoke drives a up to opts.MaxRetries+1 attempts, backing off
// exponentially between retryable failures. spinner, if non-nil, is
// started before the first attempt and stopped on every return path
// (success, exhausted retries, or a non-retryable error) exactly once.
func Invoke(ctx context.Context, a agent.Invocable, prompt string, opts Options, spinner SpinnerController) Result {
	if spinner != nil {
		spinner.Start()
		defer spinner.Stop()
	}

	var lastErr error
	var lastCategory ErrorCategory
	attempts := 0

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		attempts = attempt + 1
		attemptCtx := ctx
		var cancel context.CancelFunc
		if opts.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		}

		resp, err := invokeOnce(attemptCtx, a, prompt)
		if cancel != nil {
			cancel()
		}

		if err == nil {
			return Result{Response: resp, Attempts: attempt + 1}
		}

		category := Classify(ctx, err)
		lastErr = err
		lastCategory = category

		if !category.Retryable() || attempt == opts.MaxRetries {
			break
		}

		base := opts.RetryDelay
		if category == CategoryRateLimited {
			base *= 2
		}
		delay := base * time.Duration(1<<uint(attempt))
		select {
		case <-ctx.Done():
			return Result{Attempts: attempt + 1, Category: CategoryCancelled, Err: ctx.Err()}
		default:
			sleepFunc(delay)
		}
	}

	return Result{Attempts: attempts, Category: lastCategory, Err: lastErr}
}

// invokeOnce makes exactly one call to a, awaiting an agent.Future
// result if that is what Invoke returns rather than a resolved Response.
func invokeOnce(ctx context.Context, a agent.Invocable, prompt string) (agent.Response, error) {
	resp, err := a.Invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if f, ok := resp.(agent.Future); ok {
		return f.Await(ctx)
	}
	return resp, nil
}

// DescribeFailure renders a short, user-facing explanation of a failed
// Result, used by the chat loop to report an exhausted invocation (§4.5).
func DescribeFailure(r Result) string {
	if r.Err == nil {
		return ""
	}
	switch r.Category {
	case CategoryConfiguration:
		return fmt.Sprintf("configuration error: %v", r.Err)
	case CategoryCancelled:
		return "cancelled"
	case CategoryRateLimited, CategoryTransientNetwork, CategoryTimeout:
		return fmt.Sprintf("failed after %d attempts: %v", r.Attempts, r.Err)
	default:
		return fmt.Sprintf("error: %v", r.Err)
	}
}
