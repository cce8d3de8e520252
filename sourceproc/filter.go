package sourceproc

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCheckFailed means the reachability check did not produce a result and
// nothing was written.
var ErrCheckFailed = errors.New("connectivity check failed")

// ReachabilityChecker reports for each URI whether its stream is reachable.
// Implementations either return a result for every URI or an error.
type ReachabilityChecker interface {
	Check(ctx context.Context, uris []string) (map[string]bool, error)
}

// ReachabilityCheckerFunc adapts a function to ReachabilityChecker.
type ReachabilityCheckerFunc func(ctx context.Context, uris []string) (map[string]bool, error)

func (f ReachabilityCheckerFunc) Check(ctx context.Context, uris []string) (map[string]bool, error) {
	return f(ctx, uris)
}

// filterReachable submits every URI of b in one call and drops the records
// whose stream is not reachable.
func filterReachable(ctx context.Context, checker ReachabilityChecker, timeout time.Duration, b *Buckets) (*Buckets, error) {
	if checker == nil {
		return nil, fmt.Errorf("%w: no checker configured", ErrCheckFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := checker.Check(ctx, b.URIs())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	if results == nil {
		results = map[string]bool{}
	}

	return b.Filter(results), nil
}
