package repricer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/iris-health/medicare-repricer/internal/claim"
)

// BatchResult pairs one input claim's repricing outcome with its claim ID.
// A claim that failed claim-shape validation, or panicked while pricing,
// carries a nil RepricedClaim and a non-nil Err; it never aborts the rest
// of the batch.
type BatchResult struct {
	ClaimID      string
	RepricedClaim *claim.RepricedClaim
	Err          error
}

// RepriceBatch prices many claims concurrently, bounded to GOMAXPROCS. Each
// claim is independent: one claim's validation failure or panic is
// recovered into its own BatchResult and never cancels the others. The
// returned slice is in the same order as claims, regardless of completion
// order. The only error RepriceBatch itself returns is ctx having already
// been canceled before any work started.
func (o *Orchestrator) RepriceBatch(ctx context.Context, claims []*claim.Claim) ([]BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(claims))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, c := range claims {
		i, c := i, c
		results[i].ClaimID = claimID(c)
		g.Go(func() error {
			results[i].RepricedClaim, results[i].Err = priceOneClaim(o, c)
			return nil
		})
	}
	_ = g.Wait() // per-claim errors are carried in results; nothing to propagate

	return results, nil
}

// priceOneClaim wraps RepriceClaim with panic recovery so one malformed
// claim can never take down a concurrent batch.
func priceOneClaim(o *Orchestrator, c *claim.Claim) (priced *claim.RepricedClaim, err error) {
	defer func() {
		if r := recover(); r != nil {
			priced, err = nil, fmt.Errorf("panic while pricing claim %s: %v", claimID(c), r)
		}
	}()
	return o.RepriceClaim(c)
}

func claimID(c *claim.Claim) string {
	if c == nil {
		return "<nil>"
	}
	return c.ClaimID
}
