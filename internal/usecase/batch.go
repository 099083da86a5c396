package usecase

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/faceit-stats/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const DefaultBatchGroupSize = 5

// expandInGroups calls expand for every item. Items are split into groups of
// groupSize; a group's calls run concurrently and all settle before the next
// group starts. Failed items are logged and dropped. The result keeps input
// order. A cancelled ctx stops scheduling and returns the context error.
//
// The bound applies to expand calls, not upstream requests: one match
// expansion fetches the match and its stats, so a group of 5 may have up to
// 10 requests in flight.
func expandInGroups[In, Out any](
	ctx context.Context,
	logger *logging.Logger,
	items []In,
	groupSize int,
	expand func(ctx context.Context, item In) (Out, error),
) ([]Out, error) {
	if groupSize < 1 {
		groupSize = DefaultBatchGroupSize
	}

	out := make([]Out, 0, len(items))
	for start := 0; start < len(items); start += groupSize {
		if err := ctx.Err(); err != nil {
			return out, crerr.Wrap(err, "batch expansion aborted")
		}

		group := items[start:min(start+groupSize, len(items))]
		results := make([]Out, len(group))
		settled := make([]bool, len(group))

		var wg conc.WaitGroup
		for idx, item := range group {
			wg.Go(func() {
				value, err := expand(ctx, item)
				if err != nil {
					logger.WarnContext(ctx, "batch item dropped", "group_start", start, "error", err)
					return
				}
				results[idx] = value
				settled[idx] = true
			})
		}
		wg.Wait()

		for idx := range group {
			if settled[idx] {
				out = append(out, results[idx])
			}
		}
	}
	return out, nil
}
