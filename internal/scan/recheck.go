package scan

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
)

// RecheckBrokenLinks re-checks non-dismissed broken and warning links whose
// last check is older than the recheck age, oldest first. It never runs
// while a scan is active and does not touch scan rows. It returns how many
// links were refreshed.
func (o *Orchestrator) RecheckBrokenLinks(ctx context.Context) (int, error) {
	running, err := o.scans.IsScanRunning(ctx)
	if err != nil {
		return 0, fmt.Errorf("check running scan: %w", err)
	}
	if running {
		o.logger.Info("Recheck skipped; a scan is running")
		return 0, nil
	}

	links, err := o.links.GetLinksForRecheck(ctx, o.now().Add(-o.recheckMinAge), o.recheckLimit)
	if err != nil {
		return 0, fmt.Errorf("get links for recheck: %w", err)
	}
	if len(links) == 0 {
		return 0, nil
	}

	refreshed := 0
	for i, link := range links {
		if i > 0 && o.recheckDelay > 0 {
			if err = pause(ctx, o.recheckDelay); err != nil {
				break
			}
		}

		result := o.checker.Check(ctx, link.URL)
		if err = o.links.UpdateLinkResult(ctx, link.ID, result, o.now()); err != nil {
			o.logger.Warn("Failed to save recheck result",
				infralogger.Int64("link_id", link.ID),
				infralogger.Error(err),
			)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		o.cache.ClearStats(ctx)
	}

	o.logger.Info("Recheck finished",
		infralogger.Int("selected", len(links)),
		infralogger.Int("refreshed", refreshed),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return refreshed, ctxErr
	}
	return refreshed, nil
}

// pause blocks for delay measured from now, so the gap between the end of
// one check and the start of the next is at least delay however long the
// check took. The one-token bucket is emptied first so Wait has to refill it.
func pause(ctx context.Context, delay time.Duration) error {
	bucket := rate.NewLimiter(rate.Every(delay), 1)
	bucket.Allow()
	return bucket.Wait(ctx)
}
