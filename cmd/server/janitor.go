package main

import (
	"context"
	"time"
)

const (
	// tokenPurgeInterval is how often expired revocation entries are swept.
	tokenPurgeInterval = 1 * time.Hour

	// tokenPurgeSlack pads the purge cutoff past the refresh grace window so
	// an entry never disappears while its token could still be exchanged.
	tokenPurgeSlack = 1 * time.Hour
)

// runTokenJanitor periodically deletes revocation entries for tokens that
// can no longer validate or refresh. Runs until the context is canceled.
func (app *application) runTokenJanitor(ctx context.Context) {
	grace := time.Duration(app.config.Auth.RefreshGraceMinutes)*time.Minute + tokenPurgeSlack

	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-grace)
			if _, err := app.tokenStore.PurgeExpired(ctx, cutoff); err != nil {
				app.logger.Warn("token purge failed", "error", err)
			}
		}
	}
}
