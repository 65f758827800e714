// Package watch runs a long-lived refresh loop: on each cron tick it
// re-fetches and re-renders one list view. It exists because collections
// are snapshots that go stale the moment someone else mutates them; the
// only synchronization model is periodic full re-fetch.
package watch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adhocore/gronx"

	"forumcli/pkg/logger"
	"forumcli/pkg/telemetry"
)

// View is the controller slice the runner needs.
type View interface {
	Refresh(ctx context.Context)
	Render(w io.Writer)
}

// Run refreshes v on every tick of cronExpr until ctx is cancelled. When
// metricsAddr is non-empty, client request metrics are served on
// /metrics for the lifetime of the loop.
func Run(ctx context.Context, v View, cronExpr string, metricsAddr string, out io.Writer) error {
	if !gronx.IsValid(cronExpr) {
		return fmt.Errorf("invalid cron expression: %s", cronExpr)
	}

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", telemetry.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			logger.Info("metrics_listening", "addr", metricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics_server_failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	// render once immediately, then follow the schedule
	v.Refresh(ctx)
	v.Render(out)

	for {
		now := time.Now()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("watch_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		select {
		case <-time.After(wait):
			v.Refresh(ctx)
			fmt.Fprintf(out, "--- %s ---\n", time.Now().Format(time.RFC3339))
			v.Render(out)
		case <-ctx.Done():
			logger.Info("watch_stopping")
			return ctx.Err()
		}
	}
}
