// Package job orchestrates one leaderboard run end to end.
package job

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/resolverai/burnie-mindshare-sub012/internal/config"
	"github.com/resolverai/burnie-mindshare-sub012/internal/export"
	"github.com/resolverai/burnie-mindshare-sub012/internal/leaderboard"
	"github.com/resolverai/burnie-mindshare-sub012/internal/notifier"
	"github.com/resolverai/burnie-mindshare-sub012/internal/report"
	"github.com/resolverai/burnie-mindshare-sub012/internal/store"
	"github.com/resolverai/burnie-mindshare-sub012/internal/window"
)

// Run executes one full leaderboard run: it opens the backing store,
// aggregates the current window, persists both outputs, and closes the
// store on every exit path.
func Run(ctx context.Context, cfg *config.Config) error {
	st, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer st.Close()

	return RunWithStore(ctx, cfg, st, time.Now())
}

// RunWithStore is Run against an already-open store, with the run timestamp
// injected so the window and output names are pinned in tests.
func RunWithStore(ctx context.Context, cfg *config.Config, st *store.Store, now time.Time) error {
	// Step 1: Resolve the aggregation window
	windowStart, windowEnd := window.Resolve(now)
	log.Printf("Aggregating window %s -> %s",
		windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))

	// Step 2: Fetch raw records
	records, err := st.YapScoresInWindow(windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("query yap scores: %w", err)
	}
	log.Printf("Fetched %d raw records", len(records))

	// Step 3 & 4: Aggregate per author, then score and rank. An empty
	// window still produces (empty) outputs.
	entries := leaderboard.Aggregate(records)
	snap := leaderboard.Rank(entries, windowStart, windowEnd, now)
	log.Printf("Ranked %d authors", len(snap.Entries))

	name := leaderboard.RunName(now)

	// Step 5: Persist the snapshot table. No rollback links this write to
	// the CSV below; a CSV failure leaves the table in place by design.
	if err := st.WriteSnapshot(name, snap.Entries, windowStart, windowEnd, now); err != nil {
		return fmt.Errorf("write snapshot table %s: %w", name, err)
	}
	log.Printf("Wrote snapshot table: %s", name)

	// Step 6: Write the CSV export
	path, err := export.WriteCSV(cfg.Leaderboard.ExportDir, name, snap)
	if err != nil {
		return fmt.Errorf("write csv export %s: %w", name, err)
	}
	log.Printf("Wrote CSV export: %s", path)

	// Step 7: Log the run summary
	logSummary(snap, cfg.Leaderboard.SummarySize)

	// Step 8: Optional summary email. The snapshot is already durable, so
	// a delivery failure is logged but does not fail the run.
	if cfg.Email.Enabled() {
		if err := sendSummary(cfg, snap); err != nil {
			log.Printf("Failed to send summary email: %v", err)
		} else {
			log.Printf("Sent summary email to %s", cfg.Email.ToAddr)
		}
	}

	return nil
}

func logSummary(snap *leaderboard.Snapshot, size int) {
	log.Printf("Run summary: %d entries, top-100 total %.2f, top-25 total %.2f",
		len(snap.Entries), snap.TotalTop100, snap.TotalTop25)

	n := size
	if len(snap.Entries) < n {
		n = len(snap.Entries)
	}
	for i := 0; i < n; i++ {
		e := &snap.Entries[i]
		log.Printf("  #%d @%s score=%.2f mindshare=%.4f%% normalized=%.4f%%",
			i+1, e.Username, e.CompositeScore, e.MindShare*100, e.NormalizedMindShare*100)
	}
}

func sendSummary(cfg *config.Config, snap *leaderboard.Snapshot) error {
	builder, err := report.New(cfg.Leaderboard.SummarySize)
	if err != nil {
		return err
	}
	r, err := builder.Build(snap)
	if err != nil {
		return err
	}
	n, err := notifier.NewFromConfig(cfg.Email)
	if err != nil {
		return err
	}
	return n.SendReport(r, cfg.Email.ToAddr)
}
