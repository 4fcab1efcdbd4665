// Package export writes leaderboard snapshots as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/resolverai/burnie-mindshare-sub012/internal/leaderboard"
)

// tweetIDSep joins tweet IDs inside the single tweet_ids column. It is
// distinct from the CSV field separator so joined IDs never split columns.
const tweetIDSep = "|"

var header = []string{
	"rank", "author_id", "username", "content_score", "multiplier_factor",
	"composite_score", "mind_share_pct", "normalized_mind_share_pct",
	"engagement_all", "engagement_24h", "engagement_48h", "engagement_7d",
	"engagement_30d", "engagement_3m", "engagement_6m", "engagement_12m",
	"tweet_count", "tweet_ids", "created_at", "generated_at",
	"window_start", "window_end",
}

// WriteCSV writes the snapshot to <dir>/<name>.csv, creating dir if needed.
// An existing file under the same name is truncated. Mindshare columns are
// percentages at 4 decimal places; other floats use 2. An empty snapshot
// produces a header-only file. Returns the written path.
func WriteCSV(dir, name string, snap *leaderboard.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range snap.Entries {
		e := &snap.Entries[i]
		row := []string{
			strconv.Itoa(i + 1),
			e.AuthorID,
			e.Username,
			num(e.ContentScore),
			num(e.MultiplierFactor),
			num(e.CompositeScore),
			pct(e.MindShare),
			pct(e.NormalizedMindShare),
			num(e.EngagementAll),
			num(e.Engagement24h),
			num(e.Engagement48h),
			num(e.Engagement7d),
			num(e.Engagement30d),
			num(e.Engagement3m),
			num(e.Engagement6m),
			num(e.Engagement12m),
			strconv.Itoa(len(e.TweetIDs)),
			strings.Join(e.TweetIDs, tweetIDSep),
			stamp(e.CreatedAt),
			stamp(snap.GeneratedAt),
			stamp(snap.WindowStart),
			stamp(snap.WindowEnd),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// pct renders a [0,1] share as a percentage.
func pct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 4, 64)
}

func stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Latest returns the path of the most recent CSV export in dir. Run names
// embed the timestamp, so lexicographic order is chronological.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no exports in %s", dir)
		}
		return "", err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".csv" {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no exports in %s", dir)
	}

	return filepath.Join(dir, files[len(files)-1]), nil
}
