// Package leaderboard turns raw yap-score records into the ranked weekly
// mindshare leaderboard.
package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/resolverai/burnie-mindshare-sub012/internal/store"
)

const (
	// TopMindShare is the slice size whose composite-score total is the
	// mind_share denominator.
	TopMindShare = 100
	// TopNormalized is the slice size behind normalized_mind_share.
	TopNormalized = 25

	namePrefix = "AggregatedYapScores"
)

// Snapshot is the complete output of one run.
type Snapshot struct {
	Entries     []store.AggregatedYapScore
	WindowStart time.Time
	WindowEnd   time.Time
	GeneratedAt time.Time

	// Denominators used for the two mindshare metrics, kept for the
	// run summary.
	TotalTop100 float64
	TotalTop25  float64
}

// Rank fills in the derived scoring fields, sorts entries descending by
// composite score (stable, so equal scores keep aggregation order), and
// computes both mindshare metrics for every entry. The denominators are the
// composite-score totals of the top 100 and top 25 slices; when a
// denominator is zero the corresponding metric stays zero.
func Rank(entries []store.AggregatedYapScore, windowStart, windowEnd, generatedAt time.Time) *Snapshot {
	for i := range entries {
		entries[i].MultiplierFactor = 1 + entries[i].Engagement7d/100
		entries[i].CompositeScore = entries[i].ContentScore * entries[i].MultiplierFactor
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CompositeScore > entries[j].CompositeScore
	})

	den100 := topSum(entries, TopMindShare)
	den25 := topSum(entries, TopNormalized)

	for i := range entries {
		if den100 > 0 {
			entries[i].MindShare = entries[i].CompositeScore / den100
		}
		if den25 > 0 {
			entries[i].NormalizedMindShare = entries[i].CompositeScore / den25
		}
	}

	return &Snapshot{
		Entries:     entries,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		GeneratedAt: generatedAt,
		TotalTop100: den100,
		TotalTop25:  den25,
	}
}

func topSum(entries []store.AggregatedYapScore, k int) float64 {
	if len(entries) < k {
		k = len(entries)
	}
	var total float64
	for i := 0; i < k; i++ {
		total += entries[i].CompositeScore
	}
	return total
}

// RunName derives the per-run output name from a timestamp, at minute
// granularity. Both output targets (snapshot table and CSV file) share it,
// e.g. AggregatedYapScores_2024_01_12_1430.
func RunName(t time.Time) string {
	return fmt.Sprintf("%s_%d_%02d_%02d_%02d%02d",
		namePrefix, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}
