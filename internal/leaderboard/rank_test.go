package leaderboard

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/resolverai/burnie-mindshare-sub012/internal/store"
)

const tolerance = 1e-9

func entry(author string, content, e7d float64) store.AggregatedYapScore {
	return store.AggregatedYapScore{
		AuthorID:     author,
		Username:     author,
		ContentScore: content,
		Engagement7d: e7d,
	}
}

func rankAt(entries []store.AggregatedYapScore) *Snapshot {
	now := time.Date(2024, time.January, 12, 14, 30, 0, 0, time.Local)
	return Rank(entries, now.AddDate(0, 0, -4), now, now)
}

func TestRankDerivedFields(t *testing.T) {
	snap := rankAt([]store.AggregatedYapScore{entry("a", 50, 40)})
	e := snap.Entries[0]

	if math.Abs(e.MultiplierFactor-1.4) > tolerance {
		t.Errorf("multiplier = %v, want 1.4", e.MultiplierFactor)
	}
	if math.Abs(e.CompositeScore-70) > tolerance {
		t.Errorf("composite = %v, want 70", e.CompositeScore)
	}
}

func TestRankMindShareExample(t *testing.T) {
	snap := rankAt([]store.AggregatedYapScore{
		entry("low", 100, 0),
		entry("high", 300, 0),
		entry("mid", 200, 0),
	})

	if snap.TotalTop100 != 600 || snap.TotalTop25 != 600 {
		t.Fatalf("denominators = %v/%v, want 600/600", snap.TotalTop100, snap.TotalTop25)
	}

	wantShares := []float64{0.5, 1.0 / 3.0, 1.0 / 6.0}
	wantOrder := []string{"high", "mid", "low"}
	for i, e := range snap.Entries {
		if e.AuthorID != wantOrder[i] {
			t.Errorf("rank %d = %s, want %s", i+1, e.AuthorID, wantOrder[i])
		}
		if math.Abs(e.MindShare-wantShares[i]) > tolerance {
			t.Errorf("rank %d mindshare = %v, want %v", i+1, e.MindShare, wantShares[i])
		}
		if math.Abs(e.NormalizedMindShare-wantShares[i]) > tolerance {
			t.Errorf("rank %d normalized = %v, want %v", i+1, e.NormalizedMindShare, wantShares[i])
		}
	}
}

// With more authors than either top-K slice, every entry still gets both
// metrics, and each metric sums to 1 over exactly its own slice.
func TestRankTopSlicesSumToOne(t *testing.T) {
	var entries []store.AggregatedYapScore
	for i := 0; i < 120; i++ {
		entries = append(entries, entry(fmt.Sprintf("a%03d", i), float64(120-i), 0))
	}

	snap := rankAt(entries)

	var sum100, sum25 float64
	for i, e := range snap.Entries {
		if i < TopMindShare {
			sum100 += e.MindShare
		}
		if i < TopNormalized {
			sum25 += e.NormalizedMindShare
		}
	}
	if math.Abs(sum100-1) > 1e-6 {
		t.Errorf("sum of top-100 mindshare = %v, want 1", sum100)
	}
	if math.Abs(sum25-1) > 1e-6 {
		t.Errorf("sum of top-25 normalized = %v, want 1", sum25)
	}

	// Entries outside the slices still carry metrics.
	last := snap.Entries[len(snap.Entries)-1]
	if last.MindShare <= 0 || last.NormalizedMindShare <= 0 {
		t.Errorf("entry outside top slices has zero metrics: %+v", last)
	}
}

func TestRankZeroDenominator(t *testing.T) {
	snap := rankAt([]store.AggregatedYapScore{
		entry("a", 0, 0),
		entry("b", 0, 0),
	})

	for _, e := range snap.Entries {
		if e.MindShare != 0 || e.NormalizedMindShare != 0 {
			t.Errorf("expected zero metrics with zero denominator, got %+v", e)
		}
	}
}

func TestRankStableTies(t *testing.T) {
	snap := rankAt([]store.AggregatedYapScore{
		entry("first", 100, 0),
		entry("second", 100, 0),
		entry("third", 100, 0),
	})

	want := []string{"first", "second", "third"}
	for i, e := range snap.Entries {
		if e.AuthorID != want[i] {
			t.Fatalf("tied entries reordered: position %d = %s, want %s", i, e.AuthorID, want[i])
		}
	}
}

func TestRankEmpty(t *testing.T) {
	snap := rankAt(nil)
	if len(snap.Entries) != 0 {
		t.Fatalf("expected empty snapshot, got %d entries", len(snap.Entries))
	}
	if snap.TotalTop100 != 0 || snap.TotalTop25 != 0 {
		t.Fatalf("expected zero totals, got %v/%v", snap.TotalTop100, snap.TotalTop25)
	}
}

func TestRunName(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{
			name: "mid-january afternoon",
			at:   time.Date(2024, time.January, 12, 14, 30, 45, 0, time.Local),
			want: "AggregatedYapScores_2024_01_12_1430",
		},
		{
			name: "single-digit fields pad",
			at:   time.Date(2025, time.September, 3, 4, 5, 0, 0, time.Local),
			want: "AggregatedYapScores_2025_09_03_0405",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunName(tt.at); got != tt.want {
				t.Errorf("RunName(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}
