package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/resolverai/burnie-mindshare-sub012/internal/leaderboard"
	"github.com/resolverai/burnie-mindshare-sub012/internal/store"
)

func testSnapshot() *leaderboard.Snapshot {
	now := time.Date(2024, time.January, 12, 14, 30, 0, 0, time.UTC)
	return &leaderboard.Snapshot{
		Entries: []store.AggregatedYapScore{
			{
				AuthorID:            "a1",
				Username:            "alice, the original", // forces csv quoting
				ContentScore:        300,
				Engagement7d:        0,
				MultiplierFactor:    1,
				CompositeScore:      300,
				MindShare:           0.5,
				NormalizedMindShare: 0.5,
				TweetIDs:            []string{"t,1", "t2"},
				CreatedAt:           now.AddDate(0, 0, -3),
			},
			{
				AuthorID:            "a2",
				Username:            "bob",
				ContentScore:        300,
				MultiplierFactor:    1,
				CompositeScore:      300,
				MindShare:           0.5,
				NormalizedMindShare: 0.5,
				CreatedAt:           now.AddDate(0, 0, -2),
			},
		},
		WindowStart: now.AddDate(0, 0, -4),
		WindowEnd:   now,
		GeneratedAt: now,
		TotalTop100: 600,
		TotalTop25:  600,
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	return rows
}

func TestWriteCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports") // must be created by WriteCSV
	snap := testSnapshot()

	path, err := WriteCSV(dir, "AggregatedYapScores_2024_01_12_1430", snap)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if filepath.Base(path) != "AggregatedYapScores_2024_01_12_1430.csv" {
		t.Errorf("unexpected file name %s", path)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], header) {
		t.Errorf("header = %v", rows[0])
	}

	first := rows[1]
	cols := map[string]string{}
	for i, name := range header {
		cols[name] = first[i]
	}

	if cols["rank"] != "1" {
		t.Errorf("rank = %s, want 1", cols["rank"])
	}
	if cols["username"] != "alice, the original" {
		t.Errorf("quoted username mangled: %q", cols["username"])
	}
	if cols["mind_share_pct"] != "50.0000" {
		t.Errorf("mind_share_pct = %s, want 50.0000", cols["mind_share_pct"])
	}
	if cols["composite_score"] != "300.00" {
		t.Errorf("composite_score = %s, want 300.00", cols["composite_score"])
	}
	if cols["tweet_count"] != "2" {
		t.Errorf("tweet_count = %s, want 2", cols["tweet_count"])
	}
	if cols["tweet_ids"] != "t,1|t2" {
		t.Errorf("tweet_ids = %q, want pipe-joined with comma intact", cols["tweet_ids"])
	}
	if cols["generated_at"] != "2024-01-12T14:30:00Z" {
		t.Errorf("generated_at = %s", cols["generated_at"])
	}

	// Rank column increments with position.
	if rows[2][0] != "2" {
		t.Errorf("second row rank = %s, want 2", rows[2][0])
	}
}

func TestWriteCSVEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	snap := &leaderboard.Snapshot{
		WindowStart: time.Now().AddDate(0, 0, -7),
		WindowEnd:   time.Now(),
		GeneratedAt: time.Now(),
	}

	path, err := WriteCSV(dir, "AggregatedYapScores_2024_01_01_0000", snap)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 1 {
		t.Fatalf("expected header-only file, got %d rows", len(rows))
	}
}

func TestWriteCSVOverwrites(t *testing.T) {
	dir := t.TempDir()
	snap := testSnapshot()
	name := "AggregatedYapScores_2024_01_12_1430"

	path, err := WriteCSV(dir, name, snap)
	if err != nil {
		t.Fatalf("first WriteCSV: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read first export: %v", err)
	}

	if _, err := WriteCSV(dir, name, snap); err != nil {
		t.Fatalf("second WriteCSV: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read second export: %v", err)
	}

	if string(first) != string(second) {
		t.Fatal("re-running the same name should produce an identical file, not append")
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()

	if _, err := Latest(dir); err == nil {
		t.Fatal("expected error for empty export dir")
	}

	snap := testSnapshot()
	for _, name := range []string{
		"AggregatedYapScores_2024_01_05_1200",
		"AggregatedYapScores_2024_01_12_1430",
		"AggregatedYapScores_2023_12_29_0900",
	} {
		if _, err := WriteCSV(dir, name, snap); err != nil {
			t.Fatalf("WriteCSV %s: %v", name, err)
		}
	}

	got, err := Latest(dir)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if filepath.Base(got) != "AggregatedYapScores_2024_01_12_1430.csv" {
		t.Errorf("Latest = %s", got)
	}
}
