package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS yap_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id TEXT NOT NULL,
		username TEXT,
		content_score REAL NOT NULL DEFAULT 0,
		engagement_all REAL NOT NULL DEFAULT 0,
		engagement_24h REAL NOT NULL DEFAULT 0,
		engagement_48h REAL NOT NULL DEFAULT 0,
		engagement_7d REAL NOT NULL DEFAULT 0,
		engagement_30d REAL NOT NULL DEFAULT 0,
		engagement_3m REAL NOT NULL DEFAULT 0,
		engagement_6m REAL NOT NULL DEFAULT 0,
		engagement_12m REAL NOT NULL DEFAULT 0,
		tweet_ids TEXT,
		created_at DATETIME NOT NULL,
		UNIQUE(author_id, created_at)
	);

	CREATE INDEX IF NOT EXISTS idx_yap_scores_created_at ON yap_scores(created_at);
	CREATE INDEX IF NOT EXISTS idx_yap_scores_author ON yap_scores(author_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveYapScore inserts or updates a raw engagement record. One record per
// author per ingestion period; re-ingesting a period replaces its counters.
func (s *Store) SaveYapScore(y *YapScore) error {
	tweetJSON, _ := json.Marshal(y.TweetIDs)

	_, err := s.db.Exec(`
		INSERT INTO yap_scores (author_id, username, content_score,
			engagement_all, engagement_24h, engagement_48h, engagement_7d,
			engagement_30d, engagement_3m, engagement_6m, engagement_12m,
			tweet_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(author_id, created_at) DO UPDATE SET
			username = excluded.username,
			content_score = excluded.content_score,
			engagement_all = excluded.engagement_all,
			engagement_24h = excluded.engagement_24h,
			engagement_48h = excluded.engagement_48h,
			engagement_7d = excluded.engagement_7d,
			engagement_30d = excluded.engagement_30d,
			engagement_3m = excluded.engagement_3m,
			engagement_6m = excluded.engagement_6m,
			engagement_12m = excluded.engagement_12m,
			tweet_ids = excluded.tweet_ids
	`, y.AuthorID, y.Username, y.ContentScore,
		y.EngagementAll, y.Engagement24h, y.Engagement48h, y.Engagement7d,
		y.Engagement30d, y.Engagement3m, y.Engagement6m, y.Engagement12m,
		string(tweetJSON), y.CreatedAt)

	return err
}

// YapScoresInWindow returns all raw records whose created_at falls in the
// inclusive [start, end] range, ordered chronologically (ties broken by
// insertion order). The take-first/take-last aggregation rules depend on
// this ordering.
func (s *Store) YapScoresInWindow(start, end time.Time) ([]YapScore, error) {
	rows, err := s.db.Query(`
		SELECT id, author_id, username, content_score,
			engagement_all, engagement_24h, engagement_48h, engagement_7d,
			engagement_30d, engagement_3m, engagement_6m, engagement_12m,
			tweet_ids, created_at
		FROM yap_scores
		WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at ASC, id ASC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanYapScores(rows)
}

var snapshotNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// WriteSnapshot persists one run's ranked entries to a table named after the
// run. The table is created if absent and any rows under the same name are
// deleted first, so re-running within the same minute overwrites rather
// than duplicates. Everything happens in a single transaction.
func (s *Store) WriteSnapshot(name string, entries []AggregatedYapScore, windowStart, windowEnd, generatedAt time.Time) error {
	if !snapshotNameRe.MatchString(name) {
		return fmt.Errorf("invalid snapshot table name %q", name)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			author_id TEXT PRIMARY KEY,
			username TEXT,
			content_score REAL NOT NULL,
			multiplier_factor REAL NOT NULL,
			composite_score REAL NOT NULL,
			mind_share REAL NOT NULL,
			normalized_mind_share REAL NOT NULL,
			engagement_all REAL NOT NULL,
			engagement_24h REAL NOT NULL,
			engagement_48h REAL NOT NULL,
			engagement_7d REAL NOT NULL,
			engagement_30d REAL NOT NULL,
			engagement_3m REAL NOT NULL,
			engagement_6m REAL NOT NULL,
			engagement_12m REAL NOT NULL,
			tweet_ids TEXT,
			created_at DATETIME,
			generated_at DATETIME NOT NULL,
			window_start DATETIME NOT NULL,
			window_end DATETIME NOT NULL
		)`, name))
	if err != nil {
		return fmt.Errorf("create snapshot table: %w", err)
	}

	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s`, name)); err != nil {
		return fmt.Errorf("clear snapshot table: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(`
		INSERT INTO %s (author_id, username, content_score, multiplier_factor,
			composite_score, mind_share, normalized_mind_share,
			engagement_all, engagement_24h, engagement_48h, engagement_7d,
			engagement_30d, engagement_3m, engagement_6m, engagement_12m,
			tweet_ids, created_at, generated_at, window_start, window_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, name))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range entries {
		e := &entries[i]
		tweetJSON, _ := json.Marshal(e.TweetIDs)
		_, err := stmt.Exec(e.AuthorID, e.Username, e.ContentScore, e.MultiplierFactor,
			e.CompositeScore, e.MindShare, e.NormalizedMindShare,
			e.EngagementAll, e.Engagement24h, e.Engagement48h, e.Engagement7d,
			e.Engagement30d, e.Engagement3m, e.Engagement6m, e.Engagement12m,
			string(tweetJSON), e.CreatedAt, generatedAt, windowStart, windowEnd)
		if err != nil {
			return fmt.Errorf("insert snapshot row for %s: %w", e.AuthorID, err)
		}
	}

	return tx.Commit()
}

// SnapshotCount returns the number of rows in a snapshot table.
func (s *Store) SnapshotCount(name string) (int, error) {
	if !snapshotNameRe.MatchString(name) {
		return 0, fmt.Errorf("invalid snapshot table name %q", name)
	}
	var n int
	err := s.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, name)).Scan(&n)
	return n, err
}

func scanYapScores(rows *sql.Rows) ([]YapScore, error) {
	var scores []YapScore
	for rows.Next() {
		var y YapScore
		var tweetJSON string

		err := rows.Scan(
			&y.ID, &y.AuthorID, &y.Username, &y.ContentScore,
			&y.EngagementAll, &y.Engagement24h, &y.Engagement48h, &y.Engagement7d,
			&y.Engagement30d, &y.Engagement3m, &y.Engagement6m, &y.Engagement12m,
			&tweetJSON, &y.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		json.Unmarshal([]byte(tweetJSON), &y.TweetIDs)
		scores = append(scores, y)
	}
	return scores, rows.Err()
}
