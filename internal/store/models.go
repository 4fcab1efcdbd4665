package store

import "time"

// YapScore is one raw engagement record, written by the upstream ingestion
// process once per author per period. The job only reads these.
type YapScore struct {
	ID            int64     `json:"id"`
	AuthorID      string    `json:"author_id"`
	Username      string    `json:"username"`
	ContentScore  float64   `json:"content_score"`
	EngagementAll float64   `json:"engagement_all"`
	Engagement24h float64   `json:"engagement_24h"`
	Engagement48h float64   `json:"engagement_48h"`
	Engagement7d  float64   `json:"engagement_7d"`
	Engagement30d float64   `json:"engagement_30d"`
	Engagement3m  float64   `json:"engagement_3m"`
	Engagement6m  float64   `json:"engagement_6m"`
	Engagement12m float64   `json:"engagement_12m"`
	TweetIDs      []string  `json:"tweet_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

// AggregatedYapScore is one leaderboard row: per-author combined counters
// plus the derived ranking fields.
type AggregatedYapScore struct {
	AuthorID      string    `json:"author_id"`
	Username      string    `json:"username"`
	ContentScore  float64   `json:"content_score"`
	EngagementAll float64   `json:"engagement_all"`
	Engagement24h float64   `json:"engagement_24h"`
	Engagement48h float64   `json:"engagement_48h"`
	Engagement7d  float64   `json:"engagement_7d"`
	Engagement30d float64   `json:"engagement_30d"`
	Engagement3m  float64   `json:"engagement_3m"`
	Engagement6m  float64   `json:"engagement_6m"`
	Engagement12m float64   `json:"engagement_12m"`
	TweetIDs      []string  `json:"tweet_ids"`
	CreatedAt     time.Time `json:"created_at"`

	MultiplierFactor    float64 `json:"multiplier_factor"`
	CompositeScore      float64 `json:"composite_score"`
	MindShare           float64 `json:"mind_share"`
	NormalizedMindShare float64 `json:"normalized_mind_share"`
}
