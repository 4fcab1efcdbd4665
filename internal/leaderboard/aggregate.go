package leaderboard

import "github.com/resolverai/burnie-mindshare-sub012/internal/store"

// reducer combines one record's counter value into the running aggregate.
// first is true for the author's first contributing record.
type reducer func(acc, next float64, first bool) float64

func reduceSum(acc, next float64, first bool) float64 {
	if first {
		return next
	}
	return acc + next
}

func reduceLast(acc, next float64, first bool) float64 {
	return next
}

// counterRules is the declarative per-field combination table. Every counter
// is summed except engagement_7d, which takes the value of the
// chronologically last record. That asymmetry is inherited from the upstream
// scoring pipeline and must not change without confirming intent there; do
// not use reduceLast for new fields.
var counterRules = []struct {
	reduce reducer
	src    func(*store.YapScore) float64
	dst    func(*store.AggregatedYapScore) *float64
}{
	{reduceSum, func(y *store.YapScore) float64 { return y.ContentScore }, func(a *store.AggregatedYapScore) *float64 { return &a.ContentScore }},
	{reduceSum, func(y *store.YapScore) float64 { return y.EngagementAll }, func(a *store.AggregatedYapScore) *float64 { return &a.EngagementAll }},
	{reduceSum, func(y *store.YapScore) float64 { return y.Engagement24h }, func(a *store.AggregatedYapScore) *float64 { return &a.Engagement24h }},
	{reduceSum, func(y *store.YapScore) float64 { return y.Engagement48h }, func(a *store.AggregatedYapScore) *float64 { return &a.Engagement48h }},
	{reduceLast, func(y *store.YapScore) float64 { return y.Engagement7d }, func(a *store.AggregatedYapScore) *float64 { return &a.Engagement7d }},
	{reduceSum, func(y *store.YapScore) float64 { return y.Engagement30d }, func(a *store.AggregatedYapScore) *float64 { return &a.Engagement30d }},
	{reduceSum, func(y *store.YapScore) float64 { return y.Engagement3m }, func(a *store.AggregatedYapScore) *float64 { return &a.Engagement3m }},
	{reduceSum, func(y *store.YapScore) float64 { return y.Engagement6m }, func(a *store.AggregatedYapScore) *float64 { return &a.Engagement6m }},
	{reduceSum, func(y *store.YapScore) float64 { return y.Engagement12m }, func(a *store.AggregatedYapScore) *float64 { return &a.Engagement12m }},
}

// Aggregate folds the windowed records into one entry per author, applying
// counterRules to the numeric fields. Username and CreatedAt come from the
// author's first contributing record; tweet IDs are concatenated in record
// order. Records must already be in retrieval (chronological) order. The
// output preserves first-seen author order, which is what the ranking
// stage's stable sort breaks ties by.
func Aggregate(records []store.YapScore) []store.AggregatedYapScore {
	byAuthor := make(map[string]*store.AggregatedYapScore)
	var order []string

	for i := range records {
		y := &records[i]
		agg, seen := byAuthor[y.AuthorID]
		if !seen {
			agg = &store.AggregatedYapScore{
				AuthorID:  y.AuthorID,
				Username:  y.Username,
				CreatedAt: y.CreatedAt,
			}
			byAuthor[y.AuthorID] = agg
			order = append(order, y.AuthorID)
		}

		for _, rule := range counterRules {
			dst := rule.dst(agg)
			*dst = rule.reduce(*dst, rule.src(y), !seen)
		}
		agg.TweetIDs = append(agg.TweetIDs, y.TweetIDs...)
	}

	out := make([]store.AggregatedYapScore, 0, len(order))
	for _, id := range order {
		out = append(out, *byAuthor[id])
	}
	return out
}
