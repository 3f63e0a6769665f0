package stats

import "github.com/matchscreener/matchscreener/internal/domain/match"

// H2HQuery selects meetings between two teams. Key order is irrelevant.
type H2HQuery struct {
	KeyA string
	KeyB string
	// League restricts meetings to one division code; empty means all.
	League string
	// Window caps the most-recent meetings; <= 0 means all.
	Window int
}

// H2HStats summarizes the pairing's scoring history.
type H2HStats struct {
	N             int      `json:"n"`
	ZeroZeroRate  *float64 `json:"zero_zero_rate"`
	Over05Rate    *float64 `json:"over_0_5_rate"`
	AvgTotalGoals *float64 `json:"avg_total_goals"`
}

// HeadToHead aggregates every meeting of the pair in either venue
// orientation. Symmetric in its two keys, field for field.
func HeadToHead(records []match.Record, q H2HQuery) H2HStats {
	sub := pairRows(records, q.KeyA, q.KeyB, q.League, q.Window)
	if len(sub) == 0 {
		return H2HStats{}
	}

	n := len(sub)
	var zeroZero, goalSum int
	for _, r := range sub {
		total := r.TotalGoals()
		goalSum += total
		if total == 0 {
			zeroZero++
		}
	}

	zz := rate(zeroZero, n)
	return H2HStats{
		N:             n,
		ZeroZeroRate:  zz,
		Over05Rate:    ptr(1 - *zz),
		AvgTotalGoals: mean(float64(goalSum), n),
	}
}

// HeadToHeadMatches returns the raw meetings newest-first. It shares the
// selection path with HeadToHead so the list and the aggregate always
// describe the same rows.
func HeadToHeadMatches(records []match.Record, q H2HQuery) []MatchSummary {
	sub := pairRows(records, q.KeyA, q.KeyB, q.League, q.Window)
	out := make([]MatchSummary, 0, len(sub))
	for _, r := range sub {
		out = append(out, summarize(r))
	}
	return out
}
