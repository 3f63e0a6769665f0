// Package stats computes windowed aggregates over the canonical match
// dataset: per-team form, head-to-head history, league-wide overviews and the
// per-fixture insight bundle. Everything here is pure; callers pass the
// snapshot's records and get value results back.
package stats

import (
	"sort"
	"time"

	"github.com/matchscreener/matchscreener/internal/domain/match"
)

const (
	// DefaultTeamWindow caps team aggregates when the caller does not ask
	// for a specific window.
	DefaultTeamWindow = 80

	// NoLimit disables windowing.
	NoLimit = -1
)

// othersGoalLine is the correct-score market boundary behind the "others"
// outcome buckets. Empirical market constant, tunable but never re-derived.
const othersGoalLine = 4

// MatchSummary is one dataset row flattened for fixture lists and example
// evidence in debug output.
type MatchSummary struct {
	Date   string `json:"date"`
	League string `json:"div"`
	Home   string `json:"home_norm"`
	Away   string `json:"away_norm"`
	FTHome int    `json:"fthg"`
	FTAway int    `json:"ftag"`
}

func summarize(r match.Record) MatchSummary {
	return MatchSummary{
		Date:   r.Date.Format("2006-01-02"),
		League: r.League,
		Home:   r.Home,
		Away:   r.Away,
		FTHome: r.FTHome,
		FTAway: r.FTAway,
	}
}

// rate is count/denominator, or nil when the denominator is zero. Undefined
// is always represented as nil, never zero or NaN.
func rate(count, denom int) *float64 {
	if denom == 0 {
		return nil
	}
	v := float64(count) / float64(denom)
	return &v
}

func mean(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := sum / float64(n)
	return &v
}

func ptr(v float64) *float64 { return &v }

// sortDescending orders records newest-first without mutating the snapshot's
// backing slice. The ascending input order is preserved for equal dates, so
// windows for the same inputs are always consistent prefixes.
func sortDescending(records []match.Record) []match.Record {
	out := make([]match.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// truncate applies a window to an already-sorted slice. limit <= 0 means no
// truncation.
func truncate(records []match.Record, limit int) []match.Record {
	if limit <= 0 || len(records) <= limit {
		return records
	}
	return records[:limit]
}

// exactDuplicateKey covers overlapping feeds reporting the same match twice.
// Scores are part of the key so legitimate same-day rematches with different
// results survive de-duplication.
type exactDuplicateKey struct {
	League string
	Date   time.Time
	Home   string
	Away   string
	FTHome int
	FTAway int
}

func dropExactDuplicates(records []match.Record) []match.Record {
	seen := make(map[exactDuplicateKey]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		key := exactDuplicateKey{r.League, r.Date, r.Home, r.Away, r.FTHome, r.FTAway}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// teamRows selects every appearance of the team, optionally filtered to one
// league, de-duplicated and sorted newest-first.
func teamRows(records []match.Record, key, league string) []match.Record {
	if key == "" {
		return nil
	}
	sub := make([]match.Record, 0)
	for _, r := range records {
		if r.Home != key && r.Away != key {
			continue
		}
		if league != "" && r.League != league {
			continue
		}
		sub = append(sub, r)
	}
	return sortDescending(dropExactDuplicates(sub))
}

// pairRows selects every meeting of the two teams in either venue
// orientation, newest-first. Shared by the head-to-head aggregate and the raw
// fixture list so both stay consistent for the same inputs.
func pairRows(records []match.Record, a, b, league string, limit int) []match.Record {
	if a == "" || b == "" {
		return nil
	}
	sub := make([]match.Record, 0)
	for _, r := range records {
		if !((r.Home == a && r.Away == b) || (r.Home == b && r.Away == a)) {
			continue
		}
		if league != "" && r.League != league {
			continue
		}
		sub = append(sub, r)
	}
	return truncate(sortDescending(sub), limit)
}
