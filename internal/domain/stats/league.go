package stats

import (
	"github.com/matchscreener/matchscreener/internal/domain/match"
)

// LeagueStats is the league-wide aggregate across every club in a division.
// Unlike team aggregates the window defaults to unlimited.
type LeagueStats struct {
	N             int      `json:"n"`
	AvgTotalGoals *float64 `json:"avg_total_goals"`
	Over05Rate    *float64 `json:"over_0_5_rate"`
	AvgGoalsHome  *float64 `json:"avg_goals_home"`
	AvgGoalsAway  *float64 `json:"avg_goals_away"`

	HomeScored2PlusRate *float64 `json:"home_scored_2plus_pct"`
	AwayScored2PlusRate *float64 `json:"away_scored_2plus_pct"`

	// First-half rates are nil when no row in scope tracks half-time scores.
	HomeHT2PlusRate *float64 `json:"home_ht_2plus_pct"`
	AwayHT2PlusRate *float64 `json:"away_ht_2plus_pct"`

	HomeWinCount       int      `json:"home_win_count"`
	HomeWinRate        *float64 `json:"home_win_pct"`
	HomeWinOthersCount int      `json:"home_win_others_count"`
	HomeWinOthersRate  *float64 `json:"home_win_others_pct"`

	DrawCount       int      `json:"draw_count"`
	DrawRate        *float64 `json:"draw_pct"`
	DrawOthersCount int      `json:"draw_others_count"`
	DrawOthersRate  *float64 `json:"draw_others_pct"`

	AwayWinCount       int      `json:"away_win_count"`
	AwayWinRate        *float64 `json:"away_win_pct"`
	AwayWinOthersCount int      `json:"away_win_others_count"`
	AwayWinOthersRate  *float64 `json:"away_win_others_pct"`
}

// League aggregates a whole division. window <= 0 means every match on
// record; positive values keep the most recent matches only.
func League(records []match.Record, code string, window int) LeagueStats {
	if code == "" {
		return LeagueStats{}
	}

	sub := make([]match.Record, 0)
	for _, r := range records {
		if r.League == code {
			sub = append(sub, r)
		}
	}
	sub = truncate(sortDescending(sub), window)
	if len(sub) == 0 {
		return LeagueStats{}
	}

	n := len(sub)
	var (
		goalSum, homeGoalSum, awayGoalSum int
		zeroZero                          int
		homeScored2, awayScored2          int
		htKnown, homeHT2, awayHT2         int
	)

	out := LeagueStats{N: n}
	for _, r := range sub {
		goalSum += r.TotalGoals()
		homeGoalSum += r.FTHome
		awayGoalSum += r.FTAway
		if r.TotalGoals() == 0 {
			zeroZero++
		}
		if r.FTHome >= 2 {
			homeScored2++
		}
		if r.FTAway >= 2 {
			awayScored2++
		}

		switch {
		case r.FTHome > r.FTAway:
			out.HomeWinCount++
			if r.FTHome >= othersGoalLine {
				out.HomeWinOthersCount++
			}
		case r.FTHome == r.FTAway:
			out.DrawCount++
			if r.FTHome >= othersGoalLine && r.FTAway >= othersGoalLine {
				out.DrawOthersCount++
			}
		default:
			out.AwayWinCount++
			if r.FTAway >= othersGoalLine {
				out.AwayWinOthersCount++
			}
		}

		if r.HalfTime.Known() {
			htKnown++
			if r.HalfTime.Home >= 2 {
				homeHT2++
			}
			if r.HalfTime.Away >= 2 {
				awayHT2++
			}
		}
	}

	out.AvgTotalGoals = mean(float64(goalSum), n)
	out.AvgGoalsHome = mean(float64(homeGoalSum), n)
	out.AvgGoalsAway = mean(float64(awayGoalSum), n)
	out.Over05Rate = ptr(1 - *rate(zeroZero, n))
	out.HomeScored2PlusRate = rate(homeScored2, n)
	out.AwayScored2PlusRate = rate(awayScored2, n)
	if htKnown > 0 {
		out.HomeHT2PlusRate = rate(homeHT2, n)
		out.AwayHT2PlusRate = rate(awayHT2, n)
	}
	out.HomeWinRate = rate(out.HomeWinCount, n)
	out.HomeWinOthersRate = rate(out.HomeWinOthersCount, n)
	out.DrawRate = rate(out.DrawCount, n)
	out.DrawOthersRate = rate(out.DrawOthersCount, n)
	out.AwayWinRate = rate(out.AwayWinCount, n)
	out.AwayWinOthersRate = rate(out.AwayWinOthersCount, n)

	return out
}
