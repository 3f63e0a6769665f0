package stats

import (
	"github.com/matchscreener/matchscreener/internal/domain/identity"
	"github.com/matchscreener/matchscreener/internal/domain/match"
)

// TeamQuery selects and windows a team's matches.
type TeamQuery struct {
	// Key is the canonical team key. An empty key matches nothing.
	Key string
	// League restricts the selection to one division code; empty means all.
	League string
	// Window caps the most-recent matches considered: 0 applies
	// DefaultTeamWindow, NoLimit disables the cap.
	Window int
	// IncludeExamples attaches the concrete rows behind the "others"
	// buckets. Threaded explicitly; there is no ambient debug switch.
	IncludeExamples bool
}

// TeamStats is the per-team aggregate. Rates are nil when their denominator
// is zero; every field is present even for an empty selection.
type TeamStats struct {
	Team       string `json:"team_norm"`
	N          int    `json:"n"`
	LeagueCode string `json:"league_div"`
	LeagueName string `json:"league_name"`

	AvgGoalsScored       *float64 `json:"avg_goals_scored"`
	AvgGoalsConceded     *float64 `json:"avg_goals_conceded"`
	Over05Rate           *float64 `json:"over_0_5_rate"`
	CleanSheetRate       *float64 `json:"clean_sheet_rate"`
	GoalsShareSecondHalf *float64 `json:"goals_share_second_half"`

	WinsCount       int      `json:"wins_count"`
	WinsRate        *float64 `json:"wins_pct"`
	WinsOthersCount int      `json:"wins_others_count"`
	WinsOthersRate  *float64 `json:"wins_others_pct"`

	DrawsCount       int      `json:"draws_count"`
	DrawsRate        *float64 `json:"draws_pct"`
	DrawsOthersCount int      `json:"draws_others_count"`
	DrawsOthersRate  *float64 `json:"draws_others_pct"`

	LossesCount       int      `json:"losses_count"`
	LossesRate        *float64 `json:"losses_pct"`
	LossesOthersCount int      `json:"losses_others_count"`
	LossesOthersRate  *float64 `json:"losses_others_pct"`

	// First-half 2+ goals scored, by venue.
	HomeHT2PlusCount int      `json:"home_ht_2plus_count"`
	HomeHT2PlusRate  *float64 `json:"home_ht_2plus_pct"`
	AwayHT2PlusCount int      `json:"away_ht_2plus_count"`
	AwayHT2PlusRate  *float64 `json:"away_ht_2plus_pct"`

	// First-half 2+ goals conceded, by venue.
	HomeHT2PlusConcededCount int      `json:"home_ht_2plus_conceded_count"`
	HomeHT2PlusConcededRate  *float64 `json:"home_ht_2plus_conceded_pct"`
	AwayHT2PlusConcededCount int      `json:"away_ht_2plus_conceded_count"`
	AwayHT2PlusConcededRate  *float64 `json:"away_ht_2plus_conceded_pct"`

	// Conditional outcomes given a 2+ first half.
	HT2PlusToWinOthersRate              *float64 `json:"ht_2plus_to_win_others_pct"`
	HT2PlusConcededToLostOthersRate     *float64 `json:"ht_2plus_conceded_to_lost_others_pct"`
	HomeHT2PlusConcededToLostOthersRate *float64 `json:"home_ht_2plus_conceded_to_lost_others_pct"`
	AwayHT2PlusConcededToLostOthersRate *float64 `json:"away_ht_2plus_conceded_to_lost_others_pct"`

	WinsOthersExamples   []MatchSummary `json:"wins_others_examples,omitempty"`
	DrawsOthersExamples  []MatchSummary `json:"draws_others_examples,omitempty"`
	LossesOthersExamples []MatchSummary `json:"losses_others_examples,omitempty"`
}

// Team computes the windowed form aggregate for one canonical team key.
// An unresolved key yields a fully populated zero record, never an error.
func Team(records []match.Record, q TeamQuery) TeamStats {
	window := q.Window
	if window == 0 {
		window = DefaultTeamWindow
	}

	sub := truncate(teamRows(records, q.Key, q.League), window)

	out := TeamStats{
		Team:       q.Key,
		N:          len(sub),
		LeagueCode: q.League,
		LeagueName: identity.LeagueName(q.League),
	}
	if len(sub) == 0 {
		return out
	}

	n := len(sub)
	var (
		gfSum, gaSum       int
		over05, cleanSheet int
		secondHalfGoals    int

		homeCount, awayCount int

		htScored2, htConceded2           int
		homeHT2, awayHT2                 int
		homeHT2Conceded, awayHT2Conceded int

		ht2ToWinOthers              int
		ht2ConcededToLostOthers     int
		homeHT2ConcededToLostOthers int
		awayHT2ConcededToLostOthers int
	)

	for _, r := range sub {
		isHome := r.Home == q.Key
		gf, ga := r.FTHome, r.FTAway
		if !isHome {
			gf, ga = ga, gf
		}

		gfSum += gf
		gaSum += ga
		if r.TotalGoals() >= 1 {
			over05++
		}
		if ga == 0 {
			cleanSheet++
		}
		if isHome {
			homeCount++
		} else {
			awayCount++
		}

		win := gf > ga
		draw := gf == ga
		loss := gf < ga
		winOther := win && gf >= othersGoalLine
		drawOther := draw && gf >= othersGoalLine && ga >= othersGoalLine
		lossOther := loss && ga >= othersGoalLine

		switch {
		case win:
			out.WinsCount++
		case draw:
			out.DrawsCount++
		default:
			out.LossesCount++
		}
		if winOther {
			out.WinsOthersCount++
			if q.IncludeExamples {
				out.WinsOthersExamples = append(out.WinsOthersExamples, summarize(r))
			}
		}
		if drawOther {
			out.DrawsOthersCount++
			if q.IncludeExamples {
				out.DrawsOthersExamples = append(out.DrawsOthersExamples, summarize(r))
			}
		}
		if lossOther {
			out.LossesOthersCount++
			if q.IncludeExamples {
				out.LossesOthersExamples = append(out.LossesOthersExamples, summarize(r))
			}
		}

		if !r.HalfTime.Known() {
			continue
		}
		gfHT, gaHT := r.HalfTime.Home, r.HalfTime.Away
		if !isHome {
			gfHT, gaHT = gaHT, gfHT
		}
		if diff := gf - gfHT; diff > 0 {
			secondHalfGoals += diff
		}
		if gfHT >= 2 {
			htScored2++
			if isHome {
				homeHT2++
			} else {
				awayHT2++
			}
			if winOther {
				ht2ToWinOthers++
			}
		}
		if gaHT >= 2 {
			htConceded2++
			if isHome {
				homeHT2Conceded++
			} else {
				awayHT2Conceded++
			}
			if lossOther {
				ht2ConcededToLostOthers++
				if isHome {
					homeHT2ConcededToLostOthers++
				} else {
					awayHT2ConcededToLostOthers++
				}
			}
		}
	}

	out.AvgGoalsScored = mean(float64(gfSum), n)
	out.AvgGoalsConceded = mean(float64(gaSum), n)
	out.Over05Rate = rate(over05, n)
	out.CleanSheetRate = rate(cleanSheet, n)
	if gfSum > 0 {
		out.GoalsShareSecondHalf = ptr(float64(secondHalfGoals) / float64(gfSum))
	}

	out.WinsRate = rate(out.WinsCount, n)
	out.WinsOthersRate = rate(out.WinsOthersCount, n)
	out.DrawsRate = rate(out.DrawsCount, n)
	out.DrawsOthersRate = rate(out.DrawsOthersCount, n)
	out.LossesRate = rate(out.LossesCount, n)
	out.LossesOthersRate = rate(out.LossesOthersCount, n)

	out.HomeHT2PlusCount = homeHT2
	out.HomeHT2PlusRate = rate(homeHT2, homeCount)
	out.AwayHT2PlusCount = awayHT2
	out.AwayHT2PlusRate = rate(awayHT2, awayCount)
	out.HomeHT2PlusConcededCount = homeHT2Conceded
	out.HomeHT2PlusConcededRate = rate(homeHT2Conceded, homeCount)
	out.AwayHT2PlusConcededCount = awayHT2Conceded
	out.AwayHT2PlusConcededRate = rate(awayHT2Conceded, awayCount)

	out.HT2PlusToWinOthersRate = rate(ht2ToWinOthers, htScored2)
	out.HT2PlusConcededToLostOthersRate = rate(ht2ConcededToLostOthers, htConceded2)
	out.HomeHT2PlusConcededToLostOthersRate = rate(homeHT2ConcededToLostOthers, homeHT2Conceded)
	out.AwayHT2PlusConcededToLostOthersRate = rate(awayHT2ConcededToLostOthers, awayHT2Conceded)

	return out
}
