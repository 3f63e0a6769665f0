package stats

import (
	"math"

	"github.com/matchscreener/matchscreener/internal/domain/identity"
	"github.com/matchscreener/matchscreener/internal/domain/match"
)

// League-scope resolution statuses, in rule order.
const (
	StatusEventLeagueScope    = "event-league-scope"
	StatusSameLatestLeague    = "same-latest-league"
	StatusPerTeamLatestLeague = "per-team-latest-league"
	StatusNoLeagueScope       = "no-league-scope"
)

// Scope types identify why a league entered the fixture's scope.
const (
	ScopeEvent = "event"
	ScopeHome  = "home"
	ScopeAway  = "away"
)

// Scoreline heuristic constants. The blend weights are empirical market
// tuning; keep them with the clamps they were fitted against.
const (
	minTeamGoals = 0.2
	maxTeamGoals = 3.0
	minLambda    = 0.2
	maxLambda    = 5.0

	weightTeams  = 0.6
	weightLeague = 0.2
	weightH2H    = 0.2
)

// InsightQuery describes one fixture to compose.
type InsightQuery struct {
	HomeKey string
	AwayKey string
	// SlugHint is the live-market event path carrying the league slug; empty
	// or unknown slugs fall back to per-team latest-league resolution.
	SlugHint string
	// TeamWindow/H2HWindow follow the team and head-to-head window
	// conventions respectively.
	TeamWindow int
	H2HWindow  int
	// IncludeExamples threads the others-bucket evidence flag through to the
	// team aggregates.
	IncludeExamples bool
}

// LeagueScope is one division a fixture's stats were computed against, with
// the unlimited-window league overview attached.
type LeagueScope struct {
	Type     string      `json:"type"`
	Code     string      `json:"div"`
	Name     string      `json:"name"`
	Overview LeagueStats `json:"overview"`
}

// Insight is the per-fixture composition of team, head-to-head and league
// aggregates plus the derived scoreline score.
type Insight struct {
	EventLeagueCode string         `json:"league_div"`
	Status          string         `json:"status"`
	Home            TeamStats      `json:"home"`
	Away            TeamStats      `json:"away"`
	H2H             H2HStats       `json:"h2h"`
	H2HMatches      []MatchSummary `json:"h2h_matches"`
	LeagueScopes    []LeagueScope  `json:"league_scope"`
	// Score is the 0-100 interest score; nil when no goal average could be
	// established at any fallback level.
	Score           *int     `json:"score"`
	ZeroZeroProbPct *float64 `json:"zero_zero_prob_pct"`
}

// Compose builds the full insight bundle for a fixture. Head-to-head always
// spans the entire dataset; only the team aggregates are scoped to leagues.
func Compose(records []match.Record, q InsightQuery) Insight {
	out := Insight{}

	eventCode := identity.ResolveLeagueCode(q.SlugHint)
	var homeLeague, awayLeague string

	if eventCode != "" {
		out.EventLeagueCode = eventCode
		out.Status = StatusEventLeagueScope
		homeLeague, awayLeague = eventCode, eventCode
		out.LeagueScopes = append(out.LeagueScopes, LeagueScope{
			Type: ScopeEvent,
			Code: eventCode,
			Name: identity.LeagueName(eventCode),
		})
	} else {
		// Latest known league per team, from the full unfiltered history.
		homeLeague = latestLeague(records, q.HomeKey)
		awayLeague = latestLeague(records, q.AwayKey)

		switch {
		case homeLeague == "" && awayLeague == "":
			out.Status = StatusNoLeagueScope
		case homeLeague != "" && homeLeague == awayLeague:
			out.Status = StatusSameLatestLeague
		default:
			out.Status = StatusPerTeamLatestLeague
		}

		if homeLeague != "" {
			out.LeagueScopes = append(out.LeagueScopes, LeagueScope{
				Type: ScopeHome,
				Code: homeLeague,
				Name: identity.LeagueName(homeLeague),
			})
		}
		if awayLeague != "" && awayLeague != homeLeague {
			out.LeagueScopes = append(out.LeagueScopes, LeagueScope{
				Type: ScopeAway,
				Code: awayLeague,
				Name: identity.LeagueName(awayLeague),
			})
		}
	}

	out.Home = Team(records, TeamQuery{
		Key:             q.HomeKey,
		League:          homeLeague,
		Window:          q.TeamWindow,
		IncludeExamples: q.IncludeExamples,
	})
	out.Away = Team(records, TeamQuery{
		Key:             q.AwayKey,
		League:          awayLeague,
		Window:          q.TeamWindow,
		IncludeExamples: q.IncludeExamples,
	})

	h2hQuery := H2HQuery{KeyA: q.HomeKey, KeyB: q.AwayKey, Window: q.H2HWindow}
	out.H2H = HeadToHead(records, h2hQuery)
	out.H2HMatches = HeadToHeadMatches(records, h2hQuery)

	for i := range out.LeagueScopes {
		out.LeagueScopes[i].Overview = League(records, out.LeagueScopes[i].Code, NoLimit)
	}

	out.Score, out.ZeroZeroProbPct = scoreline(out.Home, out.Away, out.H2H, out.LeagueScopes)
	return out
}

// latestLeague returns the team's most recent non-empty league code across
// its whole history, or "".
func latestLeague(records []match.Record, key string) string {
	for _, r := range teamRows(records, key, "") {
		if r.League != "" {
			return r.League
		}
	}
	return ""
}

// scoreline derives the interest score from a Poisson 0-0 probability over
// blended expected total goals. Every missing term falls back as documented;
// with no goal averages and no league average there is no score.
func scoreline(home, away TeamStats, h2h H2HStats, scopes []LeagueScope) (*int, *float64) {
	homeGoals := clampGoals(home.AvgGoalsScored)
	awayGoals := clampGoals(away.AvgGoalsScored)

	var leagueAvg *float64
	if len(scopes) > 0 {
		leagueAvg = scopes[0].Overview.AvgTotalGoals
	}
	h2hAvg := h2h.AvgTotalGoals

	var compSum *float64
	switch {
	case homeGoals != nil && awayGoals != nil:
		compSum = ptr(*homeGoals + *awayGoals)
	case leagueAvg != nil:
		compSum = leagueAvg
	default:
		return nil, nil
	}

	ctxAvg := h2hAvg
	if ctxAvg == nil {
		ctxAvg = leagueAvg
	}

	leagueTerm := *compSum
	if leagueAvg != nil {
		leagueTerm = *leagueAvg
	}
	ctxTerm := leagueTerm
	if ctxAvg != nil {
		ctxTerm = *ctxAvg
	}

	lambda := weightTeams**compSum + weightLeague*leagueTerm + weightH2H*ctxTerm
	lambda = math.Max(minLambda, math.Min(lambda, maxLambda))

	p0 := math.Exp(-lambda)
	zeroZeroPct := math.Round(1000*p0) / 10

	score := int(math.Round(100 - 200*p0))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &score, &zeroZeroPct
}

func clampGoals(avg *float64) *float64 {
	if avg == nil {
		return nil
	}
	return ptr(math.Max(minTeamGoals, math.Min(*avg, maxTeamGoals)))
}
