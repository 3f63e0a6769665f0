package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/matchscreener/matchscreener/internal/domain/identity"
	"github.com/matchscreener/matchscreener/internal/domain/match"
)

// europeColumns resolves the column-synonym contract for the euro-league
// feeds. Priority order within each list matters: first hit wins.
type europeColumns struct {
	date, kickoff, home, away, div, fthg, ftag, hthg, htag int
}

func mapEuropeColumns(headers []string) europeColumns {
	return europeColumns{
		date:    findColumn(headers, "date", "match date", "dateutc"),
		kickoff: findColumn(headers, "time", "ko time"),
		home:    findColumn(headers, "hometeam", "home team", "home"),
		away:    findColumn(headers, "awayteam", "away team", "away"),
		div:     findColumn(headers, "div", "league", "competition"),
		fthg:    findColumn(headers, "fthg", "hg", "home goals"),
		ftag:    findColumn(headers, "ftag", "ag", "away goals"),
		hthg:    findColumn(headers, "hthg"),
		htag:    findColumn(headers, "htag"),
	}
}

// NormalizeEurope maps one euro-league frame onto match records. Rows lacking
// a parseable day-first date, either team name, or full-time scores are
// dropped; they can never satisfy the record invariant.
func NormalizeEurope(f Frame, source string) []match.Record {
	cols := mapEuropeColumns(f.Headers)

	out := make([]match.Record, 0, len(f.Rows))
	for _, row := range f.Rows {
		date, ok := parseDayFirstDate(cell(row, cols.date))
		if !ok {
			continue
		}
		homeRaw := cell(row, cols.home)
		awayRaw := cell(row, cols.away)
		if homeRaw == "" || awayRaw == "" {
			continue
		}
		fthg, okH := parseGoals(cell(row, cols.fthg))
		ftag, okA := parseGoals(cell(row, cols.ftag))
		if !okH || !okA {
			continue
		}

		league := cell(row, cols.div)
		rec := match.Record{
			League:    league,
			LeagueKey: strings.ToLower(league),
			Date:      date,
			HomeRaw:   homeRaw,
			AwayRaw:   awayRaw,
			Home:      identity.NormalizeTeam(homeRaw),
			Away:      identity.NormalizeTeam(awayRaw),
			Kickoff:   cell(row, cols.kickoff),
			FTHome:    fthg,
			FTAway:    ftag,
			HalfTime:  parseHalfTime(cell(row, cols.hthg), cell(row, cols.htag)),
			Source:    source,
		}
		out = append(out, rec)
	}
	return out
}

// worldColumns resolves the world-leagues feed layout, which reports country
// and league separately and carries no half-time scores.
type worldColumns struct {
	date, kickoff, home, away, hg, ag, country, league int
}

func mapWorldColumns(headers []string) worldColumns {
	return worldColumns{
		date:    findColumn(headers, "date", "match date"),
		kickoff: findColumn(headers, "time", "ko time"),
		home:    findColumn(headers, "home"),
		away:    findColumn(headers, "away"),
		hg:      findColumn(headers, "hg", "home goals"),
		ag:      findColumn(headers, "ag", "away goals"),
		country: findColumn(headers, "country"),
		league:  findColumn(headers, "league"),
	}
}

// NormalizeWorld maps the world-leagues frame onto match records. The league
// code is synthesized as "<Country>_<League>" and half-time is marked
// not-tracked rather than missing.
func NormalizeWorld(f Frame, source string) []match.Record {
	cols := mapWorldColumns(f.Headers)

	out := make([]match.Record, 0, len(f.Rows))
	for _, row := range f.Rows {
		date, ok := parseDayFirstDate(cell(row, cols.date))
		if !ok {
			continue
		}
		homeRaw := cell(row, cols.home)
		awayRaw := cell(row, cols.away)
		if homeRaw == "" || awayRaw == "" {
			continue
		}
		hg, okH := parseGoals(cell(row, cols.hg))
		ag, okA := parseGoals(cell(row, cols.ag))
		if !okH || !okA {
			continue
		}

		league := cell(row, cols.country) + "_" + cell(row, cols.league)
		rec := match.Record{
			League:    league,
			LeagueKey: worldLeagueKey(league),
			Date:      date,
			HomeRaw:   homeRaw,
			AwayRaw:   awayRaw,
			Home:      identity.NormalizeTeam(homeRaw),
			Away:      identity.NormalizeTeam(awayRaw),
			Kickoff:   cell(row, cols.kickoff),
			FTHome:    hg,
			FTAway:    ag,
			HalfTime:  match.HalfTime{Status: match.HalfTimeNotTracked},
			Source:    source,
		}
		out = append(out, rec)
	}
	return out
}

// worldLeagueKey normalizes a Country_League composite to the slug-shaped
// form the market side produces: lowercase, hyphen separated.
func worldLeagueKey(league string) string {
	key := strings.ToLower(league)
	key = strings.ReplaceAll(key, "_", "-")
	return strings.ReplaceAll(key, " ", "-")
}

// dayFirstLayouts are tried in order. The historical feeds write dates
// day-first; ISO shows up in re-exported snapshots.
var dayFirstLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"02-01-2006",
	"2006-01-02",
}

func parseDayFirstDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseGoals accepts integral values, tolerating the float rendering some
// exports use ("2.0").
func parseGoals(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func parseHalfTime(home, away string) match.HalfTime {
	h, okH := parseGoals(home)
	a, okA := parseGoals(away)
	if !okH || !okA {
		return match.HalfTime{Status: match.HalfTimeMissing}
	}
	return match.HalfTime{Home: h, Away: a, Status: match.HalfTimeKnown}
}
