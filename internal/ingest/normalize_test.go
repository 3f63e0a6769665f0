package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/matchscreener/matchscreener/internal/domain/match"
)

func TestReadFrame(t *testing.T) {
	t.Parallel()

	const feed = "Div,Date,HomeTeam,AwayTeam,FTHG,FTAG\nE0,12/08/2024,Arsenal,Wolves,2,0\nE0,13/08/2024,Everton\n"

	f, err := ReadFrame(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("ReadFrame error: %v", err)
	}
	if len(f.Headers) != 6 {
		t.Fatalf("unexpected headers: %v", f.Headers)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("unexpected row count: %d", len(f.Rows))
	}
	// Short rows get padded so column lookups never panic.
	if got := cell(f.Rows[1], 5); got != "" {
		t.Fatalf("expected padded empty cell, got %q", got)
	}
}

func TestNormalizeEuropeMapsSynonymHeaders(t *testing.T) {
	t.Parallel()

	f := Frame{
		Headers: []string{"Competition", "Match Date", "KO Time", "Home Team", "Away Team", "HG", "AG", "HTHG", "HTAG"},
		Rows: [][]string{
			{"E0", "14/09/2024", "15:00", "Man Utd", "Wolverhampton FC", "3", "1", "2", "0"},
		},
	}

	recs := NormalizeEurope(f, "season")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	rec := recs[0]
	if rec.League != "E0" || rec.LeagueKey != "e0" {
		t.Fatalf("unexpected league mapping: %+v", rec)
	}
	if rec.Date != time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected date: %v", rec.Date)
	}
	if rec.Home != "man united" || rec.Away != "wolves" {
		t.Fatalf("unexpected canonical keys: %q vs %q", rec.Home, rec.Away)
	}
	if rec.HomeRaw != "Man Utd" {
		t.Fatalf("raw name should be preserved, got %q", rec.HomeRaw)
	}
	if rec.FTHome != 3 || rec.FTAway != 1 {
		t.Fatalf("unexpected score: %d-%d", rec.FTHome, rec.FTAway)
	}
	if !rec.HalfTime.Known() || rec.HalfTime.Home != 2 {
		t.Fatalf("unexpected half-time: %+v", rec.HalfTime)
	}
	if rec.Source != "season" {
		t.Fatalf("unexpected source tag: %q", rec.Source)
	}
}

func TestNormalizeEuropeDropsMalformedRows(t *testing.T) {
	t.Parallel()

	f := Frame{
		Headers: []string{"Div", "Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG"},
		Rows: [][]string{
			{"E0", "not-a-date", "Arsenal", "Wolves", "1", "1"},
			{"E0", "14/09/2024", "", "Wolves", "1", "1"},
			{"E0", "14/09/2024", "Arsenal", "", "1", "1"},
			{"E0", "14/09/2024", "Arsenal", "Wolves", "", "1"},
			{"E0", "14/09/2024", "Arsenal", "Wolves", "x", "1"},
			{"E0", "14/09/2024", "Arsenal", "Wolves", "2", "1"},
		},
	}

	recs := NormalizeEurope(f, "season")
	if len(recs) != 1 {
		t.Fatalf("expected only the well-formed row, got %d", len(recs))
	}
	if recs[0].FTHome != 2 {
		t.Fatalf("kept the wrong row: %+v", recs[0])
	}
}

func TestNormalizeEuropeHalfTimeMissing(t *testing.T) {
	t.Parallel()

	f := Frame{
		Headers: []string{"Div", "Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG", "HTHG", "HTAG"},
		Rows: [][]string{
			{"E0", "14/09/2024", "Arsenal", "Wolves", "2", "1", "", ""},
		},
	}

	recs := NormalizeEurope(f, "season")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].HalfTime.Status != match.HalfTimeMissing {
		t.Fatalf("expected missing half-time, got %v", recs[0].HalfTime.Status)
	}
}

func TestNormalizeWorld(t *testing.T) {
	t.Parallel()

	f := Frame{
		Headers: []string{"Country", "League", "Season", "Date", "Home", "Away", "HG", "AG"},
		Rows: [][]string{
			{"Brazil", "Serie A", "2025", "02/03/2025", "Flamengo", "Santos FC", "2", "2"},
		},
	}

	recs := NormalizeWorld(f, "world")
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}

	rec := recs[0]
	if rec.League != "Brazil_Serie A" {
		t.Fatalf("unexpected composite league: %q", rec.League)
	}
	if rec.LeagueKey != "brazil-serie-a" {
		t.Fatalf("unexpected league key: %q", rec.LeagueKey)
	}
	if rec.HalfTime.Status != match.HalfTimeNotTracked {
		t.Fatalf("world rows must mark half-time not tracked, got %v", rec.HalfTime.Status)
	}
	if rec.Away != "santos" {
		t.Fatalf("unexpected away key: %q", rec.Away)
	}
}

func TestParseDayFirstDate(t *testing.T) {
	t.Parallel()

	got, ok := parseDayFirstDate("05/04/2024")
	if !ok || got != time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("day-first parse failed: %v %v", got, ok)
	}
	if _, ok := parseDayFirstDate("31/31/2024"); ok {
		t.Fatalf("impossible date should not parse")
	}
	if _, ok := parseDayFirstDate(""); ok {
		t.Fatalf("empty date should not parse")
	}
}
