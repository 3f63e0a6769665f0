package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/matchscreener/matchscreener/internal/domain/match"
)

func TestTeamStatsValidatesAndNormalizes(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{snapshot: &match.Snapshot{Records: []match.Record{
		historyRecord(1, "arsenal", "chelsea", 2, 1),
		historyRecord(8, "arsenal", "fulham", 1, 1),
	}}}
	svc := NewStatsService(reader)

	if _, err := svc.TeamStats(context.Background(), "  ", "", 0, false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank team error = %v, want ErrInvalidInput", err)
	}

	// Raw display name must hit the same rows as the canonical key.
	got, err := svc.TeamStats(context.Background(), "Arsenal FC", "", 0, false)
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if got.N != 2 {
		t.Fatalf("n = %d, want 2", got.N)
	}
	if got.Team != "arsenal" {
		t.Fatalf("team key = %q, want arsenal", got.Team)
	}
}

func TestTeamStatsUnknownTeamIsZeroBlock(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{snapshot: &match.Snapshot{Records: []match.Record{
		historyRecord(1, "arsenal", "chelsea", 2, 1),
	}}}
	svc := NewStatsService(reader)

	got, err := svc.TeamStats(context.Background(), "Nonexistent United", "", 0, false)
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if got.N != 0 {
		t.Fatalf("unknown team n = %d, want 0", got.N)
	}
}

func TestHeadToHeadValidation(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(&fakeReader{})
	if _, _, err := svc.HeadToHead(context.Background(), "Arsenal", "", "", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestHeadToHeadAggregateAndListAgree(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{snapshot: &match.Snapshot{Records: []match.Record{
		historyRecord(1, "arsenal", "chelsea", 2, 1),
		historyRecord(8, "chelsea", "arsenal", 0, 0),
		historyRecord(15, "arsenal", "fulham", 3, 0),
	}}}
	svc := NewStatsService(reader)

	agg, matches, err := svc.HeadToHead(context.Background(), "Arsenal", "Chelsea", "", 0)
	if err != nil {
		t.Fatalf("HeadToHead: %v", err)
	}
	if agg.N != 2 || len(matches) != 2 {
		t.Fatalf("aggregate n=%d list=%d, want both 2", agg.N, len(matches))
	}
}

func TestLeagueOverviewValidation(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(&fakeReader{})
	if _, err := svc.LeagueOverview(context.Background(), " ", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestExportFiltersByDivision(t *testing.T) {
	t.Parallel()

	worldRow := historyRecord(20, "flamengo", "santos", 1, 0)
	worldRow.League = "Brazil_Serie A"
	worldRow.LeagueKey = "brazil-serie-a"

	reader := &fakeReader{snapshot: &match.Snapshot{Records: []match.Record{
		historyRecord(1, "arsenal", "chelsea", 2, 1),
		worldRow,
	}}}
	svc := NewStatsService(reader)

	all, err := svc.Export(context.Background(), "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered export = %d records, want 2", len(all))
	}

	only, err := svc.Export(context.Background(), "E0")
	if err != nil {
		t.Fatalf("Export div=E0: %v", err)
	}
	if len(only) != 1 || only[0].League != "E0" {
		t.Fatalf("filtered export = %+v", only)
	}
}

func TestExportEmptyDataset(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(&fakeReader{})
	if _, err := svc.Export(context.Background(), ""); !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("error = %v, want ErrDataUnavailable", err)
	}
}
