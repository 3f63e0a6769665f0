package stats

import (
	"reflect"
	"testing"

	"github.com/matchscreener/matchscreener/internal/domain/match"
)

func TestHeadToHeadScenario(t *testing.T) {
	t.Parallel()

	records := []match.Record{
		row(day(2024, 1, 1), "X", "a", "b", 2, 1),
		row(day(2024, 2, 1), "X", "a", "b", 0, 0),
	}

	got := HeadToHead(records, H2HQuery{KeyA: "a", KeyB: "b"})
	if got.N != 2 {
		t.Fatalf("unexpected n: %d", got.N)
	}
	if got.ZeroZeroRate == nil || *got.ZeroZeroRate != 0.5 {
		t.Fatalf("unexpected 0-0 rate: %v", got.ZeroZeroRate)
	}
	if got.Over05Rate == nil || *got.Over05Rate != 0.5 {
		t.Fatalf("unexpected over 0.5 rate: %v", got.Over05Rate)
	}
	if got.AvgTotalGoals == nil || *got.AvgTotalGoals != 1.5 {
		t.Fatalf("unexpected avg total goals: %v", got.AvgTotalGoals)
	}
}

func TestHeadToHeadSymmetry(t *testing.T) {
	t.Parallel()

	records := []match.Record{
		row(day(2024, 1, 1), "X", "a", "b", 2, 1),
		row(day(2024, 2, 1), "X", "b", "a", 3, 0),
		row(day(2024, 3, 1), "X", "a", "c", 1, 1),
	}

	ab := HeadToHead(records, H2HQuery{KeyA: "a", KeyB: "b"})
	ba := HeadToHead(records, H2HQuery{KeyA: "b", KeyB: "a"})
	if !reflect.DeepEqual(derefH2H(ab), derefH2H(ba)) {
		t.Fatalf("head-to-head not symmetric: %+v vs %+v", ab, ba)
	}
	if ab.N != 2 {
		t.Fatalf("third-party fixture leaked into pairing: n=%d", ab.N)
	}
}

func TestHeadToHeadEmptyPairing(t *testing.T) {
	t.Parallel()

	records := []match.Record{
		row(day(2024, 1, 1), "X", "a", "c", 2, 1),
	}

	got := HeadToHead(records, H2HQuery{KeyA: "a", KeyB: "b"})
	if got.N != 0 || got.ZeroZeroRate != nil || got.AvgTotalGoals != nil {
		t.Fatalf("empty pairing must yield zero-count block: %+v", got)
	}

	if got := HeadToHead(records, H2HQuery{KeyA: "", KeyB: "b"}); got.N != 0 {
		t.Fatalf("empty key must match nothing: %+v", got)
	}
}

func TestHeadToHeadMatchesConsistentWithAggregate(t *testing.T) {
	t.Parallel()

	records := []match.Record{
		row(day(2024, 1, 1), "X", "a", "b", 2, 1),
		row(day(2024, 2, 1), "X", "b", "a", 0, 0),
		row(day(2024, 3, 1), "X", "a", "b", 1, 0),
	}

	q := H2HQuery{KeyA: "a", KeyB: "b", Window: 2}
	agg := HeadToHead(records, q)
	list := HeadToHeadMatches(records, q)

	if len(list) != agg.N {
		t.Fatalf("list and aggregate disagree: %d vs %d", len(list), agg.N)
	}
	// Newest first.
	if list[0].Date != "2024-03-01" || list[1].Date != "2024-02-01" {
		t.Fatalf("unexpected list order: %+v", list)
	}
}

func TestHeadToHeadLeagueFilter(t *testing.T) {
	t.Parallel()

	records := []match.Record{
		row(day(2024, 1, 1), "X", "a", "b", 2, 1),
		row(day(2024, 2, 1), "Y", "a", "b", 0, 0),
	}

	got := HeadToHead(records, H2HQuery{KeyA: "a", KeyB: "b", League: "Y"})
	if got.N != 1 {
		t.Fatalf("league filter not applied: n=%d", got.N)
	}
	if got.ZeroZeroRate == nil || *got.ZeroZeroRate != 1.0 {
		t.Fatalf("unexpected rate after filter: %v", got.ZeroZeroRate)
	}
}

func derefH2H(s H2HStats) [4]float64 {
	out := [4]float64{float64(s.N), -1, -1, -1}
	if s.ZeroZeroRate != nil {
		out[1] = *s.ZeroZeroRate
	}
	if s.Over05Rate != nil {
		out[2] = *s.Over05Rate
	}
	if s.AvgTotalGoals != nil {
		out[3] = *s.AvgTotalGoals
	}
	return out
}
