package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchscreener/matchscreener/internal/domain/identity"
	"github.com/matchscreener/matchscreener/internal/domain/match"
	"github.com/matchscreener/matchscreener/internal/domain/stats"
)

// StatsService answers direct aggregate queries against the current
// snapshot. Unknown teams are not errors: they produce zero-count blocks.
type StatsService struct {
	data DatasetReader
}

func NewStatsService(data DatasetReader) *StatsService {
	return &StatsService{data: data}
}

func (s *StatsService) TeamStats(ctx context.Context, team, league string, window int, includeExamples bool) (stats.TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.TeamStats")
	defer span.End()

	if strings.TrimSpace(team) == "" {
		return stats.TeamStats{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}

	snapshot := s.data.Load(ctx)
	return stats.Team(snapshot.Records, stats.TeamQuery{
		Key:             identity.NormalizeTeam(team),
		League:          strings.TrimSpace(league),
		Window:          window,
		IncludeExamples: includeExamples,
	}), nil
}

func (s *StatsService) HeadToHead(ctx context.Context, teamA, teamB, league string, window int) (stats.H2HStats, []stats.MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.HeadToHead")
	defer span.End()

	if strings.TrimSpace(teamA) == "" || strings.TrimSpace(teamB) == "" {
		return stats.H2HStats{}, nil, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}

	query := stats.H2HQuery{
		KeyA:   identity.NormalizeTeam(teamA),
		KeyB:   identity.NormalizeTeam(teamB),
		League: strings.TrimSpace(league),
		Window: window,
	}

	snapshot := s.data.Load(ctx)
	return stats.HeadToHead(snapshot.Records, query), stats.HeadToHeadMatches(snapshot.Records, query), nil
}

func (s *StatsService) LeagueOverview(ctx context.Context, code string, window int) (stats.LeagueStats, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.LeagueOverview")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return stats.LeagueStats{}, fmt.Errorf("%w: league code is required", ErrInvalidInput)
	}

	snapshot := s.data.Load(ctx)
	return stats.League(snapshot.Records, code, window), nil
}

// Export returns the merged dataset, optionally filtered to one division
// code. An empty dataset is ErrDataUnavailable so callers can signal that a
// refresh has not run yet.
func (s *StatsService) Export(ctx context.Context, division string) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.Export")
	defer span.End()

	snapshot := s.data.Load(ctx)
	if snapshot.Empty() {
		return nil, fmt.Errorf("%w: run a refresh first", ErrDataUnavailable)
	}

	division = strings.TrimSpace(division)
	if division == "" {
		return snapshot.Records, nil
	}

	var out []match.Record
	for _, r := range snapshot.Records {
		if r.League == division {
			out = append(out, r)
		}
	}
	return out, nil
}
