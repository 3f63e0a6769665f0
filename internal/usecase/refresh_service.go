package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/matchscreener/matchscreener/internal/domain/identity"
	"github.com/matchscreener/matchscreener/internal/domain/match"
	"github.com/matchscreener/matchscreener/internal/ingest"
	"github.com/matchscreener/matchscreener/internal/platform/logging"
)

const feedFetchConcurrency = 6

// Source tags stamped onto records so the merged dataset keeps feed
// provenance.
const (
	sourceSeason      = "season"
	sourcePrevious    = "previous"
	sourceLatest      = "latest"
	sourceWorld       = "world"
	sourceWorldLatest = "world-latest"
)

// RefreshResult reports what a dataset rebuild produced.
type RefreshResult struct {
	Records    int    `json:"rows"`
	SeasonCode string `json:"season_code"`
}

// RefreshService rebuilds the merged dataset from all feeds and persists it.
type RefreshService struct {
	feeds  HistoricalFeedProvider
	store  DatasetWriter
	logger *logging.Logger
	now    func() time.Time
}

func NewRefreshService(feeds HistoricalFeedProvider, store DatasetWriter, logger *logging.Logger) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{
		feeds:  feeds,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// seasonCode derives the two-digit year pair for the season starting in the
// given calendar year, e.g. 2025 -> "2526".
func seasonCode(startYear int) string {
	return fmt.Sprintf("%02d%02d", startYear%100, (startYear+1)%100)
}

// Refresh fetches every feed, merges with the documented precedence and
// saves the result. Individual feed failures degrade the dataset; only a
// fully empty result or a failed save is an error.
func (s *RefreshService) Refresh(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.Refresh")
	defer span.End()

	startYear := s.now().UTC().Year()

	// Current season, falling back one year when nothing is published yet
	// (early in a calendar year the new season's files do not exist).
	code := seasonCode(startYear)
	current := s.fetchEuropeSeason(ctx, code, sourceSeason)
	if len(current) == 0 {
		startYear--
		code = seasonCode(startYear)
		current = s.fetchEuropeSeason(ctx, code, sourceSeason)
	}

	var (
		previous, latest         []match.Record
		worldSeason, worldLatest []match.Record
	)

	p := pool.New().WithMaxGoroutines(feedFetchConcurrency)
	p.Go(func() {
		previous = s.fetchEuropeSeason(ctx, seasonCode(startYear-1), sourcePrevious)
	})
	p.Go(func() {
		frame, err := s.feeds.FetchLatestResults(ctx, code)
		if err != nil {
			s.logger.WarnContext(ctx, "latest results feed skipped", "season", code, "error", err)
			return
		}
		latest = ingest.NormalizeEurope(frame, sourceLatest)
	})
	p.Go(func() {
		frame, err := s.feeds.FetchWorldSeason(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "world season feed skipped", "error", err)
			return
		}
		worldSeason = ingest.NormalizeWorld(ingest.LatestTwoSeasons(frame), sourceWorld)
	})
	p.Go(func() {
		frame, err := s.feeds.FetchWorldLatest(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "world latest feed skipped", "error", err)
			return
		}
		worldLatest = ingest.NormalizeWorld(frame, sourceWorldLatest)
	})
	p.Wait()

	europe := ingest.Merge(current, latest)
	world := ingest.Merge(worldSeason, worldLatest)
	merged := ingest.SortByDate(ingest.Concat(europe, previous, world))

	if len(merged) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: no feed produced any records", ErrDataUnavailable)
	}

	if err := s.store.Save(ctx, merged); err != nil {
		return RefreshResult{}, fmt.Errorf("save dataset: %w", err)
	}

	s.logger.InfoContext(ctx, "dataset refreshed",
		"records", len(merged),
		"season", code,
		"europe", len(europe)+len(previous),
		"world", len(world),
	)
	return RefreshResult{Records: len(merged), SeasonCode: code}, nil
}

// fetchEuropeSeason pulls every known division file for one season
// concurrently, normalizes each and concatenates. Missing divisions are
// skipped.
func (s *RefreshService) fetchEuropeSeason(ctx context.Context, code, source string) []match.Record {
	divisions := identity.EuropeDivisions()
	perDivision := make([][]match.Record, len(divisions))

	p := pool.New().WithMaxGoroutines(feedFetchConcurrency)
	for i, division := range divisions {
		p.Go(func() {
			frame, err := s.feeds.FetchDivision(ctx, code, division)
			if err != nil {
				s.logger.DebugContext(ctx, "division feed skipped", "season", code, "division", division, "error", err)
				return
			}
			perDivision[i] = ingest.NormalizeEurope(frame, source)
		})
	}
	p.Wait()

	return ingest.Concat(perDivision...)
}
