package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/matchscreener/matchscreener/internal/domain/identity"
	"github.com/matchscreener/matchscreener/internal/domain/match"
	"github.com/matchscreener/matchscreener/internal/domain/stats"
	"github.com/matchscreener/matchscreener/internal/platform/logging"
)

// FixtureInsight pairs one requested event with its composed insight. A nil
// Insights with a Note means the fixture could not be analyzed; the batch
// still succeeds.
type FixtureInsight struct {
	EventID  string         `json:"event_id"`
	Event    MarketEvent    `json:"event"`
	Insights *stats.Insight `json:"insights"`
	Note     string         `json:"note,omitempty"`
}

type InsightService struct {
	markets MarketDataProvider
	data    DatasetReader
	pool    *ants.Pool
	logger  *logging.Logger
}

func NewInsightService(markets MarketDataProvider, data DatasetReader, pool *ants.Pool, logger *logging.Logger) *InsightService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InsightService{
		markets: markets,
		data:    data,
		pool:    pool,
		logger:  logger,
	}
}

// GetMatchInsights composes insights for the given live-market event ids.
// Composition runs per fixture on the worker pool; a failure on one fixture
// never fails the batch.
func (s *InsightService) GetMatchInsights(ctx context.Context, ids []string, includeExamples bool) ([]FixtureInsight, error) {
	ctx, span := startUsecaseSpan(ctx, "InsightService.GetMatchInsights")
	defer span.End()

	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one event id is required", ErrInvalidInput)
	}

	events := s.resolveEvents(ctx, cleaned)
	snapshot := s.data.Load(ctx)

	out := make([]FixtureInsight, len(events))
	var wg sync.WaitGroup
	for i := range events {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			out[i] = s.composeOne(events[i], snapshot.Records, includeExamples)
		}
		if s.pool == nil || s.pool.Submit(task) != nil {
			task()
		}
	}
	wg.Wait()

	return out, nil
}

// resolveEvents hydrates each requested id with competitor names and event
// details. Lookups are best effort: on failure the entry keeps just the id.
func (s *InsightService) resolveEvents(ctx context.Context, ids []string) []MarketEvent {
	stubs := make([]MarketEvent, len(ids))
	for i, id := range ids {
		stubs[i] = MarketEvent{ID: id}
	}
	events := s.markets.EnrichCompetitors(ctx, stubs)

	for i := range events {
		detail, err := s.markets.FetchEventDetail(ctx, events[i].ID)
		if err != nil {
			s.logger.WarnContext(ctx, "event detail lookup failed", "event_id", events[i].ID, "error", err)
			continue
		}
		events[i].Name = detail.Name
		events[i].Start = detail.Start
		events[i].State = detail.State
		events[i].FullSlug = detail.FullSlug
		events[i].EventURL = detail.EventURL
		if events[i].Home == "" {
			events[i].Home = detail.Home
		}
		if events[i].Away == "" {
			events[i].Away = detail.Away
		}
	}
	return events
}

func (s *InsightService) composeOne(event MarketEvent, records []match.Record, includeExamples bool) (out FixtureInsight) {
	out = FixtureInsight{EventID: event.ID, Event: event}

	// Domain composition is pure, but a malformed fixture must not take the
	// rest of the batch down with it.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("insight composition panicked", "event_id", event.ID, "panic", fmt.Sprint(r))
			out.Insights = nil
			out.Note = "internal error"
		}
	}()

	if event.Home == "" || event.Away == "" || len(records) == 0 {
		out.Note = "missing teams or dataset"
		return out
	}

	insight := stats.Compose(records, stats.InsightQuery{
		HomeKey:         identity.NormalizeTeam(event.Home),
		AwayKey:         identity.NormalizeTeam(event.Away),
		SlugHint:        event.FullSlug,
		TeamWindow:      stats.NoLimit,
		H2HWindow:       0,
		IncludeExamples: includeExamples,
	})
	out.Insights = &insight
	return out
}
