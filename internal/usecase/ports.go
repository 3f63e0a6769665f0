package usecase

import (
	"context"

	"github.com/matchscreener/matchscreener/internal/domain/match"
	"github.com/matchscreener/matchscreener/internal/ingest"
)

// MarketEvent is a live-market fixture as the services consume it. Providers
// map their wire shapes onto this.
type MarketEvent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Home     string `json:"home"`
	Away     string `json:"away"`
	Start    string `json:"start_datetime"`
	State    string `json:"state"`
	FullSlug string `json:"full_slug"`
	EventURL string `json:"event_url"`
}

// MarketDataProvider exposes the live exchange: the day's fixtures, single
// event details, and competitor name enrichment.
type MarketDataProvider interface {
	FetchEvents(ctx context.Context, day string, limit int) ([]MarketEvent, error)
	FetchEventDetail(ctx context.Context, eventID string) (MarketEvent, error)
	EnrichCompetitors(ctx context.Context, events []MarketEvent) []MarketEvent
}

// HistoricalFeedProvider downloads raw results feeds. Season codes are the
// two-digit year pairs used in feed paths ("2526").
type HistoricalFeedProvider interface {
	FetchDivision(ctx context.Context, seasonCode, division string) (ingest.Frame, error)
	FetchLatestResults(ctx context.Context, seasonCode string) (ingest.Frame, error)
	FetchWorldSeason(ctx context.Context) (ingest.Frame, error)
	FetchWorldLatest(ctx context.Context) (ingest.Frame, error)
}

// DatasetReader serves the current merged snapshot.
type DatasetReader interface {
	Load(ctx context.Context) *match.Snapshot
}

// DatasetWriter persists a rebuilt dataset.
type DatasetWriter interface {
	Save(ctx context.Context, records []match.Record) error
}
