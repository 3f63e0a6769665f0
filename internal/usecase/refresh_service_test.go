package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchscreener/matchscreener/internal/domain/match"
	"github.com/matchscreener/matchscreener/internal/ingest"
)

type fakeFeeds struct {
	divisions    map[string]map[string]ingest.Frame // seasonCode -> division -> frame
	latest       map[string]ingest.Frame
	worldSeason  ingest.Frame
	worldLatest  ingest.Frame
	worldErr     error
	divisionHits int
}

func (f *fakeFeeds) FetchDivision(_ context.Context, seasonCode, division string) (ingest.Frame, error) {
	f.divisionHits++
	if season, ok := f.divisions[seasonCode]; ok {
		if frame, ok := season[division]; ok {
			return frame, nil
		}
	}
	return ingest.Frame{}, errors.New("feed unavailable")
}

func (f *fakeFeeds) FetchLatestResults(_ context.Context, seasonCode string) (ingest.Frame, error) {
	if frame, ok := f.latest[seasonCode]; ok {
		return frame, nil
	}
	return ingest.Frame{}, errors.New("feed unavailable")
}

func (f *fakeFeeds) FetchWorldSeason(context.Context) (ingest.Frame, error) {
	if f.worldErr != nil {
		return ingest.Frame{}, f.worldErr
	}
	return f.worldSeason, nil
}

func (f *fakeFeeds) FetchWorldLatest(context.Context) (ingest.Frame, error) {
	if f.worldErr != nil {
		return ingest.Frame{}, f.worldErr
	}
	return f.worldLatest, nil
}

type fakeWriter struct {
	saved []match.Record
	err   error
}

func (w *fakeWriter) Save(_ context.Context, records []match.Record) error {
	if w.err != nil {
		return w.err
	}
	w.saved = records
	return nil
}

func europeFrame(rows ...[]string) ingest.Frame {
	return ingest.Frame{
		Headers: []string{"Div", "Date", "Time", "HomeTeam", "AwayTeam", "FTHG", "FTAG", "HTHG", "HTAG"},
		Rows:    rows,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSeasonCode(t *testing.T) {
	t.Parallel()

	if got := seasonCode(2025); got != "2526" {
		t.Fatalf("seasonCode(2025) = %q, want 2526", got)
	}
	if got := seasonCode(2099); got != "9900" {
		t.Fatalf("seasonCode(2099) = %q, want 9900", got)
	}
}

func TestRefreshMergesWithPrecedence(t *testing.T) {
	t.Parallel()

	feeds := &fakeFeeds{
		divisions: map[string]map[string]ingest.Frame{
			"2526": {
				"E0": europeFrame(
					[]string{"E0", "16/08/2025", "15:00", "Arsenal", "Chelsea", "1", "1", "0", "0"},
					[]string{"E0", "23/08/2025", "15:00", "Leeds", "Fulham", "2", "0", "1", "0"},
				),
			},
			"2425": {
				"E0": europeFrame(
					[]string{"E0", "17/08/2024", "15:00", "Arsenal", "Fulham", "3", "0", "2", "0"},
				),
			},
		},
		latest: map[string]ingest.Frame{
			// Same fixture as the season file with a corrected score.
			"2526": europeFrame(
				[]string{"E0", "16/08/2025", "15:00", "Arsenal", "Chelsea", "2", "1", "1", "0"},
			),
		},
		worldSeason: ingest.Frame{
			Headers: []string{"Country", "League", "Season", "Date", "Time", "Home", "Away", "HG", "AG"},
			Rows: [][]string{
				{"Brazil", "Serie A", "2025", "18/08/2025", "00:00", "Flamengo", "Santos", "1", "0"},
				{"Brazil", "Serie A", "2023", "18/08/2023", "00:00", "Flamengo", "Santos", "4", "4"},
				{"Brazil", "Serie A", "2024", "18/08/2024", "00:00", "Santos", "Flamengo", "0", "0"},
			},
		},
	}
	writer := &fakeWriter{}

	svc := NewRefreshService(feeds, writer, nil)
	svc.now = fixedClock(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	result, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if result.SeasonCode != "2526" {
		t.Fatalf("season code = %q, want 2526", result.SeasonCode)
	}

	// 2 current (one overlaid) + 1 previous + 2 world (2023 season dropped).
	if result.Records != 5 {
		t.Fatalf("records = %d, want 5", result.Records)
	}

	var overlay *match.Record
	for i, r := range writer.saved {
		if r.Home == "arsenal" && r.Away == "chelsea" {
			overlay = &writer.saved[i]
		}
		if i > 0 && writer.saved[i-1].Date.After(r.Date) {
			t.Fatalf("saved records not in ascending date order at %d", i)
		}
	}
	if overlay == nil {
		t.Fatalf("merged dataset lost the arsenal fixture")
	}
	if overlay.FTHome != 2 || overlay.Source != "latest" {
		t.Fatalf("latest overlay did not win: score=%d source=%s", overlay.FTHome, overlay.Source)
	}

	for _, r := range writer.saved {
		if r.Source == "world" && r.Date.Year() == 2023 {
			t.Fatalf("world feed kept a season beyond the latest two")
		}
	}
}

func TestRefreshFallsBackToPreviousSeason(t *testing.T) {
	t.Parallel()

	feeds := &fakeFeeds{
		divisions: map[string]map[string]ingest.Frame{
			// Nothing published for 2526 yet.
			"2425": {
				"E0": europeFrame(
					[]string{"E0", "17/08/2024", "15:00", "Arsenal", "Fulham", "3", "0", "2", "0"},
				),
			},
		},
	}
	writer := &fakeWriter{}

	svc := NewRefreshService(feeds, writer, nil)
	svc.now = fixedClock(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	result, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if result.SeasonCode != "2425" {
		t.Fatalf("season code = %q, want fallback 2425", result.SeasonCode)
	}
	if result.Records != 1 {
		t.Fatalf("records = %d, want 1", result.Records)
	}
}

func TestRefreshAllFeedsEmpty(t *testing.T) {
	t.Parallel()

	feeds := &fakeFeeds{worldErr: errors.New("down")}
	svc := NewRefreshService(feeds, &fakeWriter{}, nil)
	svc.now = fixedClock(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Refresh(context.Background())
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("error = %v, want ErrDataUnavailable", err)
	}
}

func TestRefreshSaveFailure(t *testing.T) {
	t.Parallel()

	feeds := &fakeFeeds{
		divisions: map[string]map[string]ingest.Frame{
			"2526": {
				"E0": europeFrame([]string{"E0", "16/08/2025", "15:00", "Arsenal", "Chelsea", "2", "1", "", ""}),
			},
		},
	}
	wantErr := errors.New("disk full")
	svc := NewRefreshService(feeds, &fakeWriter{err: wantErr}, nil)
	svc.now = fixedClock(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Refresh(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want save failure", err)
	}
}
