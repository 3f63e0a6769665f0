package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matchscreener/matchscreener/internal/domain/match"
)

func sampleRecords() []match.Record {
	return []match.Record{
		{
			League:    "E0",
			LeagueKey: "E0",
			Date:      time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC),
			HomeRaw:   "Arsenal",
			AwayRaw:   "Chelsea",
			Home:      "arsenal",
			Away:      "chelsea",
			Kickoff:   "15:00",
			FTHome:    2,
			FTAway:    1,
			HalfTime:  match.HalfTime{Home: 1, Away: 0, Status: match.HalfTimeKnown},
			Source:    "latest",
		},
		{
			League:    "Brazil_Serie A",
			LeagueKey: "brazil_serie-a",
			Date:      time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC),
			HomeRaw:   "Flamengo",
			AwayRaw:   "Santos",
			Home:      "flamengo",
			Away:      "santos",
			FTHome:    0,
			FTAway:    0,
			HalfTime:  match.HalfTime{Status: match.HalfTimeNotTracked},
			Source:    "world",
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	want := sampleRecords()
	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("decoded %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	t.Parallel()

	records, err := Decode(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("decoded %d records from empty input", len(records))
	}
}

func TestStoreSaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dataset.csv")
	store := NewStore(path, nil, nil)
	ctx := context.Background()

	want := sampleRecords()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snapshot := store.Load(ctx)
	if snapshot.Len() != len(want) {
		t.Fatalf("loaded %d records, want %d", snapshot.Len(), len(want))
	}
	if snapshot.Fingerprint == "" {
		t.Fatalf("loaded snapshot has no fingerprint")
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "absent.csv"), nil, nil)
	snapshot := store.Load(context.Background())
	if !snapshot.Empty() {
		t.Fatalf("missing file yielded %d records", snapshot.Len())
	}
}

func TestStoreLoadCorruptFileYieldsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dataset.csv")
	if err := os.WriteFile(path, []byte("not,a,dataset\n1,2,3\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewStore(path, nil, nil)
	snapshot := store.Load(context.Background())
	if !snapshot.Empty() {
		t.Fatalf("corrupt file yielded %d records", snapshot.Len())
	}
}

func TestStoreLoadReusesCachedSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dataset.csv")
	cache := NewMemoryCache()
	store := NewStore(path, cache, nil)
	ctx := context.Background()

	if err := store.Save(ctx, sampleRecords()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first := store.Load(ctx)
	second := store.Load(ctx)
	if first != second {
		t.Fatalf("unchanged file was re-parsed instead of served from cache")
	}

	// A rewrite bumps mtime, which must invalidate the cached snapshot.
	time.Sleep(5 * time.Millisecond)
	if err := store.Save(ctx, sampleRecords()[:1]); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if err := os.Chtimes(path, time.Now(), time.Now().Add(time.Second)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	third := store.Load(ctx)
	if third == first {
		t.Fatalf("stale snapshot served after file change")
	}
	if third.Len() != 1 {
		t.Fatalf("reloaded %d records, want 1", third.Len())
	}
}
