package ingest

import (
	"sort"

	"github.com/matchscreener/matchscreener/internal/domain/match"
)

// Merge de-duplicates overlay records into base. When both carry the same
// (date, home, away, league) key the overlay row supersedes the base row:
// the latest-results feed corrects season files. Base rows keep their
// relative position, so precedence ordering stays stable for equal dates.
func Merge(base, overlay []match.Record) []match.Record {
	out := make([]match.Record, 0, len(base)+len(overlay))
	index := make(map[match.Key]int, len(base)+len(overlay))

	for _, recs := range [][]match.Record{base, overlay} {
		for _, rec := range recs {
			key := rec.Key()
			if at, seen := index[key]; seen {
				out[at] = rec
				continue
			}
			index[key] = len(out)
			out = append(out, rec)
		}
	}

	return SortByDate(out)
}

// SortByDate orders records ascending by date, stably. Only the date ordering
// is guaranteed to consumers.
func SortByDate(records []match.Record) []match.Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}

// Concat appends record sets without de-duplication, for sources whose key
// ranges do not overlap (distinct seasons).
func Concat(sets ...[]match.Record) []match.Record {
	var total int
	for _, s := range sets {
		total += len(s)
	}
	out := make([]match.Record, 0, total)
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
