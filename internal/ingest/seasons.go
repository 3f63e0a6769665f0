package ingest

import "sort"

// LatestTwoSeasons filters the world-leagues frame down to the two
// most-recent seasons per (country, league), keyed on the feed's Season
// column. Rows without a season survive; they cannot be ranked.
func LatestTwoSeasons(f Frame) Frame {
	season := findColumn(f.Headers, "season")
	country := findColumn(f.Headers, "country")
	league := findColumn(f.Headers, "league")
	if season < 0 {
		return f
	}

	type groupKey struct{ country, league string }

	seasonsByGroup := make(map[groupKey]map[string]struct{})
	for _, row := range f.Rows {
		s := cell(row, season)
		if s == "" {
			continue
		}
		key := groupKey{cell(row, country), cell(row, league)}
		if seasonsByGroup[key] == nil {
			seasonsByGroup[key] = make(map[string]struct{})
		}
		seasonsByGroup[key][s] = struct{}{}
	}

	keep := make(map[groupKey]map[string]struct{}, len(seasonsByGroup))
	for key, set := range seasonsByGroup {
		seasons := make([]string, 0, len(set))
		for s := range set {
			seasons = append(seasons, s)
		}
		// Season labels sort lexically in the feed ("2023/2024" < "2024/2025").
		sort.Sort(sort.Reverse(sort.StringSlice(seasons)))
		if len(seasons) > 2 {
			seasons = seasons[:2]
		}
		kept := make(map[string]struct{}, len(seasons))
		for _, s := range seasons {
			kept[s] = struct{}{}
		}
		keep[key] = kept
	}

	rows := make([][]string, 0, len(f.Rows))
	for _, row := range f.Rows {
		s := cell(row, season)
		if s == "" {
			rows = append(rows, row)
			continue
		}
		key := groupKey{cell(row, country), cell(row, league)}
		if _, ok := keep[key][s]; ok {
			rows = append(rows, row)
		}
	}

	return Frame{Headers: f.Headers, Rows: rows}
}
