// Package dataset persists the merged match snapshot as a CSV file and
// serves it back with modification-time change detection.
package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/matchscreener/matchscreener/internal/domain/match"
)

const dateLayout = "2006-01-02"

var columns = []string{
	"league", "league_key", "date", "home_raw", "away_raw", "home", "away",
	"kickoff", "fthg", "ftag", "hthg", "htag", "ht_status", "source",
}

func htStatusLabel(s match.HalfTimeStatus) string {
	switch s {
	case match.HalfTimeKnown:
		return "known"
	case match.HalfTimeNotTracked:
		return "untracked"
	default:
		return "missing"
	}
}

func parseHTStatus(s string) (match.HalfTimeStatus, error) {
	switch s {
	case "known":
		return match.HalfTimeKnown, nil
	case "missing":
		return match.HalfTimeMissing, nil
	case "untracked":
		return match.HalfTimeNotTracked, nil
	}
	return 0, errors.Newf("unknown half-time status %q", s)
}

// Encode writes records as CSV with a header row.
func Encode(w io.Writer, records []match.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return errors.Wrap(err, "write header")
	}

	row := make([]string, len(columns))
	for _, r := range records {
		row[0] = r.League
		row[1] = r.LeagueKey
		row[2] = r.Date.Format(dateLayout)
		row[3] = r.HomeRaw
		row[4] = r.AwayRaw
		row[5] = r.Home
		row[6] = r.Away
		row[7] = r.Kickoff
		row[8] = strconv.Itoa(r.FTHome)
		row[9] = strconv.Itoa(r.FTAway)
		if r.HalfTime.Known() {
			row[10] = strconv.Itoa(r.HalfTime.Home)
			row[11] = strconv.Itoa(r.HalfTime.Away)
		} else {
			row[10] = ""
			row[11] = ""
		}
		row[12] = htStatusLabel(r.HalfTime.Status)
		row[13] = r.Source
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush")
}

// Decode reads a CSV stream produced by Encode.
func Decode(r io.Reader) ([]match.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if len(header) != len(columns) {
		return nil, errors.Newf("header has %d columns, want %d", len(header), len(columns))
	}

	var records []match.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}

		rec, err := decodeRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		records = append(records, rec)
	}

	return records, nil
}

func decodeRow(row []string) (match.Record, error) {
	date, err := time.Parse(dateLayout, row[2])
	if err != nil {
		return match.Record{}, errors.Wrap(err, "parse date")
	}

	fthg, err := strconv.Atoi(row[8])
	if err != nil {
		return match.Record{}, errors.Wrap(err, "parse fthg")
	}
	ftag, err := strconv.Atoi(row[9])
	if err != nil {
		return match.Record{}, errors.Wrap(err, "parse ftag")
	}

	status, err := parseHTStatus(row[12])
	if err != nil {
		return match.Record{}, err
	}

	ht := match.HalfTime{Status: status}
	if status == match.HalfTimeKnown {
		ht.Home, err = strconv.Atoi(row[10])
		if err != nil {
			return match.Record{}, errors.Wrap(err, "parse hthg")
		}
		ht.Away, err = strconv.Atoi(row[11])
		if err != nil {
			return match.Record{}, errors.Wrap(err, "parse htag")
		}
	}

	return match.Record{
		League:    row[0],
		LeagueKey: row[1],
		Date:      date,
		HomeRaw:   row[3],
		AwayRaw:   row[4],
		Home:      row[5],
		Away:      row[6],
		Kickoff:   row[7],
		FTHome:    fthg,
		FTAway:    ftag,
		HalfTime:  ht,
		Source:    row[13],
	}, nil
}
