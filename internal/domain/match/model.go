package match

import "time"

// Half-time availability states. Missing means the source carries half-time
// columns but the row had no parseable values; NotTracked means the source
// never reports half-time scores (world-league feeds).
type HalfTimeStatus int

const (
	HalfTimeKnown HalfTimeStatus = iota
	HalfTimeMissing
	HalfTimeNotTracked
)

// HalfTime holds the score at the interval. Home/Away are meaningful only
// when Status == HalfTimeKnown.
type HalfTime struct {
	Home   int
	Away   int
	Status HalfTimeStatus
}

func (h HalfTime) Known() bool {
	return h.Status == HalfTimeKnown
}

// Record is one completed historical match. Records are immutable once
// materialized; merging supersedes rows, it never mutates them.
type Record struct {
	// League is the division code as published by the feed, e.g. "E0" or
	// "Brazil_Serie A" for world leagues.
	League string
	// LeagueKey is the normalized league identifier used for de-duplication.
	LeagueKey string
	Date      time.Time
	// HomeRaw/AwayRaw keep the feed's spelling; Home/Away are the canonical
	// keys produced by the identity normalizer.
	HomeRaw  string
	AwayRaw  string
	Home     string
	Away     string
	// Kickoff is the feed's kick-off time of day, kept verbatim for export.
	Kickoff  string
	FTHome   int
	FTAway   int
	HalfTime HalfTime
	// Source tags the feed the row came from ("season", "latest", "world", ...).
	Source string
}

func (r Record) TotalGoals() int {
	return r.FTHome + r.FTAway
}

// Key identifies a match across sources for de-duplication.
type Key struct {
	Date      time.Time
	Home      string
	Away      string
	LeagueKey string
}

func (r Record) Key() Key {
	return Key{Date: r.Date, Home: r.Home, Away: r.Away, LeagueKey: r.LeagueKey}
}

// Snapshot is the process-wide canonical dataset: every merged record in
// ascending date order. It is built wholesale on refresh and replaced as a
// unit; readers never see partial state.
type Snapshot struct {
	Records []Record
	// Fingerprint identifies the backing store state the snapshot was loaded
	// from (file modification time).
	Fingerprint string
}

func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Records) == 0
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
