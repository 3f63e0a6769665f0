package identity

import (
	"regexp"
	"strings"
)

type leagueEntry struct {
	Slug string
	Code string
}

// leagueTable maps live-market league slugs onto historical division codes.
// Order matters: reverse lookup takes the first slug for a code.
var leagueTable = []leagueEntry{
	// England
	{"england-premier-league", "E0"},
	{"england-championship", "E1"},
	{"england-league-1", "E2"},
	{"england-league-2", "E3"},
	{"england-national-league", "E4"},

	// Scotland
	{"scotland-premiership", "SC0"},
	{"scotland-championship", "SC1"},
	{"scotland-league-one", "SC2"},
	{"scotland-league-two", "SC3"},

	// Germany
	{"germany-bundesliga", "D1"},
	{"germany-2-bundesliga", "D2"},

	// Italy
	{"italy-serie-a", "I1"},
	{"italy-serie-b", "I2"},

	// Spain
	{"spain-la-liga", "SP1"},
	{"spain-la-liga-2", "SP2"},

	// France
	{"france-ligue-1", "F1"},
	{"france-ligue-2", "F2"},

	// Netherlands
	{"netherlands-eredivisie", "N1"},

	// Belgium
	{"belgium-first-division-a", "B1"},

	// Portugal
	{"portugal-primeira-liga", "P1"},

	// Turkey
	{"turkey-super-lig", "T1"},

	// Greece
	{"greece-super-league", "G1"},
}

var slugToCode = func() map[string]string {
	m := make(map[string]string, len(leagueTable))
	for _, e := range leagueTable {
		m[e.Slug] = e.Code
	}
	return m
}()

// Market event paths look like /sport/football/leagues/italy-serie-a/....
var leagueSlugPattern = regexp.MustCompile(`/leagues/([^/]+)/`)

// ResolveLeagueCode extracts the league slug from a market event path and
// resolves it to a division code. Unknown or absent slug resolves to "".
func ResolveLeagueCode(fullSlug string) string {
	if fullSlug == "" {
		return ""
	}
	m := leagueSlugPattern.FindStringSubmatch(strings.ToLower(fullSlug))
	if m == nil {
		return ""
	}
	return slugToCode[m[1]]
}

// LeagueName returns a display name for a division code by prettifying the
// first slug that maps to it. Codes without a slug fall back to the code.
func LeagueName(code string) string {
	if code == "" {
		return ""
	}
	for _, e := range leagueTable {
		if e.Code == code {
			return titleCase(strings.ReplaceAll(e.Slug, "-", " "))
		}
	}
	return code
}

// EuropeDivisions lists the known historical division codes in table order,
// without duplicates. The feed fetcher iterates these.
func EuropeDivisions() []string {
	seen := make(map[string]struct{}, len(leagueTable))
	out := make([]string, 0, len(leagueTable))
	for _, e := range leagueTable {
		if _, ok := seen[e.Code]; ok {
			continue
		}
		seen[e.Code] = struct{}{}
		out = append(out, e.Code)
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
