package identity

import "strings"

// diacriticFold maps the Latin diacritics seen across the historical feeds
// (Norwegian, Spanish, French, German, Portuguese) onto ASCII.
var diacriticFold = map[rune]string{
	'ø': "o", 'å': "a", 'æ': "ae",
	'ö': "o", 'ä': "a", 'ü': "u",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'á': "a", 'à': "a", 'â': "a", 'ã': "a",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'õ': "o",
	'ú': "u", 'ù': "u", 'û': "u",
	'ç': "c", 'ñ': "n",
}

var punctuationReplacer = strings.NewReplacer(
	"&", "and",
	"-", " ",
	"/", " ",
	"'", "",
	".", "",
)

// clubSuffixes are generic club-form tokens that differ between market and
// historical spellings and carry no identity.
var clubSuffixes = map[string]struct{}{
	"fc":   {},
	"cf":   {},
	"sc":   {},
	"afc":  {},
	"c.f.": {},
}

// NormalizeTeam canonicalizes a freeform team name so the same club matches
// across the live-market and historical feeds. Empty or suffix-only input
// canonicalizes to ""; callers must treat an empty key as matching nothing.
func NormalizeTeam(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var folded strings.Builder
	folded.Grow(len(s))
	for _, r := range s {
		if repl, ok := diacriticFold[r]; ok {
			folded.WriteString(repl)
			continue
		}
		folded.WriteRune(r)
	}

	s = punctuationReplacer.Replace(folded.String())

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, drop := clubSuffixes[w]; drop {
			continue
		}
		kept = append(kept, w)
	}

	return applyTeamAlias(strings.Join(kept, " "))
}

// applyTeamAlias resolves spelling mismatches that survive generic
// normalization. Exact match only; anything else passes through unchanged.
func applyTeamAlias(norm string) string {
	if canonical, ok := teamAliases[norm]; ok {
		return canonical
	}
	return norm
}
