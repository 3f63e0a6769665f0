package identity

// teamAliases maps normalized live-market names to the canonical names used by
// the historical dataset. Left side is the already-normalized market spelling.
// Keep entries precise; over-general replacements corrupt unrelated clubs.
var teamAliases = map[string]string{
	"lincoln city":       "lincoln",
	"burton albion":      "burton",
	"peterborough":       "peterboro",
	"sheff wed":          "sheffield weds",
	"sheff utd":          "sheffield united",
	"bristol rovers":     "bristol rvs",
	"salford city":       "salford",
	"man utd":            "man united",
	"manchester united":  "man united",
	"wolverhampton":      "wolves",
	"usl dunkerque":      "dunkerque",
	"aris thessaloniki":  "aris",
	"1 magdeburg":        "magdeburg",
	"nfc volos":          "volos nfc",
	"red bull salzburg":  "salzburg",
	"atromitos athens":   "atromitos",
	"psg":                "paris",
	"ac milan":           "milan",
	"inter milan":        "inter",
}
