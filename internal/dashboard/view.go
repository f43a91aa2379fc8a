package dashboard

import (
	"math/rand/v2"
	"sort"

	"github.com/alexanderramin/coach/internal/domain"
)

// Language is one row of the language breakdown. Variant is empty for
// languages the assistant has no snippets for.
type Language struct {
	Name    string         `json:"name"`
	Variant domain.Variant `json:"variant,omitempty"`
	Count   int            `json:"count"`
	Color   string         `json:"color"`
}

// Contest holds the contest panel figures.
type Contest struct {
	Rating   int    `json:"rating"`
	Rank     string `json:"rank"`
	Attended int    `json:"attended"`
}

type DifficultyProgress struct {
	Difficulty domain.Difficulty `json:"difficulty"`
	Solved     int               `json:"solved"`
	Total      int               `json:"total"`
	Percent    float64           `json:"percent"`
}

// Summary is derived from the last fetched StatsRecord.
type Summary struct {
	Username       string               `json:"username"`
	TotalSolved    int                  `json:"total_solved"`
	TotalQuestions int                  `json:"total_questions"`
	SuccessRate    float64              `json:"success_rate"`
	Ranking        int                  `json:"ranking"`
	Streak         int                  `json:"streak"`
	Difficulties   []DifficultyProgress `json:"difficulties"`
}

// View is the full display state of the dashboard.
type View struct {
	Preferred domain.Variant `json:"preferred"`
	Summary   *Summary       `json:"summary,omitempty"`
	Languages []Language     `json:"languages"`
	Contest   *Contest       `json:"contest,omitempty"`
}

type languageSeed struct {
	name    string
	variant domain.Variant
	base    int
	spread  int
	color   string
}

var languageSeeds = []languageSeed{
	{name: "Python", variant: domain.VariantPython, base: 20, spread: 50, color: "#3776ab"},
	{name: "JavaScript", variant: domain.VariantJavaScript, base: 15, spread: 30, color: "#f7df1e"},
	{name: "Java", variant: domain.VariantJava, base: 18, spread: 40, color: "#ed8b00"},
	{name: "C++", variant: domain.VariantCpp, base: 12, spread: 25, color: "#00599c"},
	{name: "Go", base: 5, spread: 15, color: "#00add8"},
}

// drawLanguages produces per-language problem counts. The stats API does not
// report languages, so counts are sampled.
func drawLanguages(rng *rand.Rand) []Language {
	out := make([]Language, 0, len(languageSeeds))
	for _, s := range languageSeeds {
		out = append(out, Language{
			Name:    s.name,
			Variant: s.variant,
			Count:   s.base + rng.IntN(s.spread),
			Color:   s.color,
		})
	}
	return out
}

func drawContest(rng *rand.Rand) *Contest {
	rating := 1500 + rng.IntN(500)
	return &Contest{
		Rating:   rating,
		Rank:     ContestRank(rating),
		Attended: 10 + rng.IntN(50),
	}
}

// orderLanguages returns a copy of langs with preferred first. Remaining
// rows keep their relative order.
func orderLanguages(langs []Language, preferred domain.Variant) []Language {
	out := make([]Language, len(langs))
	copy(out, langs)
	sort.SliceStable(out, func(i, j int) bool {
		// 1. Preferred variant leads
		pi, pj := out[i].Variant == preferred, out[j].Variant == preferred
		if pi != pj {
			return pi
		}
		// 2. Original order otherwise
		return false
	})
	return out
}

func summarize(rec *domain.StatsRecord) *Summary {
	if rec == nil {
		return nil
	}
	s := &Summary{
		Username:       rec.Username,
		TotalSolved:    rec.TotalSolved(),
		TotalQuestions: rec.TotalQuestions(),
		SuccessRate:    rec.SuccessRate(),
		Ranking:        rec.Ranking,
		Streak:         rec.Streak,
	}
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		solved, total, pct := rec.Progress(d)
		s.Difficulties = append(s.Difficulties, DifficultyProgress{Difficulty: d, Solved: solved, Total: total, Percent: pct})
	}
	return s
}
