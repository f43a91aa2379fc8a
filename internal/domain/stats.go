package domain

// StatsRecord is the per-user statistics payload consumed by the dashboard.
type StatsRecord struct {
	Username     string
	EasySolved   int
	TotalEasy    int
	MediumSolved int
	TotalMedium  int
	HardSolved   int
	TotalHard    int
	Ranking      int
	Streak       int
}

// TotalSolved sums solved problems across difficulties.
func (s StatsRecord) TotalSolved() int {
	return s.EasySolved + s.MediumSolved + s.HardSolved
}

// TotalQuestions sums available problems across difficulties.
func (s StatsRecord) TotalQuestions() int {
	return s.TotalEasy + s.TotalMedium + s.TotalHard
}

// SuccessRate returns solved/total as a percentage, 0 when no totals are known.
func (s StatsRecord) SuccessRate() float64 {
	total := s.TotalQuestions()
	if total == 0 {
		return 0
	}
	return float64(s.TotalSolved()) / float64(total) * 100
}

// Difficulty is one of the three problem difficulty buckets.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Progress returns solved, total and percentage for a difficulty.
func (s StatsRecord) Progress(d Difficulty) (solved, total int, pct float64) {
	switch d {
	case DifficultyEasy:
		solved, total = s.EasySolved, s.TotalEasy
	case DifficultyMedium:
		solved, total = s.MediumSolved, s.TotalMedium
	case DifficultyHard:
		solved, total = s.HardSolved, s.TotalHard
	}
	if total > 0 {
		pct = float64(solved) / float64(total) * 100
	}
	return solved, total, pct
}
