package dashboard

// RankTier is one rung of the contest ladder. A rating belongs to the first
// tier whose Below bound exceeds it; the last tier has no bound.
type RankTier struct {
	Name  string
	Below int
}

// RankLadder lists contest tiers from lowest to highest.
var RankLadder = []RankTier{
	{Name: "Newbie", Below: 1200},
	{Name: "Pupil", Below: 1400},
	{Name: "Specialist", Below: 1600},
	{Name: "Expert", Below: 1900},
	{Name: "Candidate Master", Below: 2100},
	{Name: "Master", Below: 2300},
	{Name: "International Master", Below: 2400},
	{Name: "Grandmaster"},
}

// ContestRank maps a contest rating to its tier name.
func ContestRank(rating int) string {
	for _, tier := range RankLadder {
		if tier.Below == 0 || rating < tier.Below {
			return tier.Name
		}
	}
	return RankLadder[len(RankLadder)-1].Name
}
