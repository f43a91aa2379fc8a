package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/coach/internal/dashboard"
	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/knowledge"
)

func TestFormatDashboard(t *testing.T) {
	view := dashboard.View{
		Preferred: domain.VariantJava,
		Summary: &dashboard.Summary{
			Username: "alice", TotalSolved: 85, TotalQuestions: 400, SuccessRate: 21.3, Ranking: 1234, Streak: 3,
			Difficulties: []dashboard.DifficultyProgress{
				{Difficulty: domain.DifficultyEasy, Solved: 50, Total: 100, Percent: 50},
			},
		},
		Languages: []dashboard.Language{
			{Name: "Java", Variant: domain.VariantJava, Count: 30, Color: "#ed8b00"},
			{Name: "Go", Count: 1, Color: "#00add8"},
		},
		Contest: &dashboard.Contest{Rating: 1650, Rank: "Expert", Attended: 12},
	}
	got := stripANSI(FormatDashboard(view))

	assert.Contains(t, got, "alice")
	assert.Contains(t, got, "rank #1234")
	assert.Contains(t, got, "(21.3%)")
	assert.Contains(t, got, "Easy")
	assert.Contains(t, got, "50/100")
	assert.Contains(t, got, "Java ★")
	assert.Contains(t, got, "1 problem")
	assert.Contains(t, got, "Expert")
	assert.Contains(t, got, "12 attended")
}

func TestFormatDashboard_NoSummary(t *testing.T) {
	got := stripANSI(FormatDashboard(dashboard.View{Preferred: domain.VariantPython}))
	assert.NotContains(t, got, "PROGRESS")
	assert.Contains(t, got, "LANGUAGES")
}

func TestFormatRecentSearches(t *testing.T) {
	assert.Contains(t, stripANSI(FormatRecentSearches(nil)), "No recent searches")
	assert.Equal(t, "Recent: a, b\n", stripANSI(FormatRecentSearches([]string{"a", "b"})))
}

func TestTopicRows(t *testing.T) {
	rows := TopicRows(knowledge.Default())
	assert.Len(t, rows, knowledge.Default().Len())
	assert.Equal(t, domain.TopicBinarySearch, rows[0].Topic)
	assert.Equal(t, domain.Variants, rows[0].Variants)

	got := stripANSI(FormatTopicList(rows, []domain.Topic{domain.TopicTwoPointers}))
	assert.Contains(t, got, "binary_search")
	assert.Contains(t, got, "Recently asked: two_pointers")
}

func TestFormatQuickList(t *testing.T) {
	got := stripANSI(FormatQuickList([]QuickItem{{Label: "Big O", Question: "Explain time complexity"}}))
	assert.Equal(t, "  1. Big O — Explain time complexity\n", got)
}
