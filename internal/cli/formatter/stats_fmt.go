package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/coach/internal/dashboard"
	"github.com/alexanderramin/coach/internal/domain"
)

var difficultyStyles = map[domain.Difficulty]lipgloss.Style{
	domain.DifficultyEasy:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
	domain.DifficultyMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
	domain.DifficultyHard:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
}

// FormatDashboard renders the summary, difficulty bars, language breakdown
// and contest panel.
func FormatDashboard(v dashboard.View) string {
	var b strings.Builder

	if s := v.Summary; s != nil {
		lines := []string{
			fmt.Sprintf("%s  %s", Bold(s.Username), Dim(fmt.Sprintf("rank #%d", s.Ranking))),
			fmt.Sprintf("Solved %s of %d  %s  Streak %s",
				Bold(fmt.Sprint(s.TotalSolved)), s.TotalQuestions,
				Dim(fmt.Sprintf("(%.1f%%)", s.SuccessRate)),
				Bold(fmt.Sprintf("%d", s.Streak))),
			"",
		}
		for _, d := range s.Difficulties {
			label := strings.ToUpper(string(d.Difficulty[:1])) + string(d.Difficulty[1:])
			lines = append(lines, fmt.Sprintf("%-7s %s %s",
				difficultyStyles[d.Difficulty].Render(label),
				RenderProgress(d.Percent, 20),
				Dim(fmt.Sprintf("%d/%d", d.Solved, d.Total))))
		}
		b.WriteString(RenderBox("Progress", strings.Join(lines, "\n")))
		b.WriteString("\n\n")
	}

	rows := make([][]string, 0, len(v.Languages))
	for _, l := range v.Languages {
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("●") + " " + l.Name
		if l.Variant != "" && l.Variant == v.Preferred {
			name += StyleGreen.Render(" ★")
		}
		rows = append(rows, []string{name, Plural(l.Count, "problem")})
	}
	b.WriteString(Header("Languages"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"LANGUAGE", "SOLVED"}, rows))

	if c := v.Contest; c != nil {
		b.WriteString("\n")
		b.WriteString(Header("Contests"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Rating %s  %s  %s\n",
			Bold(fmt.Sprint(c.Rating)), StylePurple.Render(c.Rank), Dim(fmt.Sprintf("%d attended", c.Attended)))
	}
	return b.String()
}

// FormatRecentSearches renders recently loaded usernames.
func FormatRecentSearches(names []string) string {
	if len(names) == 0 {
		return Dim("No recent searches.") + "\n"
	}
	return Dim("Recent: ") + strings.Join(names, ", ") + "\n"
}
