package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/knowledge"
)

// TopicRow is one line of the topic listing.
type TopicRow struct {
	Topic    domain.Topic
	Title    string
	Variants []domain.Variant
}

// TopicRows lists every topic in registry order with the variants that carry
// their own snippet.
func TopicRows(kb *knowledge.Registry) []TopicRow {
	var rows []TopicRow
	for _, t := range kb.Topics() {
		e, _ := kb.Lookup(t)
		row := TopicRow{Topic: t, Title: e.Title}
		for _, v := range domain.Variants {
			if e.HasSnippet(v) {
				row.Variants = append(row.Variants, v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatTopicList renders the topic table followed by recently asked topics.
func FormatTopicList(rows []TopicRow, recent []domain.Topic) string {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		names := make([]string, 0, len(r.Variants))
		for _, v := range r.Variants {
			names = append(names, v.DisplayName())
		}
		table = append(table, []string{string(r.Topic), r.Title, Dim(strings.Join(names, ", "))})
	}

	var b strings.Builder
	b.WriteString(Header("Topics"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"TOPIC", "TITLE", "SNIPPETS"}, table))
	if len(recent) > 0 {
		parts := make([]string, 0, len(recent))
		for _, t := range recent {
			parts = append(parts, string(t))
		}
		b.WriteString("\n")
		b.WriteString(Dim("Recently asked: ") + strings.Join(parts, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

// QuickItem is a numbered shortcut question.
type QuickItem struct {
	Label    string
	Question string
}

// FormatQuickList renders shortcut questions numbered from 1.
func FormatQuickList(items []QuickItem) string {
	var b strings.Builder
	for i, q := range items {
		fmt.Fprintf(&b, "  %s %s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), Bold(q.Label), Dim("— "+q.Question))
	}
	return b.String()
}
