package render

import (
	"strings"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/knowledge"
)

// Compose builds the reply text for entry in variant v. When the entry has
// no snippet for v the default-variant snippet is used and labelled with the
// default variant's name. Compose is deterministic.
func Compose(entry *knowledge.Entry, v domain.Variant) string {
	sections := []string{"**" + entry.Title + "**", entry.Explanation}

	if facts := composeFacts(entry.Facts); facts != "" {
		sections = append(sections, facts)
	}

	snip, fellBack := entry.Snippet(v)
	label := v
	if fellBack {
		label = domain.DefaultVariant
	}
	if snip.Code {
		sections = append(sections, "**"+label.DisplayName()+" Implementation:**\n"+
			fence+label.FenceTag()+"\n"+snip.Body+"\n"+fence)
	} else {
		sections = append(sections, "**"+label.DisplayName()+" Notes:** "+snip.Body)
	}

	if entry.Tip != "" {
		sections = append(sections, "**💡 Pro Tip:** "+entry.Tip)
	}
	if entry.Closing != "" {
		sections = append(sections, entry.Closing)
	}
	return strings.Join(sections, "\n\n")
}

// composeFacts lists facts one per line. Multi-line values are set off by
// blank lines.
func composeFacts(facts []knowledge.Fact) string {
	var b strings.Builder
	prevBlock := false
	for i, f := range facts {
		block := strings.Contains(f.Value, "\n")
		if i > 0 {
			if block || prevBlock {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString("**" + f.Label + ":**")
		if !strings.HasPrefix(f.Value, "\n") {
			b.WriteString(" ")
		}
		b.WriteString(f.Value)
		prevBlock = block
	}
	return b.String()
}
