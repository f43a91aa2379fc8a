package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/render"
)

var (
	styleInlineCode = lipgloss.NewStyle().Foreground(ColorYellow)
	styleCodeBlock  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorDim).
			PaddingLeft(1).
			Foreground(ColorFg)
)

// RenderMessage renders micro-format content for the terminal.
func RenderMessage(content string) string {
	var b strings.Builder
	for _, seg := range render.Parse(content) {
		switch seg.Kind {
		case render.KindBold:
			b.WriteString(StyleBold.Render(seg.Text))
		case render.KindInlineCode:
			b.WriteString(styleInlineCode.Render(seg.Text))
		case render.KindCodeBlock:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
			block := styleCodeBlock.Render(seg.Text)
			if seg.Lang != "" {
				block = Dim(seg.Lang) + "\n" + block
			}
			b.WriteString(block)
		case render.KindLineBreak:
			b.WriteString("\n")
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// FormatChatMessage renders one history entry with its speaker label.
func FormatChatMessage(m domain.Message) string {
	if m.FromUser() {
		return StyleBlue.Render("You: ") + m.Content
	}
	label := StylePurple.Render("Coach: ")
	if m.Kind == domain.KindAck {
		label = StyleGreen.Render("Coach: ")
	}
	return label + RenderMessage(m.Content)
}

// FormatTyping is the composing indicator line.
func FormatTyping(frame string) string {
	return StylePurple.Render(frame) + " " + Dim("Coach is typing...")
}
