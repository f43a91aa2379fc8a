package render

import (
	"html"
	"strings"
)

// HTML renders segments as HTML markup. All text is escaped.
func HTML(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case KindText:
			b.WriteString(html.EscapeString(seg.Text))
		case KindBold:
			b.WriteString("<strong>")
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString("</strong>")
		case KindInlineCode:
			b.WriteString("<code>")
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString("</code>")
		case KindCodeBlock:
			b.WriteString("<pre><code>")
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString("</code></pre>")
		case KindLineBreak:
			b.WriteString("<br>")
		}
	}
	return b.String()
}

// FormatHTML parses content and renders it as HTML.
func FormatHTML(content string) string {
	return HTML(Parse(content))
}

// Plain renders segments without markup.
func Plain(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case KindLineBreak:
			b.WriteByte('\n')
		case KindCodeBlock:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte('\n')
			}
			b.WriteString(seg.Text)
		default:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
