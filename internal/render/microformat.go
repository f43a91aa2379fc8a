// Package render composes reply text and implements the chat micro-format.
//
// The micro-format has four constructs:
//
//	```lang\n...```  fenced code block (language tag optional)
//	`code`          inline code span
//	**text**        bold span
//	\n              line break
//
// Fences are recognised first and their bodies are never scanned further.
// Inline code spans are atomic. Bold pairs only within one plain-text run,
// so a bold marker never spans a line break or a code span; unmatched
// markers stay literal.
package render

import "strings"

// Kind classifies a parsed segment.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindInlineCode
	KindCodeBlock
	KindLineBreak
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindInlineCode:
		return "code"
	case KindCodeBlock:
		return "codeblock"
	case KindLineBreak:
		return "br"
	default:
		return "unknown"
	}
}

// Segment is one parsed piece of micro-format content.
type Segment struct {
	Kind Kind
	Text string
	Lang string
}

const fence = "```"

// Parse splits content into segments. Parsing is total: any input yields a
// segment list and unterminated constructs degrade to literal text.
func Parse(content string) []Segment {
	var out []Segment
	rest := content
	for rest != "" {
		start, lang, bodyStart := findFenceOpen(rest)
		if start < 0 {
			out = appendLines(out, rest)
			break
		}
		end := strings.Index(rest[bodyStart:], fence)
		if end < 0 {
			out = appendLines(out, rest)
			break
		}
		out = appendLines(out, rest[:start])
		body := rest[bodyStart : bodyStart+end]
		body = strings.TrimSuffix(body, "\n")
		out = append(out, Segment{Kind: KindCodeBlock, Text: body, Lang: lang})
		rest = rest[bodyStart+end+len(fence):]
	}
	return mergeText(out)
}

// findFenceOpen locates the first "```" followed by an optional word tag and
// a newline. It returns the fence offset, the tag, and where the body begins.
func findFenceOpen(s string) (start int, lang string, bodyStart int) {
	offset := 0
	for {
		i := strings.Index(s[offset:], fence)
		if i < 0 {
			return -1, "", 0
		}
		i += offset
		j := i + len(fence)
		k := j
		for k < len(s) && isWordByte(s[k]) {
			k++
		}
		if k < len(s) && s[k] == '\n' {
			return i, s[j:k], k + 1
		}
		offset = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func appendLines(out []Segment, s string) []Segment {
	if s == "" {
		return out
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			out = append(out, Segment{Kind: KindLineBreak})
		}
		out = appendInline(out, line)
	}
	return out
}

// appendInline splits one line into inline code spans and bold-scanned text.
func appendInline(out []Segment, line string) []Segment {
	for line != "" {
		open := strings.IndexByte(line, '`')
		if open < 0 {
			return appendBold(out, line)
		}
		closeAt := strings.IndexByte(line[open+1:], '`')
		if closeAt < 0 {
			return appendBold(out, line)
		}
		if closeAt == 0 {
			// Empty span: keep both ticks literal and continue after them.
			out = appendBold(out, line[:open+2])
			line = line[open+2:]
			continue
		}
		out = appendBold(out, line[:open])
		out = append(out, Segment{Kind: KindInlineCode, Text: line[open+1 : open+1+closeAt]})
		line = line[open+1+closeAt+1:]
	}
	return out
}

func appendBold(out []Segment, text string) []Segment {
	for text != "" {
		open := strings.Index(text, "**")
		if open < 0 {
			break
		}
		closeAt := strings.Index(text[open+2:], "**")
		if closeAt < 0 {
			break
		}
		if closeAt == 0 {
			out = append(out, Segment{Kind: KindText, Text: text[:open+4]})
			text = text[open+4:]
			continue
		}
		if open > 0 {
			out = append(out, Segment{Kind: KindText, Text: text[:open]})
		}
		out = append(out, Segment{Kind: KindBold, Text: text[open+2 : open+2+closeAt]})
		text = text[open+2+closeAt+2:]
	}
	if text != "" {
		out = append(out, Segment{Kind: KindText, Text: text})
	}
	return out
}

func mergeText(in []Segment) []Segment {
	out := in[:0]
	for _, seg := range in {
		if seg.Kind == KindText && seg.Text == "" {
			continue
		}
		if n := len(out); n > 0 && seg.Kind == KindText && out[n-1].Kind == KindText {
			out[n-1].Text += seg.Text
			continue
		}
		out = append(out, seg)
	}
	return out
}
