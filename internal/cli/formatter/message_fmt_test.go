package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/coach/internal/domain"
)

func TestRenderMessage_StripsMarkers(t *testing.T) {
	got := stripANSI(RenderMessage("**Binary Search**\n\nUse `mid` carefully."))
	assert.Equal(t, "Binary Search\n\nUse mid carefully.", got)
}

func TestRenderMessage_CodeBlock(t *testing.T) {
	got := stripANSI(RenderMessage("**Python Implementation:**\n```python\ndef f():\n    return 1\n```\n\nDone"))

	assert.NotContains(t, got, "```")
	assert.NotContains(t, got, "**")
	assert.Contains(t, got, "python\n")
	assert.Contains(t, got, "def f():")
	assert.Contains(t, got, "    return 1")
	assert.True(t, strings.HasSuffix(got, "\n\nDone"))
}

func TestRenderMessage_LiteralWhenUnterminated(t *testing.T) {
	got := stripANSI(RenderMessage("a **b and `c"))
	assert.Equal(t, "a **b and `c", got)
}

func TestFormatChatMessage(t *testing.T) {
	user := domain.Message{Sender: domain.SenderUser, Kind: domain.KindUser, Content: "hi **there**"}
	assert.Equal(t, "You: hi **there**", stripANSI(FormatChatMessage(user)), "user text is shown verbatim")

	reply := domain.Message{Sender: domain.SenderAssistant, Kind: domain.KindReply, Content: "**Hey**"}
	assert.Equal(t, "Coach: Hey", stripANSI(FormatChatMessage(reply)))
}

func TestFormatTyping(t *testing.T) {
	assert.Contains(t, stripANSI(FormatTyping("⠋")), "Coach is typing...")
}
