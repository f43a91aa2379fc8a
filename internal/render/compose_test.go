package render

import (
	"strings"
	"testing"

	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, topic domain.Topic) *knowledge.Entry {
	t.Helper()
	e, ok := knowledge.Default().Lookup(topic)
	require.True(t, ok, "topic %s missing", topic)
	return e
}

func TestCompose_BinarySearchPython(t *testing.T) {
	out := Compose(lookup(t, domain.TopicBinarySearch), domain.VariantPython)

	assert.True(t, strings.HasPrefix(out, "**Binary Search Algorithm**\n\n"))
	assert.Contains(t, out, "**Time Complexity:** O(log n)\n**Space Complexity:** O(1)")
	assert.Contains(t, out, "**Python Implementation:**\n```python\ndef binary_search(arr, target):")
	assert.Contains(t, out, "**💡 Pro Tip:** Always remember to check if the array is sorted first!")
}

func TestCompose_UsesVariantFenceTag(t *testing.T) {
	out := Compose(lookup(t, domain.TopicBinarySearch), domain.VariantCpp)

	assert.Contains(t, out, "**C++ Implementation:**")
	var blocks []Segment
	for _, seg := range Parse(out) {
		if seg.Kind == KindCodeBlock {
			blocks = append(blocks, seg)
		}
	}
	require.Len(t, blocks, 1)
	assert.Equal(t, "cpp", blocks[0].Lang)
}

func TestCompose_FallsBackToDefaultVariant(t *testing.T) {
	out := Compose(lookup(t, domain.TopicTwoPointers), domain.VariantCpp)

	assert.Contains(t, out, "**Python Implementation:**\n```python\ndef two_sum_sorted")
	assert.NotContains(t, out, "C++")
}

func TestCompose_TextSnippet(t *testing.T) {
	out := Compose(lookup(t, domain.TopicStudyPlan), domain.VariantCpp)

	assert.Contains(t, out, "**C++ Notes:** Master the STL first")
	assert.Contains(t, out, "**For Beginners:**\n• Start with Arrays and Strings")
	assert.True(t, strings.HasSuffix(out, "Which level matches your current skills?"))
}

func TestCompose_Deterministic(t *testing.T) {
	for _, topic := range domain.Topics {
		e := lookup(t, topic)
		for _, v := range domain.Variants {
			assert.Equal(t, Compose(e, v), Compose(e, v), "%s/%s", topic, v)
		}
	}
}

func TestCompose_BlockFactsSeparated(t *testing.T) {
	out := Compose(lookup(t, domain.TopicDynamicProgramming), domain.VariantJavaScript)

	assert.Contains(t, out, "**Approach:**\n1. Define the problem recursively")
	assert.Contains(t, out, "4. Build up solutions bottom-up\n\n**Common Examples:** Fibonacci")
	assert.Contains(t, out, "```javascript\nfunction fib(n, memo = new Map()) {")
}
