package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_DrawsLabelAndClearsOnStop(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Coach is typing...")
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, stripANSI(out), "Coach is typing...")
	assert.True(t, strings.HasSuffix(out, clearLine))
}
