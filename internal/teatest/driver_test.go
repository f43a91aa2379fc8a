package teatest

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// echoModel records typed runes and echoes them back through a Cmd.
type echoModel struct {
	typed  strings.Builder
	echoed []string
}

func (m *echoModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return echoMsg("init") },
		tea.Tick(time.Second, func(time.Time) tea.Msg { return echoMsg("late") }),
	)
}

func (m *echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case echoMsg:
		m.echoed = append(m.echoed, string(msg))
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyRunes:
			m.typed.WriteString(string(msg.Runes))
		case tea.KeyEnter:
			line := m.typed.String()
			m.typed.Reset()
			return m, func() tea.Msg { return echoMsg(line) }
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *echoModel) View() string {
	return "\x1b[1m" + strings.Join(m.echoed, ",") + "\x1b[0m"
}

func TestDriver_DrainsImmediateAndSkipsTimers(t *testing.T) {
	m := &echoModel{}
	d := New(t, m)
	d.DrainInit()

	assert.Equal(t, []string{"init"}, m.echoed)
	assert.Equal(t, 1, d.Skipped)
}

func TestDriver_SubmitAndPlainView(t *testing.T) {
	d := New(t, &echoModel{})
	d.Submit("hi")

	assert.Equal(t, "hi", d.PlainView())
	assert.True(t, d.Contains("hi"))
	assert.Contains(t, d.View(), "\x1b[1m")
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	m := &echoModel{}
	d := New(t, m)
	d.PressCtrlC()
	assert.True(t, d.Quitting)

	d.Submit("ignored")
	assert.Empty(t, m.echoed)
}
