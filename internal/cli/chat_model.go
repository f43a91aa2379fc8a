package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/cli/formatter"
	"github.com/alexanderramin/coach/internal/domain"
)

const chatHelp = "enter send · ↑/↓ history · tab next variant · esc minimize · ctrl+o open/close · ctrl+c quit · /help commands"

const slashHelp = `Commands:
  /variant [name]  show or set the code variant
  /quick [n]       list quick questions or ask number n
  /topics          list known topics
  /min             minimize the chat
  /close           close the chat
  /help            show this help
  /quit            exit`

// chatModel is the terminal chat surface. Replies are delivered through a
// teaClock so every session mutation happens inside Update.
type chatModel struct {
	ctx     context.Context
	app     *App
	sess    *assistant.Session
	clock   *teaClock
	input   textinput.Model
	spinner spinner.Model
	history *inputHistory
	notice  string
	width   int
}

func newChatModel(ctx context.Context, app *App) (*chatModel, error) {
	clock := newTeaClock()
	sess, err := app.Factory.New(ctx, clock)
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about algorithms, data structures, interviews..."
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &chatModel{ctx: ctx, app: app, sess: sess, clock: clock, input: ti, spinner: sp,
		history: newInputHistory(app.HistoryPath), width: 80}, nil
}

func (m *chatModel) Init() tea.Cmd {
	m.sess.Open()
	return tea.Batch(append(m.clock.cmds(), textinput.Blink)...)
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case timerFiredMsg:
		m.clock.fire(msg.id)
		return m, m.pendingCmds()

	case flushTimersMsg:
		m.clock.fireAll()
		return m, nil

	case spinner.TickMsg:
		if !m.sess.Composing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+o":
		m.sess.Toggle()
		return m, m.pendingCmds()
	case "esc":
		switch m.sess.Surface() {
		case domain.SurfaceOpen:
			m.sess.Minimize()
		case domain.SurfaceMinimized:
			m.sess.Restore()
		}
		return m, nil
	}

	if m.sess.Surface() != domain.SurfaceOpen {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyUp:
		if line, ok := m.history.prev(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil
	case tea.KeyDown:
		m.input.SetValue(m.history.next())
		m.input.CursorEnd()
		return m, nil
	case tea.KeyTab:
		m.setVariant(m.sess.Variant().Next())
		return m, nil
	case tea.KeyEnter:
		draft := m.input.Value()
		if !assistant.CanSubmit(draft) {
			return m, nil
		}
		m.input.Reset()
		m.history.add(draft)
		m.notice = ""
		if strings.HasPrefix(strings.TrimSpace(draft), "/") {
			return m.runSlash(strings.TrimSpace(draft))
		}
		if err := m.sess.Submit(draft); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		return m, m.pendingCmds()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) runSlash(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/help":
		m.notice = slashHelp
	case "/min":
		m.sess.Minimize()
	case "/close":
		m.sess.Close()
	case "/topics":
		recent, err := m.sess.RecentTopics(m.ctx)
		if err != nil {
			m.app.logger().Warn("loading recent topics", zap.Error(err))
		}
		m.notice = strings.TrimRight(formatter.FormatTopicList(formatter.TopicRows(m.app.Knowledge), recent), "\n")
	case "/variant":
		if len(args) == 0 {
			m.notice = "Current variant: " + formatter.VariantBadge(m.sess.Variant())
			break
		}
		v, err := domain.ParseVariant(args[0])
		if err != nil {
			m.notice = err.Error()
			break
		}
		m.setVariant(v)
	case "/quick":
		if len(args) == 0 {
			m.notice = strings.TrimRight(formatter.FormatQuickList(quickItems()), "\n")
			break
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			m.notice = fmt.Sprintf("not a number: %q", args[0])
			break
		}
		if err := askQuick(m.sess, n); err != nil {
			m.notice = err.Error()
			break
		}
		return m, m.pendingCmds()
	default:
		m.notice = fmt.Sprintf("unknown command %s (try /help)", name)
	}
	return m, nil
}

func (m *chatModel) setVariant(v domain.Variant) {
	if err := m.sess.SetVariant(m.ctx, v); err != nil {
		m.notice = err.Error()
	}
}

// pendingCmds turns newly scheduled tasks into ticks and keeps the spinner
// running while a reply is composing.
func (m *chatModel) pendingCmds() tea.Cmd {
	cmds := m.clock.cmds()
	if m.sess.Composing() {
		cmds = append(cmds, m.spinner.Tick)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Coach"))
	b.WriteString(" ")
	b.WriteString(formatter.VariantBadge(m.sess.Variant()))
	b.WriteString(" ")
	b.WriteString(formatter.SurfacePill(m.sess.Surface()))
	b.WriteString(" ")
	b.WriteString(formatter.TruncID(m.sess.ID()))
	b.WriteString("\n")

	switch m.sess.Surface() {
	case domain.SurfaceClosed:
		b.WriteString(formatter.Dim("Chat is closed. Press ctrl+o to open or ctrl+c to quit."))
		b.WriteString("\n")
		return b.String()
	case domain.SurfaceMinimized:
		b.WriteString(formatter.Dim("Chat is minimized. Press esc to restore."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, msg := range m.sess.History() {
		b.WriteString(formatter.FormatChatMessage(msg))
		b.WriteString("\n\n")
	}
	if m.sess.Composing() {
		b.WriteString(formatter.FormatTyping(m.spinner.View()))
		b.WriteString("\n\n")
	}
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(formatter.Dim(chatHelp))
	b.WriteString("\n")
	return b.String()
}

func quickItems() []formatter.QuickItem {
	qs := assistant.QuickQuestions()
	items := make([]formatter.QuickItem, len(qs))
	for i, q := range qs {
		items[i] = formatter.QuickItem{Label: q.Label, Question: q.Question}
	}
	return items
}

var errQuickRange = errors.New("quick question out of range")

// askQuick submits the 1-based quick question n.
func askQuick(sess *assistant.Session, n int) error {
	total := len(assistant.QuickQuestions())
	if n < 1 || n > total {
		return fmt.Errorf("%w: must be between 1 and %d", errQuickRange, total)
	}
	return sess.AskIndex(n - 1)
}
