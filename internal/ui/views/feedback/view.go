package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	feedbackdto "kqtrainer/internal/modules/feedback/dto"
	"kqtrainer/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type FeedbackPort interface {
	Begin(clientID string, sessions []feedbackdto.SessionRefInput) feedbackdto.ComposerOutput
	SelectSession(sessionID string) (feedbackdto.ComposerOutput, error)
	SetText(text string) (feedbackdto.ComposerOutput, error)
	ApplyTemplate(idx int) (feedbackdto.ComposerOutput, error)
	Templates() []string
	Submit(ctx context.Context) (feedbackdto.ComposerOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SubmittedMsg struct {
	Out feedbackdto.ComposerOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the Feedback tab: pick a session, write or pre-fill text,
// submit. The draft lives in the feedback module; the textarea mirrors it.
type Model struct {
	port       FeedbackPort
	draft      feedbackdto.ComposerOutput
	clientName string
	started    bool
	text       textarea.Model
	errLine    string
	okLine     string
	width      int
	height     int
}

func New(port FeedbackPort) Model {
	ta := textarea.New()
	ta.Placeholder = "Write feedback, or press 1-4 for a template…"
	ta.CharLimit = 2000
	return Model{port: port, text: ta}
}

func (m Model) Init() tea.Cmd { return nil }

// Begin seeds a draft for a client with the given selectable sessions.
func (m *Model) Begin(clientID, clientName string, sessions []feedbackdto.SessionRefInput) tea.Cmd {
	m.draft = m.port.Begin(clientID, sessions)
	m.clientName = clientName
	m.started = true
	m.errLine = ""
	m.okLine = ""
	m.text.SetValue("")
	return m.text.Focus()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.text.SetWidth(m.width - 6)
		m.text.SetHeight(m.height / 3)

	case SubmittedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		} else {
			m.errLine = ""
			m.okLine = "Feedback sent"
			m.draft = msg.Out
			m.text.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		if !m.started {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+s":
			return m, m.submitCmd()
		case "ctrl+t":
			// Cycle sessions with ctrl+t; small lists, no list widget needed.
			if next, ok := m.nextSession(); ok {
				out, err := m.port.SelectSession(next)
				if err == nil {
					m.draft = out
				}
			}
			return m, nil
		case "1", "2", "3", "4":
			if m.text.Value() == "" {
				idx := int(msg.String()[0] - '1')
				if out, err := m.port.ApplyTemplate(idx); err == nil {
					m.draft = out
					m.text.SetValue(out.Text)
				}
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		cmds = append(cmds, cmd)
		// Mirror keystrokes into the draft so validation sees them.
		if out, err := m.port.SetText(m.text.Value()); err == nil {
			m.draft = out
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.started {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Select a client on the Clients tab and press f"))
	}

	var sb strings.Builder
	who := m.clientName
	if who == "" {
		who = m.draft.ClientID
	}
	sb.WriteString(theme.Title.Render("Feedback for "+who) + "\n\n")

	sb.WriteString(theme.Muted.Render("session (ctrl+t to cycle):") + "\n")
	for _, s := range m.draft.Sessions {
		marker := "  "
		style := theme.Muted
		if s.SessionID == m.draft.SelectedSession {
			marker = "> "
			style = theme.Hot
		}
		label := s.Label
		if label == "" {
			label = s.SessionID
		}
		sb.WriteString(style.Render(marker+label) + "\n")
	}

	sb.WriteString("\n" + m.text.View() + "\n\n")

	for i, t := range m.port.Templates() {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d: %s", i+1, t)) + "\n")
	}

	switch {
	case m.errLine != "":
		sb.WriteString("\n" + theme.Poor.Render(m.errLine))
	case m.okLine != "":
		sb.WriteString("\n" + theme.Good.Render(m.okLine))
	case m.draft.CanSubmit:
		sb.WriteString("\n" + theme.Good.Render("ctrl+s to submit"))
	default:
		sb.WriteString("\n" + theme.Muted.Render("pick a session and write something to submit"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Composing reports whether the textarea is focused, so global keys yield.
func (m Model) Composing() bool { return m.started && m.text.Focused() }

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) nextSession() (string, bool) {
	if len(m.draft.Sessions) == 0 {
		return "", false
	}
	if m.draft.SelectedSession == "" {
		return m.draft.Sessions[0].SessionID, true
	}
	for i, s := range m.draft.Sessions {
		if s.SessionID == m.draft.SelectedSession {
			return m.draft.Sessions[(i+1)%len(m.draft.Sessions)].SessionID, true
		}
	}
	return m.draft.Sessions[0].SessionID, true
}

func (m Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Submit(context.Background())
		return SubmittedMsg{Out: out, Err: err}
	}
}
