package account

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "kqtrainer/internal/modules/account/dto"
	"kqtrainer/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AccountPort interface {
	BeginEdit(ctx context.Context, userID string) (accountdto.FormOutput, error)
	SetField(field, value string) (accountdto.FormOutput, error)
	SetActive(active bool) (accountdto.FormOutput, error)
	Submit(ctx context.Context) (accountdto.FormOutput, error)
	Discard() error
}

// ─── messages ────────────────────────────────────────────────────────────────

type FormLoadedMsg struct {
	Out accountdto.FormOutput
	Err error
}

type SubmittedMsg struct {
	Out accountdto.FormOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

var fieldOrder = []string{"first_name", "last_name", "email"}

// Model is the Admin tab: a three-field form plus the active toggle.
// Tab moves between fields, space flips the toggle on its row, ctrl+s
// submits. Field errors render under their own field and clear as soon
// as the field is edited.
type Model struct {
	port     AccountPort
	form     accountdto.FormOutput
	loaded   bool
	inputs   []textinput.Model
	focusIdx int
	errLine  string
	okLine   string
	width    int
	height   int
}

func New(port AccountPort) Model {
	inputs := make([]textinput.Model, len(fieldOrder))
	for i, f := range fieldOrder {
		ti := textinput.New()
		ti.Placeholder = f
		ti.CharLimit = 256
		inputs[i] = ti
	}
	return Model{port: port, inputs: inputs, focusIdx: -1}
}

func (m Model) Init() tea.Cmd { return nil }

// Load opens the edit form for a user.
func (m Model) Load(userID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.BeginEdit(context.Background(), userID)
		return FormLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = min(m.width-20, 48)
		}

	case FormLoadedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			return m, nil
		}
		m.errLine = ""
		m.okLine = ""
		m.form = msg.Out
		m.loaded = true
		m.inputs[0].SetValue(msg.Out.FirstName)
		m.inputs[1].SetValue(msg.Out.LastName)
		m.inputs[2].SetValue(msg.Out.Email)
		m.focusIdx = 0
		cmds = append(cmds, m.inputs[0].Focus())

	case SubmittedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
			m.form = msg.Out
			return m, nil
		}
		m.errLine = ""
		m.okLine = "Saved " + msg.Out.Email
		m.form = msg.Out
		m.loaded = false
		m.focusIdx = -1
		for i := range m.inputs {
			m.inputs[i].Blur()
		}

	case tea.KeyMsg:
		if !m.loaded {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "ctrl+s":
			return m, m.submitCmd()
		case "ctrl+a":
			if out, err := m.port.SetActive(!m.form.IsActive); err == nil {
				m.form = out
			}
			return m, nil
		case "esc":
			if err := m.port.Discard(); err == nil {
				m.loaded = false
				m.focusIdx = -1
				m.okLine = ""
				m.errLine = "Changes discarded"
			}
			return m, nil
		}
		if m.focusIdx >= 0 {
			var cmd tea.Cmd
			m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
			cmds = append(cmds, cmd)
			// Push every keystroke into the form so its error clears.
			if out, err := m.port.SetField(fieldOrder[m.focusIdx], m.inputs[m.focusIdx].Value()); err == nil {
				m.form = out
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.loaded && m.okLine == "" && m.errLine == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Open a user with :user:edit <id>"))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Edit user "+m.form.UserID) + "\n\n")
	labels := []string{"First name", "Last name ", "Email     "}
	for i, input := range m.inputs {
		label := theme.Muted.Render(labels[i] + " ")
		sb.WriteString(label + input.View() + "\n")
		if msg, ok := m.form.FieldErrors[fieldOrder[i]]; ok {
			sb.WriteString("           " + theme.Poor.Render(msg) + "\n")
		}
	}
	state := theme.Poor.Render("inactive")
	if m.form.IsActive {
		state = theme.Good.Render("active")
	}
	sb.WriteString("\n" + theme.Muted.Render("Status     ") + state +
		theme.Muted.Render("  (ctrl+a to toggle)") + "\n")

	switch {
	case m.errLine != "":
		sb.WriteString("\n" + theme.Poor.Render(m.errLine))
	case m.okLine != "":
		sb.WriteString("\n" + theme.Good.Render(m.okLine))
	case m.loaded:
		sb.WriteString("\n" + theme.Muted.Render("tab: next field  ctrl+s: save  esc: discard"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// Editing reports whether a text field is focused, so global keys yield.
func (m Model) Editing() bool { return m.loaded && m.focusIdx >= 0 }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) moveFocus(delta int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = (m.focusIdx + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focusIdx].Focus()
}

func (m Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Submit(context.Background())
		return SubmittedMsg{Out: out, Err: err}
	}
}
