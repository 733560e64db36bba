package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plandto "kqtrainer/internal/modules/plan/dto"
	"kqtrainer/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PlanPort interface {
	Fetch(ctx context.Context, userID string) (plandto.PlanOutput, error)
	BeginEdit(ctx context.Context, userID string) (plandto.PlanOutput, error)
	Save(ctx context.Context) (plandto.PlanOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// PlanLoadedMsg carries any refreshed view of the plan: a fetch, an edit
// operation's result, or a save.
type PlanLoadedMsg struct {
	Out plandto.PlanOutput
	Err error
}

// SavedMsg signals a completed save so the app can update its status bar.
type SavedMsg struct {
	Out plandto.PlanOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the Plan tab. It renders the authoritative plan, or the working
// copy while an edit session is open. Mutations arrive via the command
// palette; this view only tracks the day cursor and draws.
type Model struct {
	port    PlanPort
	plan    plandto.PlanOutput
	loaded  bool
	dayIdx  int
	body    viewport.Model
	errLine string
	width   int
	height  int
}

func New(port PlanPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{port: port, body: vp}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 4
		m.body.SetContent(m.renderPlan())

	case PlanLoadedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		} else {
			m.errLine = ""
			m.plan = msg.Out
			m.loaded = true
			if m.dayIdx >= len(m.plan.Data.Days) {
				m.dayIdx = 0
			}
		}
		m.body.SetContent(m.renderPlan())

	case SavedMsg:
		if msg.Err != nil {
			m.errLine = msg.Err.Error()
		} else {
			m.errLine = ""
			m.plan = msg.Out
			m.loaded = true
		}
		m.body.SetContent(m.renderPlan())

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.dayIdx < len(m.plan.Data.Days)-1 {
				m.dayIdx++
				m.body.SetContent(m.renderPlan())
			}
		case "k", "up":
			if m.dayIdx > 0 {
				m.dayIdx--
				m.body.SetContent(m.renderPlan())
			}
		}
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := m.renderHeader()
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 3).
		Render(m.body.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, pane)
}

// DayIndex is the day currently under the cursor, for palette commands
// that default to it.
func (m Model) DayIndex() int { return m.dayIdx }

// Editing reports whether the rendered plan is an open working copy.
func (m Model) Editing() bool { return m.plan.Editing }

// Load fetches the plan for a client.
func (m Model) Load(userID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Fetch(context.Background(), userID)
		return PlanLoadedMsg{Out: out, Err: err}
	}
}

// BeginEdit opens an edit session over the client's latest plan.
func (m Model) BeginEdit(userID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.BeginEdit(context.Background(), userID)
		return PlanLoadedMsg{Out: out, Err: err}
	}
}

// Save submits the working copy.
func (m Model) Save() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Save(context.Background())
		return SavedMsg{Out: out, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderHeader() string {
	var parts []string
	if m.plan.Editing {
		label := " EDITING "
		if m.plan.Dirty {
			label = " EDITING* "
		}
		parts = append(parts, theme.Hot.Render(label))
	}
	if m.loaded {
		parts = append(parts, theme.Title.Render("Plan "+m.plan.UserID))
		if m.plan.HasData {
			parts = append(parts, theme.Muted.Render(fmt.Sprintf("%s  based on %d workouts",
				m.plan.Data.FitnessLevel, m.plan.Data.BasedOnWorkouts)))
		}
	} else {
		parts = append(parts, theme.Muted.Render("No plan loaded — select a client and press p"))
	}
	if m.errLine != "" {
		parts = append(parts, theme.Poor.Render(m.errLine))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderPlan() string {
	if !m.loaded {
		return theme.Muted.Render("Nothing here yet")
	}
	if !m.plan.HasData {
		return theme.Muted.Render("This client has no active workout plan")
	}

	var sb strings.Builder
	for i, d := range m.plan.Data.Days {
		marker := "  "
		style := theme.Muted
		if i == m.dayIdx {
			marker = "> "
			style = theme.Title
		}
		head := fmt.Sprintf("%s[%d] %s — %s", marker, i, d.DayName, d.Focus)
		if d.IsRest {
			head += "  (rest)"
		} else {
			head += fmt.Sprintf("  %d min", d.EstimatedDurationMinutes)
		}
		sb.WriteString(style.Render(head) + "\n")
		if d.Notes != "" {
			sb.WriteString("      " + theme.Muted.Render(d.Notes) + "\n")
		}
		for j, e := range d.Exercises {
			sb.WriteString(fmt.Sprintf("      [%d] %s%s\n", j, e.Name, exerciseSuffix(e)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(theme.Muted.Render("j/k: move  :plan:… to edit"))
	return sb.String()
}

// exerciseSuffix renders only the fields the exercise actually has.
func exerciseSuffix(e plandto.ExerciseOutput) string {
	var parts []string
	if e.Sets != nil {
		parts = append(parts, fmt.Sprintf("%d sets", *e.Sets))
	}
	if e.Reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *e.Reps))
	}
	if e.Duration != nil {
		parts = append(parts, fmt.Sprintf("%ds", *e.Duration))
	}
	if e.Rest != nil {
		parts = append(parts, fmt.Sprintf("%ds rest", *e.Rest))
	}
	if len(parts) == 0 {
		return ""
	}
	return "  " + theme.Muted.Render(strings.Join(parts, " · "))
}
