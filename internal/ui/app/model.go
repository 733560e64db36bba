package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "kqtrainer/internal/modules/auth/dto"
	feedbackdto "kqtrainer/internal/modules/feedback/dto"
	plandomain "kqtrainer/internal/modules/plan/domain"
	plandto "kqtrainer/internal/modules/plan/dto"
	"kqtrainer/internal/ui/components"
	"kqtrainer/internal/ui/theme"
	accountview "kqtrainer/internal/ui/views/account"
	feedbackview "kqtrainer/internal/ui/views/feedback"
	planview "kqtrainer/internal/ui/views/plan"
	rosterview "kqtrainer/internal/ui/views/roster"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Status(ctx context.Context) (authdto.StatusOutput, error)
}

type planPort interface {
	Fetch(ctx context.Context, userID string) (plandto.PlanOutput, error)
	BeginEdit(ctx context.Context, userID string) (plandto.PlanOutput, error)
	SetDayFocus(dayIdx int, focus string) (plandto.PlanOutput, error)
	SetDayNotes(dayIdx int, notes string) (plandto.PlanOutput, error)
	SetExerciseName(dayIdx, exIdx int, name string) (plandto.PlanOutput, error)
	SetExerciseField(dayIdx, exIdx int, field plandomain.ExerciseField, value int) (plandto.PlanOutput, error)
	ClearExerciseField(dayIdx, exIdx int, field plandomain.ExerciseField) (plandto.PlanOutput, error)
	ToggleRest(dayIdx int) (plandto.PlanOutput, error)
	RemoveExercise(dayIdx, exIdx int) (plandto.PlanOutput, error)
	Save(ctx context.Context) (plandto.PlanOutput, error)
	Discard() (plandto.PlanOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabClients tabID = iota
	tabPlan
	tabFeedback
	tabAdmin
	tabCount
)

var tabLabels = [tabCount]string{
	"Clients", "Plan", "Feedback", "Admin",
}

// ─── async messages ───────────────────────────────────────────────────────────

type authStatusMsg struct {
	status authdto.StatusOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Plan     key.Binding
	Feedback key.Binding
	Search   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Plan:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "open plan")),
		Feedback: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "compose feedback")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search clients")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Search},
		{k.Plan, k.Feedback},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help
// overlay, and the command palette. Business logic stays behind port
// interfaces; rendering is delegated to sub-views.
type Model struct {
	auth authPort
	plan planPort

	rosterView   rosterview.Model
	planView     planview.Model
	feedbackView feedbackview.Model
	accountView  accountview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	trainer   string
	status    string
	// pendingRemove holds a (day, exercise) pair awaiting y/n confirmation.
	pendingRemove *[2]int
	width         int
	height        int
}

func NewModel(
	auth authPort,
	roster rosterview.RosterPort,
	plan planPort,
	feedback feedbackview.FeedbackPort,
	account accountview.AccountPort,
) Model {
	return Model{
		auth:         auth,
		plan:         plan,
		rosterView:   rosterview.New(roster),
		planView:     planview.New(planPortBridge{p: plan}),
		feedbackView: feedbackview.New(feedback),
		accountView:  accountview.New(account),
		activeTab:    tabClients,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.rosterView.Init(), m.loadAuthCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case authStatusMsg:
		switch {
		case msg.err != nil:
			m.status = "auth: " + msg.err.Error()
		case msg.status.Expired:
			m.status = "session expired — run kqtrainer login"
		case msg.status.LoggedIn:
			m.trainer = msg.status.Email
			m.status = "ready"
		default:
			m.status = "not logged in — run kqtrainer login"
		}

	case planview.SavedMsg:
		if msg.Err != nil {
			m.status = "plan save failed: " + msg.Err.Error()
		} else {
			m.status = "plan saved"
		}
		var cmd tea.Cmd
		m.planView, cmd = m.planView.Update(msg)
		return m, cmd

	case feedbackview.SubmittedMsg:
		if msg.Err != nil {
			m.status = "feedback: " + msg.Err.Error()
		} else {
			m.status = "feedback sent"
		}
		var cmd tea.Cmd
		m.feedbackView, cmd = m.feedbackView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.pendingRemove != nil {
			day, ex := m.pendingRemove[0], m.pendingRemove[1]
			m.pendingRemove = nil
			if msg.String() == "y" {
				m.status = "ready"
				return m, m.planEditCmd(func() (plandto.PlanOutput, error) {
					return m.plan.RemoveExercise(day, ex)
				})
			}
			m.status = "removal cancelled"
			return m, nil
		}

		// Yield to sub-views while the user is typing into them.
		if m.subViewTyping() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "p":
			if m.activeTab == tabClients {
				if id, ok := m.rosterView.SelectedClientID(); ok {
					m.activeTab = tabPlan
					cmds = append(cmds, m.planView.Load(id))
				}
			}
		case "f":
			if m.activeTab == tabClients {
				if id, ok := m.rosterView.SelectedClientID(); ok {
					sessions := sessionRefs(m.rosterView)
					m.activeTab = tabFeedback
					cmds = append(cmds, m.feedbackView.Begin(id, m.rosterView.SelectedClientName(), sessions))
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabClients:
		m.rosterView, tabCmd = m.rosterView.Update(msg)
	case tabPlan:
		m.planView, tabCmd = m.planView.Update(msg)
	case tabFeedback:
		m.feedbackView, tabCmd = m.feedbackView.Update(msg)
	case tabAdmin:
		m.accountView, tabCmd = m.accountView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabClients:
		return m.rosterView.View()
	case tabPlan:
		return m.planView.View()
	case tabFeedback:
		return m.feedbackView.View()
	case tabAdmin:
		return m.accountView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "kqtrainer  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.trainer != "" {
		left = theme.Hot.Render("● "+m.trainer) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "clients:refresh":
		m.activeTab = tabClients
		return m, m.rosterView.Refresh(false)

	case "clients:offline":
		m.activeTab = tabClients
		return m, m.rosterView.Refresh(true)

	case "clients:stats":
		m.activeTab = tabClients
		m.status = "switched to Clients tab"
		return m, nil

	case "perf:days":
		if len(parts) < 2 {
			m.status = "usage: perf:days <n>"
			return m, nil
		}
		days, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid day count"
			return m, nil
		}
		m.activeTab = tabClients
		return m, m.rosterView.SetWindowDays(days)

	case "plan:edit":
		id, ok := m.rosterView.SelectedClientID()
		if !ok {
			m.status = "no client selected"
			return m, nil
		}
		m.activeTab = tabPlan
		return m, m.planView.BeginEdit(id)

	case "plan:focus", "plan:notes":
		if len(parts) < 3 {
			m.status = "usage: " + parts[0] + " <day> <text>"
			return m, nil
		}
		day, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid day index"
			return m, nil
		}
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		m.activeTab = tabPlan
		if parts[0] == "plan:focus" {
			return m, m.planEditCmd(func() (plandto.PlanOutput, error) {
				return m.plan.SetDayFocus(day, text)
			})
		}
		return m, m.planEditCmd(func() (plandto.PlanOutput, error) {
			return m.plan.SetDayNotes(day, text)
		})

	case "plan:name":
		if len(parts) < 4 {
			m.status = "usage: plan:name <day> <exercise> <text>"
			return m, nil
		}
		day, err1 := strconv.Atoi(parts[1])
		ex, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			m.status = "invalid index"
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]+" "+parts[2]))
		m.activeTab = tabPlan
		return m, m.planEditCmd(func() (plandto.PlanOutput, error) {
			return m.plan.SetExerciseName(day, ex, name)
		})

	case "plan:set":
		if len(parts) < 5 {
			m.status = "usage: plan:set <day> <exercise> <field> <n>"
			return m, nil
		}
		day, err1 := strconv.Atoi(parts[1])
		ex, err2 := strconv.Atoi(parts[2])
		value, err3 := strconv.Atoi(parts[4])
		if err1 != nil || err2 != nil || err3 != nil {
			m.status = "invalid number"
			return m, nil
		}
		field := plandomain.ExerciseField(parts[3])
		m.activeTab = tabPlan
		return m, m.planEditCmd(func() (plandto.PlanOutput, error) {
			return m.plan.SetExerciseField(day, ex, field, value)
		})

	case "plan:clear":
		if len(parts) < 4 {
			m.status = "usage: plan:clear <day> <exercise> <field>"
			return m, nil
		}
		day, err1 := strconv.Atoi(parts[1])
		ex, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			m.status = "invalid index"
			return m, nil
		}
		field := plandomain.ExerciseField(parts[3])
		m.activeTab = tabPlan
		return m, m.planEditCmd(func() (plandto.PlanOutput, error) {
			return m.plan.ClearExerciseField(day, ex, field)
		})

	case "plan:toggle-rest":
		day := m.planView.DayIndex()
		if len(parts) >= 2 {
			if d, err := strconv.Atoi(parts[1]); err == nil {
				day = d
			}
		}
		m.activeTab = tabPlan
		return m, m.planEditCmd(func() (plandto.PlanOutput, error) {
			return m.plan.ToggleRest(day)
		})

	case "plan:remove":
		if len(parts) < 3 {
			m.status = "usage: plan:remove <day> <exercise>"
			return m, nil
		}
		day, err1 := strconv.Atoi(parts[1])
		ex, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			m.status = "invalid index"
			return m, nil
		}
		m.activeTab = tabPlan
		m.pendingRemove = &[2]int{day, ex}
		m.status = "remove exercise " + parts[2] + " from day " + parts[1] + "? y to confirm"
		return m, nil

	case "plan:save":
		m.activeTab = tabPlan
		return m, m.planView.Save()

	case "plan:discard":
		m.activeTab = tabPlan
		return m, m.planEditCmd(m.plan.Discard)

	case "feedback:session", "feedback:template", "feedback:text", "feedback:submit":
		m.activeTab = tabFeedback
		m.status = "switched to Feedback tab"
		return m, nil

	case "user:edit":
		if len(parts) < 2 {
			m.status = "usage: user:edit <id>"
			return m, nil
		}
		m.activeTab = tabAdmin
		return m, m.accountView.Load(parts[1])

	case "user:set", "user:active", "user:submit", "user:discard":
		m.activeTab = tabAdmin
		m.status = "switched to Admin tab"
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewTyping reports whether the active tab is consuming raw text input,
// in which case global key bindings must yield.
func (m Model) subViewTyping() bool {
	switch m.activeTab {
	case tabClients:
		return m.rosterView.Searching()
	case tabFeedback:
		return m.feedbackView.Composing()
	case tabAdmin:
		return m.accountView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.rosterView, _ = m.rosterView.Update(sz)
	m.planView, _ = m.planView.Update(sz)
	m.feedbackView, _ = m.feedbackView.Update(sz)
	m.accountView, _ = m.accountView.Update(sz)
}

func sessionRefs(rv rosterview.Model) []feedbackdto.SessionRefInput {
	history := rv.PerformanceSessions()
	refs := make([]feedbackdto.SessionRefInput, 0, len(history))
	for _, h := range history {
		refs = append(refs, feedbackdto.SessionRefInput{
			SessionID: h.SessionID,
			Label:     h.Date.Format("Jan 02") + " · " + strconv.Itoa(h.DurationMinutes) + " min",
		})
	}
	return refs
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadAuthCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.auth.Status(context.Background())
		return authStatusMsg{status: status, err: err}
	}
}

// planEditCmd runs one synchronous plan edit and feeds the refreshed view
// back to the Plan tab.
func (m Model) planEditCmd(apply func() (plandto.PlanOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := apply()
		return planview.PlanLoadedMsg{Out: out, Err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// The bridge narrows the broad plan port to the minimal interface the Plan
// view needs, keeping the view free of edit-operation knowledge.

type planPortBridge struct{ p planPort }

func (b planPortBridge) Fetch(ctx context.Context, userID string) (plandto.PlanOutput, error) {
	return b.p.Fetch(ctx, userID)
}
func (b planPortBridge) BeginEdit(ctx context.Context, userID string) (plandto.PlanOutput, error) {
	return b.p.BeginEdit(ctx, userID)
}
func (b planPortBridge) Save(ctx context.Context) (plandto.PlanOutput, error) {
	return b.p.Save(ctx)
}
