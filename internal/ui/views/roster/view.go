package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kqtrainer/internal/modules/roster/domain"
	rosterdto "kqtrainer/internal/modules/roster/dto"
	"kqtrainer/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type RosterPort interface {
	ListClients(ctx context.Context, query string) (rosterdto.ListClientsOutput, error)
	ListClientsOffline(ctx context.Context, query string) (rosterdto.ListClientsOutput, error)
	Performance(ctx context.Context, userID string, windowDays int) (rosterdto.PerformanceOutput, error)
	DashboardStats(ctx context.Context) (rosterdto.DashboardStatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ClientsLoadedMsg struct {
	Out rosterdto.ListClientsOutput
	Err error
}

type PerformanceLoadedMsg struct {
	Perf rosterdto.PerformanceOutput
	Err  error
}

type StatsLoadedMsg struct {
	Stats rosterdto.DashboardStatsOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type clientItem struct {
	client rosterdto.ClientOutput
}

func (i clientItem) Title() string { return i.client.Name }
func (i clientItem) Description() string {
	state := "inactive"
	if i.client.IsActive {
		state = "active"
	}
	return fmt.Sprintf("%s  %s  %d workouts", i.client.Email, state, i.client.TotalWorkouts)
}
func (i clientItem) FilterValue() string { return i.client.Name + " " + i.client.Email }

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the Clients tab: searchable roster on the left, the selected
// client's performance on the right. Search goes through the roster
// usecase, which owns the name-or-email substring semantics.
type Model struct {
	port       RosterPort
	list       list.Model
	search     textinput.Model
	searching  bool
	query      string
	perf       rosterdto.PerformanceOutput
	perfFor    string
	stats      rosterdto.DashboardStatsOutput
	statsLine  string
	detail     viewport.Model
	spinner    spinner.Model
	loading    bool
	stale      bool
	staleNote  string
	windowDays int
	width      int
	height     int
}

func New(port RosterPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Blue).BorderForeground(theme.Blue)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Cyan).BorderForeground(theme.Blue)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Clients"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	// Search is handled by the roster module, not the list widget.
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "name or email…"
	ti.CharLimit = 128

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Blue)

	return Model{
		port:    port,
		list:    l,
		search:  ti,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadClientsCmd("", false), m.loadStatsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ClientsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Clients — " + msg.Err.Error()
			return m, nil
		}
		m.stale = msg.Out.Stale
		if msg.Out.Stale {
			m.staleNote = "offline snapshot from " + msg.Out.FetchedAt.Format("2006-01-02 15:04")
			m.list.Title = "Clients (offline)"
		} else {
			m.staleNote = ""
			m.list.Title = "Clients"
		}
		items := make([]list.Item, len(msg.Out.Clients))
		for i, c := range msg.Out.Clients {
			items[i] = clientItem{client: c}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Out.Clients) > 0 {
			cmds = append(cmds, m.loadPerformanceCmd(msg.Out.Clients[0].UserID))
		} else {
			m.perf = rosterdto.PerformanceOutput{}
			m.detail.SetContent(theme.Muted.Render("No clients match"))
		}

	case PerformanceLoadedMsg:
		if msg.Err == nil {
			m.perf = msg.Perf
			m.perfFor = msg.Perf.UserID
			m.detail.SetContent(m.renderPerformance())
		}

	case StatsLoadedMsg:
		if msg.Err == nil {
			m.stats = msg.Stats
			m.statsLine = fmt.Sprintf("%d clients  %d active  %d workouts this week  avg score %.0f%%",
				msg.Stats.TotalClients, msg.Stats.ActiveClients,
				msg.Stats.WorkoutsThisWeek, msg.Stats.AvgPerformanceScore)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc":
				m.searching = false
				m.search.Blur()
			case "enter":
				m.searching = false
				m.search.Blur()
				m.query = strings.TrimSpace(m.search.Value())
				cmds = append(cmds, m.loadClientsCmd(m.query, m.stale))
			default:
				var cmd tea.Cmd
				m.search, cmd = m.search.Update(msg)
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
		switch msg.String() {
		case "/":
			m.searching = true
			m.search.SetValue(m.query)
			cmds = append(cmds, m.search.Focus())
			return m, tea.Batch(cmds...)
		case "r":
			// Explicit reload; overlapping refreshes race, last one wins.
			cmds = append(cmds, m.loadClientsCmd(m.query, false), m.loadStatsCmd())
			return m, tea.Batch(cmds...)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(clientItem); ok {
				cmds = append(cmds, m.loadPerformanceCmd(item.client.UserID))
			}
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading clients…")
	}

	header := theme.Muted.Render(m.statsLine)
	if m.staleNote != "" {
		header = theme.Hot.Render(m.staleNote) + "  " + header
	}
	if m.searching {
		header = "search: " + m.search.View()
	} else if m.query != "" {
		header = theme.Muted.Render("search: "+m.query+"  (/ to change)") + "  " + header
	}

	bodyH := m.height - 1
	if bodyH < 1 {
		bodyH = 1
	}
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(bodyH).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(bodyH - 2).
		Render(m.detail.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// SelectedClientID returns the current selection, if any.
func (m Model) SelectedClientID() (string, bool) {
	if item, ok := m.list.SelectedItem().(clientItem); ok {
		return item.client.UserID, true
	}
	return "", false
}

// SelectedClientName returns the current selection's display name.
func (m Model) SelectedClientName() string {
	if item, ok := m.list.SelectedItem().(clientItem); ok {
		return item.client.Name
	}
	return ""
}

// Searching reports whether the search input is focused. The app model
// checks this to avoid consuming global keys while the user types.
func (m Model) Searching() bool { return m.searching }

// PerformanceSessions lists the loaded history as feedback targets.
func (m Model) PerformanceSessions() []rosterdto.HistoryEntryOutput {
	return m.perf.History
}

// Refresh re-queries the roster, optionally against the offline snapshot.
func (m *Model) Refresh(offline bool) tea.Cmd {
	return m.loadClientsCmd(m.query, offline)
}

// SetWindowDays changes the performance lookback and reloads the pane.
func (m *Model) SetWindowDays(days int) tea.Cmd {
	m.windowDays = days
	if m.perfFor != "" {
		return m.loadPerformanceCmd(m.perfFor)
	}
	return nil
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	bodyH := m.height - 1
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, bodyH)
	m.detail.Width = detailW - 4
	m.detail.Height = bodyH - 4
}

func scoreStyle(score float64) lipgloss.Style {
	switch domain.BandForScore(score) {
	case domain.ScoreBandGood:
		return theme.Good
	case domain.ScoreBandFair:
		return theme.Fair
	default:
		return theme.Poor
	}
}

func (m Model) renderPerformance() string {
	p := m.perf
	if p.UserID == "" {
		return theme.Muted.Render("Select a client to see performance")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.Name) + "\n")
	sb.WriteString(theme.Muted.Render(p.Email) + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%d days\n", theme.Muted.Render("window:    "), p.WindowDays))
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("workouts:  "), p.TotalWorkouts))
	sb.WriteString(fmt.Sprintf("%s%.0f min\n", theme.Muted.Render("avg time:  "), p.AvgDurationMinutes))
	sb.WriteString(fmt.Sprintf("%s%.0f kcal\n", theme.Muted.Render("calories:  "), p.TotalCalories))
	sb.WriteString(theme.Muted.Render("avg form:  ") +
		scoreStyle(p.AvgFormScore).Render(fmt.Sprintf("%.0f%%", p.AvgFormScore)) + "\n")

	if len(p.History) > 0 {
		sb.WriteString("\n" + theme.Title.Render("History") + "\n")
		for _, h := range p.History {
			score := theme.Muted.Render("   —")
			if h.FormScore != nil {
				score = scoreStyle(*h.FormScore).Render(fmt.Sprintf("%3.0f%%", *h.FormScore))
			}
			sb.WriteString(fmt.Sprintf("%s  %2d ex  %3d min  %s  %s\n",
				h.Date.Format("Jan 02"), h.ExerciseCount, h.DurationMinutes, score,
				theme.Muted.Render(h.SessionID)))
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("/: search  r: refresh  f: compose feedback  p: open plan"))
	return sb.String()
}

func (m Model) loadClientsCmd(query string, offline bool) tea.Cmd {
	return func() tea.Msg {
		var out rosterdto.ListClientsOutput
		var err error
		if offline {
			out, err = m.port.ListClientsOffline(context.Background(), query)
		} else {
			out, err = m.port.ListClients(context.Background(), query)
		}
		return ClientsLoadedMsg{Out: out, Err: err}
	}
}

func (m Model) loadPerformanceCmd(userID string) tea.Cmd {
	days := m.windowDays
	return func() tea.Msg {
		perf, err := m.port.Performance(context.Background(), userID, days)
		return PerformanceLoadedMsg{Perf: perf, Err: err}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.port.DashboardStats(context.Background())
		return StatsLoadedMsg{Stats: stats, Err: err}
	}
}
