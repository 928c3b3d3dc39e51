package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/hookrun/internal/report"
	"github.com/Iron-Ham/hookrun/internal/tui/styles"
	"github.com/Iron-Ham/hookrun/internal/util"
)

const (
	statusPending = "pending"
	statusRunning = "running"
)

// Model is the live status view of one run.
type Model struct {
	strategy  string
	order     []string
	status    map[string]string
	durations map[string]time.Duration
	started   map[string]time.Time
	lastLine  map[string]string

	spinner   spinner.Model
	startTime time.Time
	width     int
	done      bool
	interrupt func()
	now       func() time.Time
}

// NewModel creates a model for the hooks in order. More hooks may be
// announced later by a run.started event.
func NewModel(order []string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.StatusRunning)

	m := Model{
		status:    make(map[string]string),
		durations: make(map[string]time.Duration),
		started:   make(map[string]time.Time),
		lastLine:  make(map[string]string),
		spinner:   s,
		now:       time.Now,
	}
	m.startTime = m.now()
	m.setOrder(order)
	return m
}

func (m *Model) setOrder(order []string) {
	m.order = append([]string(nil), order...)
	for _, id := range order {
		if _, ok := m.status[id]; !ok {
			m.status[id] = statusPending
		}
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update applies a message to the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && m.interrupt != nil {
			m.interrupt()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case runStartedMsg:
		m.strategy = msg.strategy
		m.setOrder(msg.order)
		m.startTime = m.now()
		return m, nil

	case hookStartedMsg:
		m.status[msg.id] = statusRunning
		m.started[msg.id] = m.now()
		return m, nil

	case hookFinishedMsg:
		o := msg.outcome
		m.status[o.ID] = o.Kind.String()
		m.durations[o.ID] = o.Duration
		if o.Kind == report.KindFailed {
			m.lastLine[o.ID] = lastOutputLine(o)
		}
		return m, nil

	case runCompletedMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the status table. Once the run has completed the view is
// empty so the final report replaces it.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	title := "hookrun"
	if m.strategy != "" {
		title += " · " + m.strategy
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	width := 0
	for _, id := range m.order {
		width = max(width, len(id))
	}

	finished := 0
	for _, id := range m.order {
		status := m.status[id]
		icon := lipgloss.NewStyle().Foreground(styles.StatusColor(status)).Render(styles.StatusIcon(status))
		detail := ""
		switch status {
		case statusRunning:
			icon = m.spinner.View()
			detail = util.FormatDuration(m.now().Sub(m.started[id]))
		case statusPending:
			detail = "waiting"
		default:
			finished++
			detail = util.FormatDuration(m.durations[id])
			switch status {
			case report.KindSkipped.String():
				detail = "skipped"
			case report.KindFailed.String():
				if last := m.lastLine[id]; last != "" {
					detail += " · " + last
				}
			}
		}
		line := fmt.Sprintf("  %s %-*s  %s", icon, width, id, styles.Muted.Render(detail))
		if m.width > 0 {
			line = util.TruncateANSI(line, m.width)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("%d/%d done · %s · ctrl+c to cancel",
		finished, len(m.order), util.FormatDuration(m.now().Sub(m.startTime)))
	b.WriteString(styles.HelpBar.Render(footer))
	b.WriteString("\n")
	return b.String()
}

// lastOutputLine picks the most telling line of a failed hook's output:
// stderr first, then stdout, then the error.
func lastOutputLine(o report.Outcome) string {
	for _, text := range []string{o.Stderr, o.Stdout, o.Error} {
		if line := strings.TrimSpace(util.TailLines(text, 1)); line != "" {
			return line
		}
	}
	return ""
}

// Status returns the displayed status of hook id.
func (m Model) Status(id string) string {
	return m.status[id]
}

// Done reports whether the run has completed.
func (m Model) Done() bool {
	return m.done
}
