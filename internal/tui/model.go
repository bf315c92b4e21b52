// Package tui provides the Bubble Tea review interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicard/internal/model"
	"github.com/verte-zerg/tuicard/internal/srs"
	statsPkg "github.com/verte-zerg/tuicard/internal/stats"
	"github.com/verte-zerg/tuicard/internal/store"
)

// Model implements the Bubble Tea flashcard UI. It holds the full collection
// and its scheduling state in memory and writes every grade through to the
// store as it happens.
type Model struct {
	config model.Config
	store  *store.Store
	sched  *srs.Scheduler
	words  []string
	items  map[string]srs.Item
	now    func() time.Time

	width  int
	height int

	queue []string
	done  bool

	reviewed  int
	correct   int
	incorrect int
}

var (
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	levelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	missedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
)

// NewModel constructs a review TUI model and fills the first queue.
func NewModel(cfg model.Config, store *store.Store, sched *srs.Scheduler, words []string, items map[string]srs.Item) *Model {
	m := &Model{
		config: cfg,
		store:  store,
		sched:  sched,
		words:  words,
		items:  items,
		now:    time.Now,
	}
	if m.items == nil {
		m.items = map[string]srs.Item{}
	}
	m.refillQueue()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "y", "Y":
			m.grade(srs.Correct)
			return m, nil
		case "n", "N":
			m.grade(srs.Incorrect)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return m.place(m.renderSummary())
	}
	if len(m.queue) == 0 {
		return ""
	}
	content := m.renderCard(m.queue[0])
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return m.place(content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderCard(word string) string {
	meta := "new word"
	if item, ok := m.items[word]; ok && item.Reviews > 0 {
		meta = fmt.Sprintf("level %d · %d reviews", item.Level, item.Reviews)
	}
	lines := []string{
		wordStyle.Render(word),
		"",
		levelStyle.Render(meta),
		"",
		promptStyle.Render("did you know it?  [y]es  [n]o"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Left %d", len(m.queue))}
	if m.reviewed > 0 {
		acc := statsPkg.Accuracy(m.correct, m.incorrect)
		segments = append(segments, fmt.Sprintf("Reviewed %d · %.1f%%", m.reviewed, acc*100))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) renderSummary() string {
	acc := statsPkg.Accuracy(m.correct, m.incorrect)
	lines := []string{
		summaryStyle.Render("Session complete"),
		"",
		fmt.Sprintf("Reviewed: %d", m.reviewed),
		fmt.Sprintf("Knew: %d", m.correct),
		missedStyle.Render(fmt.Sprintf("Missed: %d", m.incorrect)),
		fmt.Sprintf("Accuracy: %.1f%%", acc*100),
		"",
		promptStyle.Render("press any key to quit"),
	}
	return strings.Join(lines, "\n")
}

// Reviewed reports how many grades the session applied.
func (m *Model) Reviewed() int {
	return m.reviewed
}

func (m *Model) grade(outcome srs.Outcome) {
	if len(m.queue) == 0 {
		return
	}
	word := m.queue[0]
	m.queue = m.queue[1:]

	now := m.now()
	item, ok := m.items[word]
	if !ok {
		item = srs.NewItem(word, now)
	}
	next, log := m.sched.Grade(item, outcome, now)
	m.items[word] = next

	ctx := context.Background()
	if err := m.store.ApplyReview(ctx, next, log); err != nil {
		logErrf("failed to save review: %v\n", err)
	}

	m.reviewed++
	if outcome == srs.Correct {
		m.correct++
	} else {
		m.incorrect++
	}

	// Missed words come straight back, so the queue refills until every due
	// word has been answered correctly once.
	if len(m.queue) == 0 {
		m.refillQueue()
	}
}

func (m *Model) refillQueue() {
	due := m.sched.SelectDue(m.words, m.items, m.now())
	if m.config.Limit > 0 && len(due) > m.config.Limit {
		due = due[:m.config.Limit]
	}
	m.queue = due
	if len(m.queue) == 0 {
		m.done = true
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
