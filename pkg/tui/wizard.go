package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/daoforge-io/daoforge/pkg/deployment"
	"github.com/daoforge-io/daoforge/pkg/recovery"
	"github.com/daoforge-io/daoforge/pkg/steps"
)

const listWidth = 36

// Model is the Bubble Tea model for the progress wizard. It is a read-only
// view over the deployment record; mutations happen through the CLI commands,
// and 'r' reloads the record from disk.
type Model struct {
	store *deployment.Store
	rec   *deployment.Record

	cursor  int
	width   int
	height  int
	ready   bool
	detail  viewport.Model
	loadErr string
}

// New creates a wizard over the given store and record.
func New(store *deployment.Store, rec *deployment.Record) Model {
	return Model{store: store, rec: rec}
}

// Run starts the wizard in the alternate screen and blocks until quit.
func Run(store *deployment.Store, rec *deployment.Record) error {
	p := tea.NewProgram(New(store, rec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		detailWidth := m.width - listWidth - 6
		if detailWidth < 20 {
			detailWidth = 20
		}
		detailHeight := m.height - 6
		if detailHeight < 3 {
			detailHeight = 3
		}
		if !m.ready {
			m.detail = viewport.New(detailWidth, detailHeight)
			m.ready = true
		} else {
			m.detail.Width = detailWidth
			m.detail.Height = detailHeight
		}
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshDetail()
			}
		case "down", "j":
			if m.cursor < len(deployment.Order)-1 {
				m.cursor++
				m.refreshDetail()
			}
		case "r":
			rec, err := m.store.Load()
			if err != nil {
				m.loadErr = err.Error()
			} else {
				m.rec = rec
				m.loadErr = ""
			}
			m.refreshDetail()
		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("daoforge — %s", m.rec.ProjectName))
	machine := steps.NewMachine(m.store, m.rec)
	if next, ok := machine.NextIncomplete(); ok {
		header += keyDescStyle.Render(fmt.Sprintf("  next: %s", next))
	} else {
		header += stepDone.Render("  all steps complete")
	}

	list := m.stepList(machine)
	detail := panelBorder.Width(m.detail.Width + 2).Render(
		panelTitle.Render("Detail") + "\n" + m.detail.View(),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	keys := keyBarStyle.Render(
		keyStyle.Render("↑/↓") + keyDescStyle.Render(" select  ") +
			keyStyle.Render("r") + keyDescStyle.Render(" reload  ") +
			keyStyle.Render("q") + keyDescStyle.Render(" quit"),
	)

	view := header + "\n" + body + "\n" + keys
	if m.loadErr != "" {
		view += "\n" + errorStyle.Render("reload failed: "+m.loadErr)
	}
	return view
}

// stepList renders the checklist panel.
func (m Model) stepList(machine *steps.Machine) string {
	next, hasNext := machine.NextIncomplete()

	var lines []string
	for i, s := range deployment.Order {
		glyph, style := GlyphPending, stepNormal
		switch {
		case m.rec.Completed(s):
			glyph, style = GlyphDone, stepDone
		case hasNext && s == next:
			glyph, style = GlyphNext, stepNext
		case machine.CheckPreconditions(s) != nil:
			glyph, style = GlyphBlocked, stepBlocked
		}
		if _, failed := m.rec.Errors[s]; failed {
			glyph, style = GlyphFailed, stepFailed
		}

		title := runewidth.Truncate(steps.Title(s), listWidth-6, "…")
		line := fmt.Sprintf(" %s %d. %s", glyph, i+1, title)
		if i == m.cursor {
			line = style.Reverse(true).Render(line)
		} else {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}

	content := panelTitle.Render("Steps") + "\n" + strings.Join(lines, "\n")
	return panelBorder.Width(listWidth).Render(content)
}

// refreshDetail rebuilds the detail panel markdown for the selected step.
func (m *Model) refreshDetail() {
	if !m.ready {
		return
	}
	step := deployment.Order[m.cursor]

	var md strings.Builder
	fmt.Fprintf(&md, "## %s\n\n", steps.Title(step))
	if m.rec.Completed(step) {
		md.WriteString("Status: **complete**\n")
	} else {
		md.WriteString("Status: pending\n")
	}

	if def, ok := steps.Lookup(step); ok && len(def.Requires) > 0 {
		var deps []string
		for _, d := range def.Requires {
			deps = append(deps, string(d))
		}
		fmt.Fprintf(&md, "\nDepends on: %s\n", strings.Join(deps, ", "))
	}

	if entry, ok := m.rec.Errors[step]; ok {
		fmt.Fprintf(&md, "\n### Last error\n\n%s\n\n_%s_\n", entry.Message, entry.Timestamp)
		if remedy, ok := recovery.Catalogued(step); ok {
			fmt.Fprintf(&md, "\n### %s — suggested fixes\n\n", remedy.DisplayName)
			for _, s := range remedy.Solutions {
				fmt.Fprintf(&md, "- %s\n", s)
			}
		}
	}

	m.detail.SetContent(renderMarkdown(md.String(), m.detail.Width))
	m.detail.GotoTop()
}
