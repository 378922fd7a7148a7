// Package logview is the interactive commit pager behind `casvc log`,
// grounded on the teacher's internal/cli/log.go bubbletea model but
// trimmed to plain up/down navigation over a commit list — no search
// mode, no ASCII graph, since casvc's history is a simple linear chain
// per ref rather than a merge DAG.
package logview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caslab/casvc/internal/objects"
	"github.com/caslab/casvc/internal/ui/styles"
	"github.com/caslab/casvc/internal/util"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

type model struct {
	commits  []*objects.Commit
	refName  string
	cursor   int
	viewport viewport.Model
	ready    bool
}

// Run starts the interactive pager over commits, oldest-parent-last
// (commits[0] is HEAD of refName). It blocks until the user quits.
func Run(refName string, commits []*objects.Commit) error {
	m := model{commits: commits, refName: refName}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		m.viewport.SetContent(m.render())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.commits)-1 {
				m.cursor++
			}
			m.viewport.SetContent(m.render())
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.viewport.SetContent(m.render())
		case key.Matches(msg, keys.PageDown):
			m.viewport.ViewDown()
		case key.Matches(msg, keys.PageUp):
			m.viewport.ViewUp()
		}
	}

	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return "loading...\n"
	}
	header := styles.SectionHeader(fmt.Sprintf("log %s", m.refName))
	return header + "\n\n" + m.viewport.View()
}

func (m model) render() string {
	var sb strings.Builder
	for i, c := range m.commits {
		prefix := "  "
		if i == m.cursor {
			prefix = styles.Ref("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", prefix, styles.Hash(c.Hash, true), firstLine(c.Message)))
		if i == m.cursor {
			sb.WriteString(styles.Indent(fmt.Sprintf("hash:   %s\ntree:   %s\nparent: %s\n\n%s\n",
				c.Hash, display(c.TreeRef), display(c.PreviousCommitRef), c.Message), 6))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func display(s string) string {
	if s == "" {
		return "(none)"
	}
	return util.ShortID(s)
}
