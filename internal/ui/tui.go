package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/todolist/internal/app"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeLocale
)

// listItem adapts app.Row to bubbles/list.Item
type listItem struct {
	row app.Row
}

func (i listItem) Title() string       { return i.row.String() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.row.Title }

// single-line delegate: cursor, status glyph, title
type itemDelegate struct {
	theme Theme
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	text := it.row.Title
	if it.row.Done {
		text = d.theme.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s", prefix, d.theme.Box(it.row.Done), text)
}

type keyMap struct {
	add, toggle, remove, locale, quit key.Binding
}

func newKeyMap(l app.Labels) keyMap {
	return keyMap{
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", l.Add)),
		toggle: key.NewBinding(key.WithKeys(" ", "c"), key.WithHelp("space", l.Complete)),
		remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", l.Delete)),
		locale: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", l.Languages)),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", l.Quit)),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.add, k.toggle, k.remove, k.locale}
}

// Model is the Bubble Tea model of the to-do screen. Every intent goes
// through the controller and the list is rebuilt from its rows afterwards.
type Model struct {
	ctrl  *app.Controller
	theme Theme
	keys  keyMap

	list  list.Model
	input textinput.Model
	mode  mode

	menu   []app.MenuEntry
	cursor int // locale menu cursor

	status string
	width  int
	height int
}

// NewModel builds the screen for ctrl.
func NewModel(ctrl *app.Controller, theme Theme) Model {
	l := list.New(nil, itemDelegate{theme: theme}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	// Filtering would decouple the cursor from the store index.
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Help
	l.Styles.PaginationStyle = theme.Help
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		ctrl:   ctrl,
		theme:  theme,
		list:   l,
		input:  ti,
		width:  80,
		height: 24,
	}
	m.resize()
	m.refresh()
	return m
}

// refresh re-derives every label and row from the controller.
func (m *Model) refresh() {
	labels := m.ctrl.Labels()
	m.keys = newKeyMap(labels)
	kb := m.keys.bindings()
	m.list.AdditionalShortHelpKeys = func() []key.Binding { return kb }
	m.list.AdditionalFullHelpKeys = func() []key.Binding { return kb }
	m.list.Title = labels.Title
	m.input.Placeholder = labels.Placeholder

	rows := m.ctrl.Rows()
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = listItem{row: r}
	}
	cur := m.list.Index()
	m.list.SetItems(items)
	if cur >= len(items) {
		cur = len(items) - 1
	}
	if cur >= 0 {
		m.list.Select(cur)
	}
	m.menu = m.ctrl.LocaleMenu()
}

func (m *Model) report(err error) {
	defer m.resize()
	if err == nil {
		m.status = ""
		return
	}
	label := m.ctrl.Labels().WriteError
	if label == "" {
		m.status = err.Error()
		return
	}
	m.status = label + ": " + err.Error()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeLocale:
		return m.updateLocale(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.quit), km.String() == "esc":
			return m, tea.Quit
		case key.Matches(km, m.keys.toggle):
			m.ctrl.Select(m.list.Index())
			m.report(m.ctrl.ToggleSelected(m.ctrl.Selected()))
			m.refresh()
			return m, nil
		case key.Matches(km, m.keys.remove):
			m.ctrl.Select(m.list.Index())
			m.report(m.ctrl.DeleteSelected(m.ctrl.Selected()))
			m.refresh()
			return m, nil
		case key.Matches(km, m.keys.add):
			m.mode = modeAdd
			m.input.SetValue("")
			m.resize()
			return m, m.input.Focus()
		case key.Matches(km, m.keys.locale):
			m.mode = modeLocale
			m.cursor = 0
			for i, e := range m.menu {
				if e.Active {
					m.cursor = i
				}
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			before := len(m.list.Items())
			m.report(m.ctrl.Add(m.input.Value()))
			m.closeInput()
			m.refresh()
			if n := len(m.list.Items()); n > before {
				m.list.Select(n - 1)
			}
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

func (m Model) updateLocale(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.menu) {
			m.report(m.ctrl.SwitchLocale(m.menu[m.cursor].Code))
		}
		m.mode = modeList
		m.refresh()
	case "esc", "l", "q":
		m.mode = modeList
	}
	return m, nil
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode == modeAdd {
		h -= 4
	}
	if m.status != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

// View implements tea.Model.
func (m Model) View() string {
	labels := m.ctrl.Labels()
	var b strings.Builder
	if len(m.list.Items()) == 0 && labels.Empty != "" {
		b.WriteString(m.theme.Title.Render(labels.Title) + "\n\n")
		b.WriteString(m.theme.Muted.Render(labels.Empty) + "\n\n")
		b.WriteString(m.list.Help.ShortHelpView(append(m.keys.bindings(), m.keys.quit)))
	} else {
		b.WriteString(m.list.View())
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\n" + panelString(m.theme, labels.Add+"\n"+m.input.View()))
	case modeLocale:
		lines := []string{m.theme.Title.Render(labels.Languages)}
		for i, e := range m.menu {
			mark := "  "
			if e.Active {
				mark = m.theme.Success.Render("● ")
			}
			line := mark + e.Name
			if i == m.cursor {
				line = m.theme.Selected.Render("> ") + line
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
		b.WriteString("\n" + panelString(m.theme, strings.Join(lines, "\n")))
	}
	if m.status != "" {
		b.WriteString("\n" + m.theme.Error.Render(m.status))
	}
	return panelString(m.theme, b.String())
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctrl *app.Controller, theme Theme, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(ctrl, theme), opts...).Run()
	return err
}
