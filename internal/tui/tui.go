// Package tui runs the interactive terminal page. It plays the part of a
// browser: it owns focus, turns keys into surface events and paints the
// tree. It never touches the task list directly.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/surface"
	"github.com/Makepad-fr/tada/internal/ui"
	"github.com/Makepad-fr/tada/internal/view"
)

type area int

const (
	areaEntry area = iota
	areaList
)

type control int

const (
	ctrlCheckbox control = iota
	ctrlText
	ctrlDelete
)

// Model implements tea.Model over a mounted view.
type Model struct {
	root *surface.Node
	view *view.Renderer
	keys keyMap
	help help.Model

	entry  textinput.Model // mirrors the entry field's value
	editor textinput.Model // inline editor for one text region

	area    area
	row     int
	ctrl    control
	editing *surface.Node
}

// New returns a model with the entry field focused.
func New(root *surface.Node, r *view.Renderer) Model {
	m := Model{
		root: root,
		view: r,
		keys: listKeys,
		help: help.New(),
	}
	m.entry = textinput.New()
	m.entry.Prompt = "> "
	if ph, ok := r.Input().Attr("placeholder"); ok {
		m.entry.Placeholder = ph
	}
	m.entry.CharLimit = 0
	m.entry.SetValue(r.EntryText())
	m.entry.Focus()

	m.editor = textinput.New()
	m.editor.Prompt = ""
	m.editor.CharLimit = 0
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(root *surface.Node, r *view.Renderer) error {
	_, err := tea.NewProgram(New(root, r), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.commitEdit()
			return m, tea.Quit
		}
		switch {
		case m.editing != nil:
			return m.updateEditing(msg)
		case m.area == areaEntry:
			return m.updateEntry(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	if m.editing != nil {
		m.editor, cmd = m.editor.Update(msg)
	} else if m.area == areaEntry {
		m.entry, cmd = m.entry.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, entrySubmit):
		m.view.Input().SetValue(m.entry.Value())
		m.view.Form().Dispatch(surface.EventSubmit)
		m.entry.SetValue(m.view.EntryText())
		m.clamp()
		return m, nil
	case key.Matches(msg, entryLeave):
		if len(m.view.Rows()) > 0 {
			m.focusList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	m.view.Input().SetValue(m.entry.Value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.SwitchArea):
		return m, m.focusEntry()
	case key.Matches(msg, m.keys.Up):
		m.row--
	case key.Matches(msg, m.keys.Down):
		m.row++
	case key.Matches(msg, m.keys.Left):
		if m.ctrl > ctrlCheckbox {
			m.ctrl--
		}
	case key.Matches(msg, m.keys.Right):
		if m.ctrl < ctrlDelete {
			m.ctrl++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Delete):
		m.remove()
	case key.Matches(msg, m.keys.Edit):
		cmd = m.beginEdit()
	case key.Matches(msg, m.keys.Activate):
		switch m.ctrl {
		case ctrlCheckbox:
			m.toggle()
		case ctrlText:
			cmd = m.beginEdit()
		case ctrlDelete:
			m.remove()
		}
	}

	m.clamp()
	if len(m.view.Rows()) == 0 {
		return m, m.focusEntry()
	}
	return m, cmd
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, editCommit):
		m.commitEdit()
		return m, nil
	case key.Matches(msg, editUp):
		m.commitEdit()
		m.row--
		m.clamp()
		return m, nil
	case key.Matches(msg, editDown):
		m.commitEdit()
		m.row++
		m.clamp()
		return m, nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != before {
		m.editing.SetText(v)
		m.editing.Dispatch(surface.EventInput)
	}
	return m, cmd
}

func (m *Model) focusEntry() tea.Cmd {
	m.area = areaEntry
	return m.entry.Focus()
}

func (m *Model) focusList() {
	m.area = areaList
	m.entry.Blur()
}

func (m *Model) currentRow() *surface.Node {
	rows := m.view.Rows()
	if m.row < 0 || m.row >= len(rows) {
		return nil
	}
	return rows[m.row]
}

func (m *Model) toggle() {
	row := m.currentRow()
	if row == nil {
		return
	}
	cb := view.Checkbox(row)
	cb.SetChecked(!cb.Checked())
	cb.Dispatch(surface.EventChange)
}

func (m *Model) remove() {
	if row := m.currentRow(); row != nil {
		view.DeleteButton(row).Dispatch(surface.EventClick)
	}
}

func (m *Model) beginEdit() tea.Cmd {
	row := m.currentRow()
	if row == nil {
		return nil
	}
	m.ctrl = ctrlText
	m.editing = view.TextRegion(row)
	m.editor.SetValue(m.editing.TextContent())
	m.editor.CursorEnd()
	return m.editor.Focus()
}

// commitEdit moves focus out of the text region being edited.
func (m *Model) commitEdit() {
	if m.editing == nil {
		return
	}
	n := m.editing
	m.editing = nil
	m.editor.Blur()
	n.Dispatch(surface.EventFocusOut)
	m.clamp()
}

func (m *Model) clamp() {
	n := len(m.view.Rows())
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m Model) focusNode() *surface.Node {
	if m.area == areaEntry {
		return m.view.Input()
	}
	row := m.currentRow()
	if row == nil {
		return nil
	}
	switch m.ctrl {
	case ctrlText:
		return view.TextRegion(row)
	case ctrlDelete:
		return view.DeleteButton(row)
	}
	return view.Checkbox(row)
}

func (m Model) View() string {
	t := ui.Current()
	rows := m.view.Rows()
	done := 0
	for _, row := range rows {
		if view.Checkbox(row).Checked() {
			done++
		}
	}

	opt := ui.PaintOptions{
		Focus:     m.focusNode(),
		Overrides: map[*surface.Node]string{m.view.Input(): m.entry.View()},
	}
	if m.editing != nil {
		opt.Overrides[m.editing] = m.editor.View()
	}
	body := ui.Paint(m.root, opt)
	if len(rows) == 0 {
		body += t.Muted.Render("  Nothing to do. Type a task and press enter.")
	}

	return ui.Panel([]string{
		ui.Header(done, len(rows)-done) + "  " + ui.ProgressBar(done, len(rows), 20),
		"",
		body,
		"",
		m.help.View(m.keys),
	})
}
