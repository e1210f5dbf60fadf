// Package tui is a terminal front end for a grid session: drag with the
// mouse to select, release to write the aggregate into the last cell.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javajack/xlgrid"
)

// layout
const (
	cellWidth = 9
	gutter    = 4
	gridTop   = 2
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
)

// Model is the bubbletea model for one grid session.
type Model struct {
	ctrl   *xlgrid.Controller
	cursor xlgrid.Position
	mode   mode
	input  textinput.Model

	// keyDrag is set while a selection is being made from the keyboard.
	keyDrag bool

	status string
	err    error
}

// New creates a model driving ctrl.
func New(ctrl *xlgrid.Controller) Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 256
	return Model{ctrl: ctrl, input: in}
}

// Run starts a full-screen program with mouse tracking.
func Run(ctrl *xlgrid.Controller) error {
	_, err := tea.NewProgram(New(ctrl), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// Cursor returns the keyboard cursor.
func (m Model) Cursor() xlgrid.Position { return m.cursor }

// Editing reports whether the cursor cell is being edited.
func (m Model) Editing() bool { return m.mode == modeEdit }

// Status returns the footer message: the last commit or error.
func (m Model) Status() string {
	if m.err != nil {
		return m.err.Error()
	}
	return m.status
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	case tea.KeyMsg:
		if m.mode == modeEdit {
			return m.updateEdit(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// cellAt maps a screen coordinate to the grid cell drawn there.
func (m Model) cellAt(x, y int) (xlgrid.Position, bool) {
	if x < gutter || y < gridTop {
		return xlgrid.Position{}, false
	}
	p := xlgrid.At(y-gridTop, (x-gutter)/cellWidth)
	if p.Row >= m.ctrl.State().Rows() || p.Col >= m.ctrl.State().Cols() {
		return xlgrid.Position{}, false
	}
	return p, true
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	if m.mode == modeEdit {
		return m
	}
	p, inGrid := m.cellAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inGrid {
			return m
		}
		m.keyDrag = false
		m.cursor = p
		return m.handle(xlgrid.Down(p))
	case tea.MouseActionMotion:
		if !inGrid || m.ctrl.DragState() != xlgrid.Dragging {
			return m
		}
		m.cursor = p
		return m.handle(xlgrid.Enter(p))
	case tea.MouseActionRelease:
		if m.ctrl.DragState() != xlgrid.Dragging || m.keyDrag {
			return m
		}
		return m.handle(xlgrid.Up())
	}
	return m
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		return m.move(-1, 0), nil
	case "down", "j":
		return m.move(1, 0), nil
	case "left", "h":
		return m.move(0, -1), nil
	case "right", "l":
		return m.move(0, 1), nil
	case "v", " ":
		if m.keyDrag {
			m.keyDrag = false
			return m.handle(xlgrid.Up()), nil
		}
		m.keyDrag = true
		return m.handle(xlgrid.Down(m.cursor)), nil
	case "esc":
		if m.keyDrag {
			m.keyDrag = false
			return m.handle(xlgrid.Up()), nil
		}
		return m, nil
	case "enter", "e":
		v, err := m.ctrl.Get(m.cursor)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.mode = modeEdit
		m.input.SetValue(v)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "backspace", "delete":
		return m.handle(xlgrid.Input(m.cursor, "")), nil
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeNormal
		m.input.Blur()
		return m.handle(xlgrid.Input(m.cursor, m.input.Value())), nil
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) move(dr, dc int) Model {
	st := m.ctrl.State()
	m.cursor.Row = min(max(m.cursor.Row+dr, 0), st.Rows()-1)
	m.cursor.Col = min(max(m.cursor.Col+dc, 0), st.Cols()-1)
	if m.keyDrag {
		return m.handle(xlgrid.Enter(m.cursor))
	}
	return m
}

func (m Model) handle(ev xlgrid.Event) Model {
	commit, err := m.ctrl.Handle(ev)
	switch {
	case errors.Is(err, xlgrid.ErrNotDragging):
	case err != nil:
		m.err = err
	case commit != nil:
		m.err = nil
		m.status = commit.String()
	case ev.Kind == xlgrid.TextInput:
		m.err = nil
		m.status = fmt.Sprintf("%s = %q", ev.Pos, ev.Text)
	}
	return m
}

func (m Model) View() string {
	st := m.ctrl.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("xlgrid %dx%d", st.Rows(), st.Cols())))
	b.WriteString(dimStyle.Render("  drag to select, release to write " + m.ctrl.WriteBack().String()))
	b.WriteByte('\n')

	b.WriteString(strings.Repeat(" ", gutter))
	for c := 0; c < st.Cols(); c++ {
		l, err := xlgrid.ColumnLabel(c)
		if err != nil {
			l = "?"
		}
		b.WriteString(headerStyle.Render(fit(l, cellWidth)))
	}
	b.WriteByte('\n')

	values := st.Values()
	for r, row := range values {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%*d ", gutter-1, r+1)))
		for c, v := range row {
			p := xlgrid.At(r, c)
			text := fit(v, cellWidth)
			switch {
			case p == m.cursor:
				b.WriteString(cursorStyle.Render(text))
			case m.ctrl.Selected(p):
				b.WriteString(selectedStyle.Render(text))
			default:
				b.WriteString(text)
			}
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) footer() string {
	sel := m.ctrl.State().Selection()
	sum := m.ctrl.Summary()

	var b strings.Builder
	if m.mode == modeEdit {
		fmt.Fprintf(&b, "%s: %s\n", m.cursor, m.input.View())
	}
	if sel.IsEmpty() {
		b.WriteString(dimStyle.Render("no selection"))
	} else {
		fmt.Fprintf(&b, "%s %s", sel, sel.Rect().Size())
		if sel.Dragging() {
			b.WriteString(dimStyle.Render(" dragging"))
		}
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Sum %s  Product %s  Simple %s  Compound %s\n",
		sum.Sum, sum.Product, sum.SimpleInterest, sum.CompoundInterest)

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render("arrows move  v select  enter edit  q quit"))
	return b.String()
}

// fit pads or truncates s to exactly w columns, keeping one trailing space.
func fit(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) > w-1 {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r)) > w-2 {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
	}
	return s + strings.Repeat(" ", w-lipgloss.Width(s))
}
