package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"choosy/internal/dropdown"
	"choosy/internal/eventbus"
	"choosy/internal/ui/views"
)

// EventMsg wraps a bus event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// Model is the bubbletea model hosting the widget collection
type Model struct {
	coord    *Coordinator
	renderer *views.Renderer
	bus      eventbus.EventBus
	help     *HelpOps

	width  int
	height int
	status string
}

// NewModel creates the UI model
func NewModel(coord *Coordinator, bus eventbus.EventBus) *Model {
	return &Model{
		coord:    coord,
		renderer: views.NewRenderer(views.NewStyles()),
		bus:      bus,
	}
}

// SetProgram wires the running program in, needed for the help pager's
// terminal handover
func (m *Model) SetProgram(p *tea.Program) {
	m.help = NewHelpOps(p)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.coord.SetViewportHeight(m.resultsHeight())
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.coord.Active()
	if w == nil {
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	ctrl := w.Ctrl

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+n":
		m.coord.FocusNext()
		return m, nil

	case "ctrl+p":
		m.coord.FocusPrev()
		return m, nil

	case "down":
		ctrl.HandleKey(dropdown.KeyArrowForward)
		return m, nil

	case "up":
		ctrl.HandleKey(dropdown.KeyArrowBackward)
		return m, nil

	case "enter":
		ctrl.HandleKey(dropdown.KeyConfirm)
		m.syncInput(w)
		return m, nil

	case "alt+enter":
		// The modifier variant keeps the results open for picking several
		// entries in a row
		if ctrl.GetState() == dropdown.StateOpenWithResults && ctrl.GetHighlighted() >= 0 {
			ctrl.SelectKeepOpen(ctrl.GetHighlighted())
		}
		return m, nil

	case "tab":
		ctrl.HandleKey(dropdown.KeyTab)
		m.syncInput(w)
		m.coord.FocusNext()
		return m, nil

	case "esc":
		if ctrl.HandleKey(dropdown.KeyCancel) {
			m.syncInput(w)
			return m, nil
		}
		return m, tea.Quit

	case "ctrl+o":
		ctrl.ToggleOpen()
		m.syncInput(w)
		return m, nil

	case "ctrl+u":
		if ctrl.ClearSelection() {
			m.status = "selection cleared"
		}
		return m, nil

	case "ctrl+y":
		m.yank(ctrl)
		return m, nil

	case "f1":
		if m.help != nil {
			go func() {
				if err := m.help.ShowHelpInPager(helpContent()); err != nil {
					log.Printf("help pager: %v", err)
				}
			}()
		}
		return m, nil

	case "backspace":
		if w.Input.Value() == "" {
			if ctrl.HandleKey(dropdown.KeyBackstroke) {
				return m, nil
			}
		}
	}

	// Everything else feeds the search field of the focused widget
	if !ctrl.SearchEnabled() {
		return m, nil
	}
	if ctrl.GetState() == dropdown.StateClosed && msg.Type == tea.KeyRunes {
		// Typing opens a closed widget
		ctrl.Open()
	}
	if !w.Input.Focused() {
		w.Input.Focus()
	}
	var cmd tea.Cmd
	w.Input, cmd = w.Input.Update(msg)
	ctrl.Search(w.Input.Value())
	return m, cmd
}

// syncInput mirrors controller-side query resets (close clears the search
// state) back into the text field
func (m *Model) syncInput(w *Widget) {
	if w.Ctrl.GetQuery() == "" && w.Input.Value() != "" {
		w.Input.Reset()
	}
	if w.Ctrl.GetState() == dropdown.StateClosed {
		w.Input.Blur()
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ValueChangedEvent:
		if e.Selected != "" {
			m.status = fmt.Sprintf("%s: selected %q", e.Widget, e.Selected)
		} else {
			m.status = fmt.Sprintf("%s: deselected %q", e.Widget, e.Deselected)
		}
	case eventbus.MaxSelectedEvent:
		m.status = fmt.Sprintf("%s: limit of %d reached", e.Widget, e.Limit)
	case eventbus.OptionsChangedEvent:
		if w := m.coord.FindByName(e.Widget); w != nil {
			w.Ctrl.Rebuild()
			m.syncInput(w)
			m.status = fmt.Sprintf("%s: options reloaded", e.Widget)
		}
	case eventbus.ErrorEvent:
		m.status = e.Message
	}
}

func (m *Model) yank(ctrl *dropdown.Controller) {
	var values []string
	if ctrl.GetMode() == dropdown.Multiple {
		for _, ch := range ctrl.GetChoices() {
			values = append(values, ch.Value)
		}
	} else if text := ctrl.GetDisplayText(); text != "" {
		values = append(values, text)
	}
	if len(values) == 0 {
		m.status = "nothing to yank"
		return
	}
	if err := clipboard.WriteAll(strings.Join(values, ", ")); err != nil {
		m.status = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.status = fmt.Sprintf("yanked %d value(s)", len(values))
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder
	styles := views.NewStyles()

	b.WriteString(styles.TitleFocused.Render("choosy") + "\n\n")

	for i, w := range m.coord.Widgets() {
		b.WriteString(m.renderer.RenderWidget(m.widgetState(w, i == m.coord.ActiveIndex())))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(styles.Status.Render(m.status) + "\n")
	}
	b.WriteString(styles.Help.Render("↑/↓ navigate · enter select · esc close · ctrl+n/p switch · f1 help · ctrl+c quit"))
	return b.String()
}

func (m *Model) widgetState(w *Widget, focused bool) views.WidgetState {
	ctrl := w.Ctrl
	return views.WidgetState{
		Name:          ctrl.Name(),
		Multiple:      ctrl.GetMode() == dropdown.Multiple,
		Focused:       focused,
		Open:          ctrl.GetState() != dropdown.StateClosed,
		NoMatch:       ctrl.GetState() == dropdown.StateOpenNoMatch,
		DisplayText:   ctrl.GetDisplayText(),
		Choices:       ctrl.GetChoices(),
		PendingDelete: ctrl.GetPendingDelete(),
		SearchView:    w.Input.View(),
		SearchEnabled: ctrl.SearchEnabled(),
		Query:         ctrl.GetQuery(),
		Results:       ctrl.GetResults(),
		Highlighted:   ctrl.GetHighlighted(),
		Scroll:        ctrl.GetScrollOffset(),
		ViewportH:     ctrl.GetViewportHeight(),
		NoResultsText: ctrl.Config().NoResultsText,
		ShowClear:     ctrl.ShowClearAffordance(),
		Width:         m.width,
	}
}

func (m *Model) resultsHeight() int {
	// Header, status and help lines plus per-widget chrome
	h := m.height - 6 - 3*len(m.coord.Widgets())
	if h < 3 {
		h = 3
	}
	return h
}
