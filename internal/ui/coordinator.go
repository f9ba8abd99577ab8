package ui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"choosy/internal/dropdown"
)

// Widget pairs a controller with its search field
type Widget struct {
	Ctrl  *dropdown.Controller
	Input textinput.Model
}

// Coordinator owns the collection of widget instances on the page. All
// cross-instance operations (focus movement, resize fan-out) go through it
// rather than through any package-level registry.
type Coordinator struct {
	widgets []*Widget
	active  int
}

// NewCoordinator creates an empty coordinator
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Add registers a widget instance
func (co *Coordinator) Add(ctrl *dropdown.Controller) {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.CharLimit = 128
	co.widgets = append(co.widgets, &Widget{Ctrl: ctrl, Input: ti})
}

// Widgets returns all registered widgets in order
func (co *Coordinator) Widgets() []*Widget {
	return co.widgets
}

// Active returns the focused widget, nil when none are registered
func (co *Coordinator) Active() *Widget {
	if len(co.widgets) == 0 {
		return nil
	}
	return co.widgets[co.active]
}

// ActiveIndex returns the index of the focused widget
func (co *Coordinator) ActiveIndex() int {
	return co.active
}

// FocusNext moves focus to the next widget, closing the one losing focus
func (co *Coordinator) FocusNext() {
	co.moveFocus(1)
}

// FocusPrev moves focus to the previous widget
func (co *Coordinator) FocusPrev() {
	co.moveFocus(-1)
}

func (co *Coordinator) moveFocus(delta int) {
	if len(co.widgets) < 2 {
		return
	}
	if w := co.Active(); w != nil {
		w.Ctrl.Close()
		w.Input.Reset()
		w.Input.Blur()
	}
	co.active = (co.active + delta + len(co.widgets)) % len(co.widgets)
}

// FindByName returns the widget backing the named host control
func (co *Coordinator) FindByName(name string) *Widget {
	for _, w := range co.widgets {
		if w.Ctrl.Name() == name {
			return w
		}
	}
	return nil
}

// SetViewportHeight fans a resize out to every instance
func (co *Coordinator) SetViewportHeight(h int) {
	for _, w := range co.widgets {
		w.Ctrl.SetViewportHeight(h)
	}
}
