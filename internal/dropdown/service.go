package dropdown

import (
	"log"

	"choosy/internal/config"
	"choosy/internal/domain"
	"choosy/internal/eventbus"
	"choosy/internal/host"
	"choosy/internal/options"
)

const defaultViewportHeight = 10

// Controller owns one widget's interactive state: the open/closed state
// machine, the current search, the highlighted result and the selected set.
// It is the sole writer of the host control's selection state.
type Controller struct {
	name  string
	mode  Mode
	cfg   *config.Config
	bus   eventbus.EventBus
	host  host.Host
	model *options.Model

	state   DropState
	search  SearchState
	results []Result
	choices []domain.Choice
	label   string // single-mode visible selection text
	scroll  int
	viewH   int
}

// New builds a controller over the given host control and parses its
// current option tree
func New(name string, mode Mode, cfg *config.Config, bus eventbus.EventBus, h host.Host) *Controller {
	cfg.Normalize()
	c := &Controller{
		name:   name,
		mode:   mode,
		cfg:    cfg,
		bus:    bus,
		host:   h,
		search: newSearchState(),
		viewH:  defaultViewportHeight,
	}
	c.model = options.Parse(h.ReadNodes())
	c.syncFromModel()
	return c
}

// Name returns the widget's name
func (c *Controller) Name() string {
	return c.name
}

// GetMode returns the widget's selection mode
func (c *Controller) GetMode() Mode {
	return c.mode
}

// Config returns the widget's configuration
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// GetState returns the current results-pane state
func (c *Controller) GetState() DropState {
	return c.state
}

// GetResults returns the rendered rows of the open results pane
func (c *Controller) GetResults() []Result {
	return c.results
}

// GetChoices returns the visible choices of a multi-select widget in the
// order they were added
func (c *Controller) GetChoices() []domain.Choice {
	return c.choices
}

// GetQuery returns the current search text
func (c *Controller) GetQuery() string {
	return c.search.Query
}

// GetHighlighted returns the flattening index of the highlighted option,
// -1 when nothing is highlighted
func (c *Controller) GetHighlighted() int {
	return c.search.Highlighted
}

// GetPendingDelete returns the option index staged for backstroke removal,
// -1 when none is staged
func (c *Controller) GetPendingDelete() int {
	return c.search.PendingDelete
}

// GetDisplayText returns the text shown on the closed widget: the selected
// label or the placeholder in single mode, the placeholder in multi mode
// when no choices remain, "" otherwise
func (c *Controller) GetDisplayText() string {
	if c.mode == Multiple {
		if len(c.choices) == 0 {
			return c.cfg.PlaceholderTextMultiple
		}
		return ""
	}
	return c.label
}

// Open opens the results pane. In multi mode a widget already at capacity
// refuses to open and announces the limit instead.
func (c *Controller) Open() {
	if c.state != StateClosed {
		return
	}
	if c.mode == Multiple && c.atCapacity() {
		c.bus.Publish(eventbus.MaxSelectedEvent{Widget: c.name, Limit: c.cfg.MaxSelectedOptions})
		return
	}
	c.winnow()
	c.bus.Publish(eventbus.DropdownShowingEvent{Widget: c.name})
}

// Close closes the results pane and discards all transient search state
func (c *Controller) Close() {
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	c.results = nil
	c.search = newSearchState()
	c.scroll = 0
	c.bus.Publish(eventbus.DropdownHidingEvent{Widget: c.name})
}

// ToggleOpen opens a closed widget and closes an open one
func (c *Controller) ToggleOpen() {
	if c.state == StateClosed {
		c.Open()
	} else {
		c.Close()
	}
}

// Search stores the query and re-filters. While closed the text is only
// stored; the next Open reflects it.
func (c *Controller) Search(text string) {
	c.search.Query = text
	c.search.PendingDelete = -1
	if c.state == StateClosed {
		return
	}
	c.winnow()
}

// SelectHighlighted selects the highlighted result. Valid only while open
// with results and a live highlight; anything else is a no-op.
func (c *Controller) SelectHighlighted() {
	if c.state != StateOpenWithResults || c.search.Highlighted < 0 {
		return
	}
	c.selectOption(c.search.Highlighted, false)
}

// Rebuild re-reads the host's option tree after a structural change.
// Selections whose values vanished are dropped silently. An open widget
// stays open as long as eligible content remains.
func (c *Controller) Rebuild() {
	wasOpen := c.state != StateClosed
	query := c.search.Query

	c.model = options.Parse(c.host.ReadNodes())
	c.syncFromModel()
	c.search.Highlighted = -1
	c.search.PendingDelete = -1

	if !wasOpen {
		return
	}
	c.search.Query = query
	c.winnow()
	if !c.hasEligible() {
		c.Close()
	}
	log.Printf("Controller %s: rebuilt, %d host entries", c.name, c.model.HostTotal)
}

// SetViewportHeight updates the visible results height
func (c *Controller) SetViewportHeight(h int) {
	if h < 1 {
		h = 1
	}
	c.viewH = h
	c.ensureVisible()
}

// GetScrollOffset returns the first visible results row
func (c *Controller) GetScrollOffset() int {
	return c.scroll
}

// GetViewportHeight returns the visible results height
func (c *Controller) GetViewportHeight() int {
	return c.viewH
}

// SearchEnabled reports whether the search field should accept input.
// Single-select widgets hide search when the option count is at or below
// the configured threshold.
func (c *Controller) SearchEnabled() bool {
	if c.cfg.DisableSearch {
		return false
	}
	if c.mode == Single {
		count := 0
		for _, o := range c.model.Options() {
			if !o.Empty {
				count++
			}
		}
		return count > c.cfg.DisableSearchThreshold
	}
	return true
}

// syncFromModel rebuilds the derived selection state from the freshly
// parsed model: the choice list in multi mode, the label in single mode.
// Choice order survives a rebuild for values that still exist; values that
// vanished are dropped without notice.
func (c *Controller) syncFromModel() {
	if c.mode == Multiple {
		selected := make(map[string]*domain.Option)
		for _, o := range c.model.SelectedOptions() {
			selected[o.Value] = o
		}

		var next []domain.Choice
		for _, ch := range c.choices {
			if o, ok := selected[ch.Value]; ok {
				next = append(next, c.makeChoice(o))
				delete(selected, ch.Value)
			}
		}
		for _, o := range c.model.SelectedOptions() {
			if _, ok := selected[o.Value]; ok {
				next = append(next, c.makeChoice(o))
			}
		}
		c.choices = next
		return
	}

	if cur := c.currentSingle(); cur != nil {
		c.label = c.selectedLabel(cur)
	} else {
		c.label = c.cfg.PlaceholderTextSingle
	}
}

func (c *Controller) makeChoice(o *domain.Option) domain.Choice {
	return domain.Choice{
		OptionIndex: o.Index,
		Value:       o.Value,
		Label:       c.selectedLabel(o),
		Disabled:    o.Disabled,
	}
}

// currentSingle returns the selected option of a single-select widget
func (c *Controller) currentSingle() *domain.Option {
	for _, o := range c.model.SelectedOptions() {
		return o
	}
	return nil
}

func (c *Controller) selectedLabel(o *domain.Option) string {
	if c.cfg.IncludeGroupLabelInSelected && o.GroupID >= 0 {
		if g := c.model.GroupAt(o.GroupID); g != nil {
			return g.Label + " - " + o.Text
		}
	}
	return o.Text
}

func (c *Controller) atCapacity() bool {
	return c.cfg.MaxSelectedOptions > config.Unbounded &&
		len(c.choices) >= c.cfg.MaxSelectedOptions
}

// hasEligible reports whether any option would be considered by a filter
// pass at all
func (c *Controller) hasEligible() bool {
	for _, o := range c.model.Options() {
		if c.includeOption(o) {
			return true
		}
	}
	return false
}

// ensureVisible scrolls the results viewport the minimum amount needed to
// bring the highlighted row fully into view
func (c *Controller) ensureVisible() {
	row := c.resultRow(c.search.Highlighted)
	if row < 0 {
		return
	}
	if row < c.scroll {
		c.scroll = row
	} else if row >= c.scroll+c.viewH {
		c.scroll = row - c.viewH + 1
	}
}

// resultRow returns the results-pane row of the given flattening index,
// -1 if it is not rendered
func (c *Controller) resultRow(index int) int {
	if index < 0 {
		return -1
	}
	for row, r := range c.results {
		if r.Index == index {
			return row
		}
	}
	return -1
}
