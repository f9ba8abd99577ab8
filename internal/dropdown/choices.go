package dropdown

import (
	"choosy/internal/eventbus"
)

// Select selects the option at the given flattening index, as a pointer
// click on a result row would
func (c *Controller) Select(index int) {
	c.selectOption(index, false)
}

// SelectKeepOpen selects like Select but suppresses the hide-on-select
// close, as a modifier-click would
func (c *Controller) SelectKeepOpen(index int) {
	c.selectOption(index, true)
}

func (c *Controller) selectOption(index int, keepOpen bool) {
	o := c.model.OptionAt(index)
	if o == nil || o.Disabled || o.Empty {
		return
	}

	if c.mode == Multiple {
		if o.Selected {
			return
		}
		if c.atCapacity() {
			c.bus.Publish(eventbus.MaxSelectedEvent{Widget: c.name, Limit: c.cfg.MaxSelectedOptions})
			return
		}
		o.Selected = true
		c.host.SetSelected(o.HostIndex, true)
		c.choices = append(c.choices, c.makeChoice(o))
		c.bus.Publish(eventbus.ValueChangedEvent{Widget: c.name, Selected: o.Value})
	} else {
		prev := c.currentSingle()
		if prev != nil && prev != o {
			prev.Selected = false
			c.host.SetSelected(prev.HostIndex, false)
		}
		o.Selected = true
		c.host.SetSelected(o.HostIndex, true)
		c.label = c.selectedLabel(o)
		// Single mode only notifies when the host value actually changed
		if prev == nil || prev.Value != o.Value {
			c.bus.Publish(eventbus.ValueChangedEvent{Widget: c.name, Selected: o.Value})
		}
	}

	if c.mode == Single || (c.cfg.HideResultsOnSelect && !keepOpen) {
		c.Close()
	} else if c.state != StateClosed {
		c.winnow()
	}
}

// Deselect clears the selection of the option at the given flattening
// index. An option whose host entry is disabled cannot be deselected. It
// reports whether the deselect happened.
func (c *Controller) Deselect(index int) bool {
	o := c.model.OptionAt(index)
	if o == nil || !o.Selected || o.Disabled {
		return false
	}

	o.Selected = false
	c.host.SetSelected(o.HostIndex, false)

	if c.mode == Multiple {
		for i, ch := range c.choices {
			if ch.OptionIndex == index {
				c.choices = append(c.choices[:i], c.choices[i+1:]...)
				break
			}
		}
	} else {
		c.label = c.cfg.PlaceholderTextSingle
	}

	if c.state != StateClosed {
		c.winnow()
	}
	c.bus.Publish(eventbus.ValueChangedEvent{Widget: c.name, Deselected: o.Value})
	return true
}

// ClearSelection resets a single-select widget back to its placeholder.
// Only available when single deselection is allowed.
func (c *Controller) ClearSelection() bool {
	if c.mode != Single || !c.cfg.AllowSingleDeselect {
		return false
	}
	cur := c.currentSingle()
	if cur == nil {
		return false
	}
	c.search.PeggedClear = true
	return c.Deselect(cur.Index)
}

// ShowClearAffordance reports whether the single-deselect affordance
// should be visible: a deselectable selection exists, or the user has
// already interacted with it this open (pegged)
func (c *Controller) ShowClearAffordance() bool {
	if c.mode != Single || !c.cfg.AllowSingleDeselect {
		return false
	}
	return c.currentSingle() != nil || c.search.PeggedClear
}
