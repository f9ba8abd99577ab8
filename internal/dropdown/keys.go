package dropdown

// Key is an abstract keyboard action, independent of actual key codes
type Key int

const (
	KeyArrowForward Key = iota
	KeyArrowBackward
	KeyConfirm
	KeyTab
	KeyCancel
	KeyBackstroke
)

// HandleKey runs one abstract key through the widget. It reports whether
// the key was consumed and its default action should be suppressed.
func (c *Controller) HandleKey(k Key) bool {
	switch k {
	case KeyArrowForward:
		return c.arrowForward()
	case KeyArrowBackward:
		return c.arrowBackward()
	case KeyConfirm:
		if c.state == StateClosed {
			return false
		}
		c.SelectHighlighted()
		return true
	case KeyTab:
		// Tab-out commits only in single mode and never swallows the tab
		if c.state != StateClosed && c.mode == Single {
			c.SelectHighlighted()
		}
		return false
	case KeyCancel:
		if c.state == StateClosed {
			return false
		}
		c.Close()
		return true
	case KeyBackstroke:
		return c.backstroke()
	}
	return false
}

func (c *Controller) arrowForward() bool {
	if c.state == StateClosed {
		c.Open()
		return true
	}
	rows := c.navigableRows()
	if len(rows) == 0 {
		return true
	}
	pos := c.navPosition(rows)
	if pos == -1 {
		c.moveHighlight(c.search.Highlighted, rows[0])
		return true
	}
	if pos+1 < len(rows) {
		c.moveHighlight(c.search.Highlighted, rows[pos+1])
	}
	return true
}

func (c *Controller) arrowBackward() bool {
	if c.state == StateClosed {
		// Single mode reopens from the keyboard; multi mode leaves the
		// key to the search field
		if c.mode == Single {
			c.Open()
			return true
		}
		return false
	}
	rows := c.navigableRows()
	if len(rows) == 0 {
		return true
	}
	pos := c.navPosition(rows)
	if pos == -1 {
		c.moveHighlight(c.search.Highlighted, rows[0])
		return true
	}
	if pos == 0 {
		// Backing out of the first entry with choices present closes the
		// results in multi mode
		if c.mode == Multiple && len(c.choices) > 0 {
			c.Close()
		}
		return true
	}
	c.moveHighlight(c.search.Highlighted, rows[pos-1])
	return true
}

// backstroke handles the delete-class key over an empty search field in
// multi mode: the newest non-disabled choice is removed, either
// immediately or staged for a repeat press depending on configuration.
func (c *Controller) backstroke() bool {
	if c.mode != Multiple || c.search.Query != "" || len(c.choices) == 0 {
		return false
	}

	target := -1
	for i := len(c.choices) - 1; i >= 0; i-- {
		if !c.choices[i].Disabled {
			target = c.choices[i].OptionIndex
			break
		}
	}
	if target == -1 {
		return false
	}

	if c.cfg.SingleBackstrokeDelete || c.search.PendingDelete == target {
		c.search.PendingDelete = -1
		c.Deselect(target)
		return true
	}
	c.search.PendingDelete = target
	return true
}

// navigable reports whether the highlight can land on a result row. Group
// records and disabled entries never qualify; in multi mode neither do
// already-selected entries, so confirm always acts on a selectable one.
func (c *Controller) navigable(r Result) bool {
	if r.IsGroup || r.Disabled {
		return false
	}
	if c.mode == Multiple && r.Selected {
		return false
	}
	return true
}

// navigableRows returns the flattening indices of result rows the
// highlight can land on
func (c *Controller) navigableRows() []int {
	var rows []int
	for _, r := range c.results {
		if c.navigable(r) {
			rows = append(rows, r.Index)
		}
	}
	return rows
}

func (c *Controller) navPosition(rows []int) int {
	for i, idx := range rows {
		if idx == c.search.Highlighted {
			return i
		}
	}
	return -1
}
