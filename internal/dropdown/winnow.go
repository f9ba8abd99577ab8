package dropdown

import (
	"regexp"
	"strings"

	"choosy/internal/domain"
	"choosy/internal/eventbus"
	"choosy/internal/options"
)

var bracketStripper = strings.NewReplacer("[", "", "]", "")

// winnow recomputes match and highlight state for every option from the
// current query, rebuilds the rendered rows and re-establishes the
// highlight. One linear pass over the flattened model.
func (c *Controller) winnow() {
	query := c.search.Query
	c.compilePatterns(query)

	matches := 0
	for _, it := range c.model.Items {
		if g := it.Group; g != nil {
			// Counters reset at the group record, which always precedes
			// its children in flattening order
			g.ActiveOptions = 0
			g.GroupMatch = false
			g.SearchMatch = false
			g.SearchText = options.DisplayLabel(g)
			if !c.includeGroup(g) {
				continue
			}
			if c.cfg.GroupSearch && c.textMatches(g.Label) {
				g.SearchMatch = true
				g.SearchText = c.highlightCopy(g.Label, false)
			}
			continue
		}

		o := it.Option
		o.SearchMatch = false
		o.SearchText = ""
		if !c.includeOption(o) {
			continue
		}

		var group *domain.Group
		if o.GroupID >= 0 {
			group = c.model.GroupAt(o.GroupID)
			if group != nil && !c.includeGroup(group) {
				group = nil
			}
		}
		if group != nil {
			// A label-matched group counts as one match the moment its
			// first eligible child shows up
			if group.ActiveOptions == 0 && group.SearchMatch {
				matches++
			}
			group.ActiveOptions++
		}

		if c.textMatches(o.Text) {
			o.SearchMatch = true
			o.SearchText = c.highlightCopy(o.Text, o.RawMarkup)
			matches++
			if group != nil {
				group.GroupMatch = true
			}
		} else if group != nil && group.SearchMatch {
			// Children of a label-matched group ride along uncounted
			o.SearchMatch = true
			o.SearchText = options.DisplayText(o)
		}
	}

	old := c.search.Highlighted
	c.search.Highlighted = -1

	if matches < 1 && query != "" {
		c.results = nil
		c.state = StateOpenNoMatch
	} else {
		c.results = c.buildResults()
		c.state = StateOpenWithResults
		c.establishHighlight(old)
	}

	c.bus.Publish(eventbus.ResultsRenderedEvent{
		Widget:     c.name,
		Query:      query,
		MatchCount: matches,
	})
}

// compilePatterns builds the match pattern (anchored unless contains mode)
// and the highlight pattern (never anchored) from the query
func (c *Controller) compilePatterns(query string) {
	escaped := regexp.QuoteMeta(query)
	flags := "(?i)"
	if c.cfg.CaseSensitiveSearch {
		flags = ""
	}
	anchor := "^"
	if c.cfg.SearchContains {
		anchor = ""
	}
	c.search.matchRe = regexp.MustCompile(flags + anchor + escaped)
	c.search.highlightRe = regexp.MustCompile(flags + escaped)
}

// textMatches tests text against the match pattern, falling back to
// whitespace-delimited tokens (brackets stripped) when split-word search
// applies
func (c *Controller) textMatches(text string) bool {
	if c.search.matchRe.MatchString(text) {
		return true
	}
	if c.cfg.EnableSplitWordSearch &&
		(strings.Contains(text, " ") || strings.HasPrefix(text, "[")) {
		for _, part := range strings.Fields(bracketStripper.Replace(text)) {
			if c.search.matchRe.MatchString(part) {
				return true
			}
		}
	}
	return false
}

// highlightCopy builds the render copy of matched text: entity-escaped,
// with the first highlight-pattern match wrapped in emphasis markers. The
// canonical text is never touched. Pre-escaped markup passes through
// unannotated.
func (c *Controller) highlightCopy(text string, rawMarkup bool) string {
	if rawMarkup {
		return text
	}
	if c.search.Query == "" {
		return options.EscapeText(text)
	}
	loc := c.search.highlightRe.FindStringIndex(text)
	if loc == nil {
		return options.EscapeText(text)
	}
	return options.EscapeText(text[:loc[0]]) +
		EmOpen + options.EscapeText(text[loc[0]:loc[1]]) + EmClose +
		options.EscapeText(text[loc[1]:])
}

// buildResults walks the flattened model and emits the rows to render: a
// group row when the group matched (by label or through a child) and still
// has eligible children, an option row for every match. Rendering stops at
// the configured cap of matching entries.
func (c *Controller) buildResults() []Result {
	var rows []Result
	rendered := 0
	for _, it := range c.model.Items {
		if c.cfg.MaxShownResults > 0 && rendered >= c.cfg.MaxShownResults {
			break
		}
		if g := it.Group; g != nil {
			if !c.includeGroup(g) {
				continue
			}
			if g.ActiveOptions > 0 && (g.SearchMatch || g.GroupMatch) {
				rows = append(rows, Result{
					Index:    g.Index,
					IsGroup:  true,
					Text:     g.SearchText,
					Disabled: g.Disabled,
				})
			}
			continue
		}

		o := it.Option
		if !o.SearchMatch || !c.includeOption(o) {
			continue
		}
		rows = append(rows, Result{
			Index:    o.Index,
			Text:     o.SearchText,
			Title:    o.Title,
			Disabled: o.Disabled,
			Selected: o.Selected,
			Grouped:  o.GroupID >= 0,
		})
		rendered++
	}
	return rows
}

// establishHighlight picks the highlight after a filter pass: in single
// mode the first rendered entry that is already selected, else the first
// navigable rendered entry. Disabled rows are never highlighted, and in
// multi mode neither are already-selected rows, even when they render.
func (c *Controller) establishHighlight(old int) {
	target := -1
	if c.mode == Single {
		for _, r := range c.results {
			if !r.IsGroup && r.Selected && !r.Disabled {
				target = r.Index
				break
			}
		}
	}
	if target == -1 {
		for _, r := range c.results {
			if c.navigable(r) {
				target = r.Index
				break
			}
		}
	}
	c.moveHighlight(old, target)
}

// moveHighlight applies a highlight change, scrolls it into view and
// announces the move
func (c *Controller) moveHighlight(old, target int) {
	c.search.Highlighted = target
	c.ensureVisible()
	if target != -1 && old != target {
		c.bus.Publish(eventbus.HighlightMovedEvent{
			Widget:   c.name,
			OldIndex: old,
			NewIndex: target,
		})
	}
}

// includeOption is the eligibility predicate for the filter pass
func (c *Controller) includeOption(o *domain.Option) bool {
	if o.Empty {
		return false
	}
	if c.mode == Multiple && !c.cfg.DisplaySelectedOptions && o.Selected {
		return false
	}
	if !c.cfg.DisplayDisabledOptions && o.Disabled {
		return false
	}
	return true
}

func (c *Controller) includeGroup(g *domain.Group) bool {
	return c.cfg.DisplayDisabledOptions || !g.Disabled
}
