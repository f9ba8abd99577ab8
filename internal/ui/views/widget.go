package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"choosy/internal/domain"
	"choosy/internal/dropdown"
	"choosy/internal/options"
)

// WidgetState contains all the state needed to render one widget
type WidgetState struct {
	Name          string
	Multiple      bool
	Focused       bool
	Open          bool
	NoMatch       bool
	DisplayText   string
	Choices       []domain.Choice
	PendingDelete int
	SearchView    string // the rendered search field
	SearchEnabled bool
	Query         string
	Results       []dropdown.Result
	Highlighted   int
	Scroll        int
	ViewportH     int
	NoResultsText string
	ShowClear     bool
	Width         int
}

// Renderer handles widget rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{styles: styles}
}

// RenderWidget draws one widget: its header line, and the search field plus
// results viewport when open
func (r *Renderer) RenderWidget(st WidgetState) string {
	var b strings.Builder

	b.WriteString(r.renderHeader(st))
	b.WriteString("\n")

	if !st.Open {
		return b.String()
	}

	if st.SearchEnabled {
		b.WriteString("  " + r.styles.SearchPrompt.Render("search:") + " " + st.SearchView + "\n")
	}

	if st.NoMatch {
		b.WriteString("  " + r.styles.NoResults.Render(fmt.Sprintf("%s %q", st.NoResultsText, st.Query)) + "\n")
		return b.String()
	}

	b.WriteString(r.renderResults(st))
	return b.String()
}

func (r *Renderer) renderHeader(st WidgetState) string {
	title := r.styles.Title
	if st.Focused {
		title = r.styles.TitleFocused
	}
	marker := "  "
	if st.Focused {
		marker = "> "
	}
	head := marker + title.Render(st.Name) + " "

	if st.Multiple {
		if len(st.Choices) == 0 {
			return head + r.styles.Placeholder.Render(st.DisplayText)
		}
		chips := make([]string, 0, len(st.Choices))
		for _, ch := range st.Choices {
			style := r.styles.Choice
			switch {
			case ch.OptionIndex == st.PendingDelete:
				style = r.styles.ChoicePending
			case ch.Disabled:
				style = r.styles.ChoiceDisabled
			}
			chips = append(chips, style.Render(ch.Label))
		}
		return head + strings.Join(chips, " ")
	}

	label := r.styles.Label.Render(st.DisplayText)
	if st.DisplayText == "" {
		label = r.styles.Placeholder.Render("(none)")
	}
	if st.ShowClear {
		label += " " + r.styles.ClearMark.Render("[x]")
	}
	return head + label
}

func (r *Renderer) renderResults(st WidgetState) string {
	var b strings.Builder

	end := st.Scroll + st.ViewportH
	if end > len(st.Results) {
		end = len(st.Results)
	}

	for row := st.Scroll; row < end; row++ {
		res := st.Results[row]
		b.WriteString(r.renderRow(res, st) + "\n")
	}

	if len(st.Results) > st.ViewportH {
		b.WriteString("  " + r.styles.Scroll.Render(
			fmt.Sprintf("%d-%d of %d", st.Scroll+1, end, len(st.Results))) + "\n")
	}
	return b.String()
}

func (r *Renderer) renderRow(res dropdown.Result, st WidgetState) string {
	if res.IsGroup {
		return "  " + r.styles.Group.Render(r.plainText(res.Text))
	}

	cursor := "  "
	base := r.styles.Result
	switch {
	case res.Index == st.Highlighted:
		cursor = "> "
		base = r.styles.Highlight
	case res.Disabled:
		base = r.styles.Disabled
	case res.Selected:
		base = r.styles.Selected
	}

	indent := ""
	if res.Grouped {
		indent = "  "
	}
	mark := " "
	if res.Selected {
		mark = "*"
	}

	prefix := cursor + indent + mark + " "
	width := st.Width - lipgloss.Width(prefix)

	// Styled rows flatten the emphasis markers; plain rows keep them as a
	// styled span. Nesting the two would reset mid-line.
	if res.Index == st.Highlighted || res.Disabled || res.Selected {
		text := truncate(r.plainText(res.Text), width)
		return base.Render(prefix + text)
	}
	before, rest, found := strings.Cut(res.Text, dropdown.EmOpen)
	if !found {
		return prefix + truncate(options.UnescapeText(res.Text), width)
	}
	mid, after, _ := strings.Cut(rest, dropdown.EmClose)
	return prefix + options.UnescapeText(before) +
		r.styles.Em.Render(options.UnescapeText(mid)) +
		options.UnescapeText(after)
}

// plainText strips emphasis markers and restores entities
func (r *Renderer) plainText(text string) string {
	text = strings.ReplaceAll(text, dropdown.EmOpen, "")
	text = strings.ReplaceAll(text, dropdown.EmClose, "")
	return options.UnescapeText(text)
}

func truncate(text string, width int) string {
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
