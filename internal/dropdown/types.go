package dropdown

import "regexp"

// Mode discriminates single- and multi-select widgets
type Mode int

const (
	Single Mode = iota
	Multiple
)

// DropState is the results-pane state
type DropState int

const (
	StateClosed DropState = iota
	StateOpenNoMatch
	StateOpenWithResults
)

// Markers wrapped around the matched span in a rendered result. They land
// in entity-escaped text, so a literal "<em>" in option text can never
// collide with them.
const (
	EmOpen  = "<em>"
	EmClose = "</em>"
)

// SearchState is the transient filtering state, rebuilt on every keystroke
// and cleared entirely when the widget closes
type SearchState struct {
	Query         string
	Highlighted   int  // flattening index of the highlighted option, -1 none
	PendingDelete int  // option index staged for backstroke removal, -1 none
	PeggedClear   bool // keep the single-deselect affordance visible

	matchRe     *regexp.Regexp
	highlightRe *regexp.Regexp
}

func newSearchState() SearchState {
	return SearchState{Highlighted: -1, PendingDelete: -1}
}

// Result is one rendered row of the open results pane
type Result struct {
	Index    int    // flattening index of the underlying record
	IsGroup  bool
	Text     string // escaped, possibly carrying EmOpen/EmClose markers
	Title    string
	Disabled bool
	Selected bool
	Grouped  bool // option row belonging to a rendered group
}
