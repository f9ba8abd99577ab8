package domain

// HostEntry is one option as the host control reports it
type HostEntry struct {
	Text      string
	Value     string
	Title     string // optional tooltip text
	Disabled  bool
	Selected  bool
	Classes   string
	RawMarkup bool // text is pre-escaped markup, pass through as-is
}

// HostGroup is a labeled cluster of host entries
type HostGroup struct {
	Label    string
	Disabled bool
	Entries  []HostEntry
}

// HostNode is one top-level item of the host's option tree.
// Exactly one of Group/Entry is set.
type HostNode struct {
	Group *HostGroup
	Entry *HostEntry
}

// Option is one selectable entry in the flattened model
type Option struct {
	Index     int // position in flattening order, unique per parse
	HostIndex int // ordinal in the host control, used for host reads/writes
	Text      string
	Value     string
	Title     string
	Disabled  bool
	Selected  bool
	Empty     bool // placeholder entry with no value
	GroupID   int  // Index of the owning Group record, -1 if ungrouped
	Classes   string
	RawMarkup bool

	// Derived per filter pass, never persisted across passes
	SearchMatch bool
	SearchText  string // render copy, may carry highlight markers
}

// Group is a labeled cluster of Options, itself not selectable
type Group struct {
	Index    int // position in flattening order
	Label    string
	Disabled bool

	// Derived per filter pass
	ActiveOptions int  // eligible children seen this pass
	SearchMatch   bool // label itself matched the query
	GroupMatch    bool // at least one child matched the query
	SearchText    string
}

// Choice is a multi-select widget's visible, removable representation of
// one selected Option
type Choice struct {
	OptionIndex int
	Value       string
	Label       string
	Disabled    bool
}
