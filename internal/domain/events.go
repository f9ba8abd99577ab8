package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDropdownShowing EventType = "DropdownShowing"
	EventDropdownHiding  EventType = "DropdownHiding"
	EventValueChanged    EventType = "ValueChanged"
	EventMaxSelected     EventType = "MaxSelected"
	EventHighlightMoved  EventType = "HighlightMoved"
	EventResultsRendered EventType = "ResultsRendered"
	EventOptionsChanged  EventType = "OptionsChanged"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DropdownShowingEvent is emitted when a widget's results open
type DropdownShowingEvent struct {
	Widget string
}

func (e DropdownShowingEvent) Type() EventType { return EventDropdownShowing }

// DropdownHidingEvent is emitted when a widget's results close
type DropdownHidingEvent struct {
	Widget string
}

func (e DropdownHidingEvent) Type() EventType { return EventDropdownHiding }

// ValueChangedEvent is emitted when the widget's selection changes.
// Exactly one of Selected/Deselected is set.
type ValueChangedEvent struct {
	Widget     string
	Selected   string
	Deselected string
}

func (e ValueChangedEvent) Type() EventType { return EventValueChanged }

// MaxSelectedEvent is emitted when a select is rejected at capacity
type MaxSelectedEvent struct {
	Widget string
	Limit  int
}

func (e MaxSelectedEvent) Type() EventType { return EventMaxSelected }

// HighlightMovedEvent is emitted when the highlighted result changes
type HighlightMovedEvent struct {
	Widget   string
	OldIndex int // -1 if nothing was highlighted
	NewIndex int
}

func (e HighlightMovedEvent) Type() EventType { return EventHighlightMoved }

// ResultsRenderedEvent is emitted after each winnow pass
type ResultsRenderedEvent struct {
	Widget     string
	Query      string
	MatchCount int
}

func (e ResultsRenderedEvent) Type() EventType { return EventResultsRendered }

// OptionsChangedEvent is emitted when the host's option tree mutates
type OptionsChangedEvent struct {
	Widget string
}

func (e OptionsChangedEvent) Type() EventType { return EventOptionsChanged }

// ConfigLoadedEvent is emitted when configuration has been loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
