package dropdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choosy/internal/config"
	"choosy/internal/domain"
	"choosy/internal/eventbus"
	"choosy/internal/host"
)

// recorder collects bus events in publish order
type recorder struct {
	events []eventbus.DomainEvent
}

func record(bus eventbus.EventBus) *recorder {
	r := &recorder{}
	types := []eventbus.EventType{
		eventbus.EventDropdownShowing,
		eventbus.EventDropdownHiding,
		eventbus.EventValueChanged,
		eventbus.EventMaxSelected,
		eventbus.EventHighlightMoved,
		eventbus.EventOptionsChanged,
	}
	for _, et := range types {
		bus.Subscribe(et, func(e eventbus.DomainEvent) {
			r.events = append(r.events, e)
		})
	}
	return r
}

func (r *recorder) ofType(et eventbus.EventType) []eventbus.DomainEvent {
	var out []eventbus.DomainEvent
	for _, e := range r.events {
		if e.Type() == et {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.events = nil
}

func colorNodes() []domain.HostNode {
	return []domain.HostNode{
		{Entry: &domain.HostEntry{Text: "", Value: ""}},
		{Entry: &domain.HostEntry{Text: "Red", Value: "red"}},
		{Entry: &domain.HostEntry{Text: "Green", Value: "green"}},
		{Entry: &domain.HostEntry{Text: "Blue", Value: "blue"}},
	}
}

func newTestWidget(t *testing.T, mode Mode, cfg *config.Config, nodes []domain.HostNode) (*Controller, *host.MemoryHost, *recorder) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	bus := eventbus.New()
	rec := record(bus)
	h := host.NewMemoryHost("test", nodes)
	return New("test", mode, cfg, bus, h), h, rec
}

func TestSingleSelectScenario(t *testing.T) {
	c, h, rec := newTestWidget(t, Single, nil, colorNodes())

	require.Equal(t, StateClosed, c.GetState())
	assert.Equal(t, "Select an Option", c.GetDisplayText(), "placeholder before any selection")

	c.Open()
	require.Equal(t, StateOpenWithResults, c.GetState())
	require.Len(t, c.GetResults(), 3, "placeholder entry must not render")
	assert.Len(t, rec.ofType(eventbus.EventDropdownShowing), 1)

	c.Search("gr")
	require.Equal(t, StateOpenWithResults, c.GetState())
	require.Len(t, c.GetResults(), 1)
	assert.Equal(t, "<em>Gr</em>een", c.GetResults()[0].Text)
	assert.Equal(t, c.GetResults()[0].Index, c.GetHighlighted(), "sole match is highlighted")

	c.SelectHighlighted()
	assert.Equal(t, StateClosed, c.GetState(), "single select closes on select")
	assert.Equal(t, "Green", c.GetDisplayText())

	changes := rec.ofType(eventbus.EventValueChanged)
	require.Len(t, changes, 1, "exactly one value-changed notification")
	assert.Equal(t, "green", changes[0].(eventbus.ValueChangedEvent).Selected)

	// Host reflects the write at the green entry's ordinal
	nodes := h.ReadNodes()
	assert.True(t, nodes[2].Entry.Selected)
}

func TestSingleReselectSameValueEmitsNothing(t *testing.T) {
	c, _, rec := newTestWidget(t, Single, nil, colorNodes())

	c.Open()
	c.Search("red")
	c.SelectHighlighted()
	require.Len(t, rec.ofType(eventbus.EventValueChanged), 1)

	c.Open()
	c.Search("red")
	c.SelectHighlighted()
	assert.Len(t, rec.ofType(eventbus.EventValueChanged), 1,
		"re-selecting the current value must not notify again")
}

func TestSearchWhileClosedIsStored(t *testing.T) {
	c, _, _ := newTestWidget(t, Single, nil, colorNodes())

	c.Search("blu")
	assert.Equal(t, StateClosed, c.GetState(), "search never opens the widget")

	c.Open()
	require.Equal(t, StateOpenWithResults, c.GetState())
	require.Len(t, c.GetResults(), 1)
	assert.Equal(t, "<em>Blu</em>e", c.GetResults()[0].Text)
}

func TestCloseClearsSearchState(t *testing.T) {
	c, _, rec := newTestWidget(t, Single, nil, colorNodes())

	c.Open()
	c.Search("gr")
	c.Close()

	assert.Equal(t, "", c.GetQuery())
	assert.Equal(t, -1, c.GetHighlighted())
	assert.Len(t, rec.ofType(eventbus.EventDropdownHiding), 1)

	c.Open()
	assert.Len(t, c.GetResults(), 3, "stale query must not survive a close")
}

func TestNoResultsState(t *testing.T) {
	c, _, _ := newTestWidget(t, Single, nil, colorNodes())

	c.Open()
	c.Search("zzz")
	assert.Equal(t, StateOpenNoMatch, c.GetState())
	assert.Empty(t, c.GetResults())

	c.Search("")
	assert.Equal(t, StateOpenWithResults, c.GetState(),
		"empty query never yields the no-results state")
	assert.Len(t, c.GetResults(), 3)
}

func TestToggleOpen(t *testing.T) {
	c, _, _ := newTestWidget(t, Single, nil, colorNodes())

	c.ToggleOpen()
	assert.NotEqual(t, StateClosed, c.GetState())
	c.ToggleOpen()
	assert.Equal(t, StateClosed, c.GetState())
}

func TestOpenRefusedAtCapacity(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSelectedOptions = 1
	c, _, rec := newTestWidget(t, Multiple, cfg, colorNodes())

	c.Open()
	c.SelectHighlighted()
	require.Len(t, c.GetChoices(), 1)
	require.Equal(t, StateClosed, c.GetState())
	rec.reset()

	c.Open()
	assert.Equal(t, StateClosed, c.GetState(), "a full widget refuses to open")
	assert.Len(t, rec.ofType(eventbus.EventMaxSelected), 1)
}

func TestRebuildDropsVanishedSelections(t *testing.T) {
	c, h, rec := newTestWidget(t, Multiple, nil, colorNodes())

	c.Open()
	c.Search("red")
	c.SelectHighlighted()
	c.Open()
	c.Search("green")
	c.SelectHighlighted()
	require.Len(t, c.GetChoices(), 2)
	rec.reset()

	// Green disappears from the host
	h.ReplaceNodes([]domain.HostNode{
		{Entry: &domain.HostEntry{Text: "Red", Value: "red", Selected: true}},
		{Entry: &domain.HostEntry{Text: "Blue", Value: "blue"}},
	})
	c.Rebuild()

	require.Len(t, c.GetChoices(), 1, "vanished selection is dropped silently")
	assert.Equal(t, "red", c.GetChoices()[0].Value)
	assert.Empty(t, rec.ofType(eventbus.EventValueChanged),
		"dropping a stale selection is not a value change")
}

func TestRebuildKeepsOpenWidgetOpen(t *testing.T) {
	c, h, _ := newTestWidget(t, Single, nil, colorNodes())

	c.Open()
	c.Search("e")
	require.Equal(t, StateOpenWithResults, c.GetState())

	h.ReplaceNodes([]domain.HostNode{
		{Entry: &domain.HostEntry{Text: "Eggplant", Value: "eggplant"}},
		{Entry: &domain.HostEntry{Text: "Emerald", Value: "emerald"}},
	})
	c.Rebuild()

	assert.Equal(t, StateOpenWithResults, c.GetState())
	assert.Len(t, c.GetResults(), 2, "query re-applied against the fresh parse")
}

func TestRebuildClosesWhenNothingEligible(t *testing.T) {
	c, h, _ := newTestWidget(t, Single, nil, colorNodes())

	c.Open()
	require.NotEqual(t, StateClosed, c.GetState())

	h.ReplaceNodes([]domain.HostNode{
		{Entry: &domain.HostEntry{Text: "", Value: ""}},
	})
	c.Rebuild()

	assert.Equal(t, StateClosed, c.GetState())
}

func TestViewportScrollFollowsHighlight(t *testing.T) {
	var nodes []domain.HostNode
	for _, text := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"} {
		entry := domain.HostEntry{Text: text, Value: text}
		nodes = append(nodes, domain.HostNode{Entry: &entry})
	}
	c, _, _ := newTestWidget(t, Single, nil, nodes)
	c.SetViewportHeight(3)

	c.Open()
	require.Equal(t, 0, c.GetScrollOffset())

	// Walk the highlight past the viewport bottom
	for i := 0; i < 4; i++ {
		c.HandleKey(KeyArrowForward)
	}
	assert.Equal(t, 2, c.GetScrollOffset(), "scrolls down the minimum amount")

	// And back up
	for i := 0; i < 4; i++ {
		c.HandleKey(KeyArrowBackward)
	}
	assert.Equal(t, 0, c.GetScrollOffset(), "scrolls up the minimum amount")
}

func TestSearchEnabledThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.DisableSearchThreshold = 10
	c, _, _ := newTestWidget(t, Single, cfg, colorNodes())
	assert.False(t, c.SearchEnabled(), "3 options is at or below the threshold of 10")

	cfg2 := config.Default()
	c2, _, _ := newTestWidget(t, Single, cfg2, colorNodes())
	assert.True(t, c2.SearchEnabled())

	cfg3 := config.Default()
	cfg3.DisableSearch = true
	c3, _, _ := newTestWidget(t, Multiple, cfg3, colorNodes())
	assert.False(t, c3.SearchEnabled())
}
