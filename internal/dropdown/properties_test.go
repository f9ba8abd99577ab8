package dropdown

import (
	"testing"

	"pgregory.net/rapid"

	"choosy/internal/config"
	"choosy/internal/domain"
	"choosy/internal/eventbus"
	"choosy/internal/host"
)

func nodesGen() *rapid.Generator[[]domain.HostNode] {
	text := rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,11}`)
	entry := rapid.Custom(func(t *rapid.T) domain.HostEntry {
		txt := text.Draw(t, "text")
		return domain.HostEntry{
			Text:     txt,
			Value:    txt,
			Disabled: rapid.Bool().Draw(t, "disabled"),
		}
	})
	return rapid.Custom(func(t *rapid.T) []domain.HostNode {
		var nodes []domain.HostNode
		n := rapid.IntRange(0, 8).Draw(t, "nodes")
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(t, "grouped") {
				group := &domain.HostGroup{
					Label:   text.Draw(t, "label"),
					Entries: rapid.SliceOfN(entry, 0, 4).Draw(t, "entries"),
				}
				nodes = append(nodes, domain.HostNode{Group: group})
			} else {
				e := entry.Draw(t, "entry")
				nodes = append(nodes, domain.HostNode{Entry: &e})
			}
		}
		return nodes
	})
}

func TestPropEmptyQueryMatchesAllEligible(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nodes := nodesGen().Draw(rt, "nodes")
		bus := eventbus.New()
		c := New("prop", Single, config.Default(), bus, host.NewMemoryHost("prop", nodes))

		eligible := 0
		for _, o := range c.model.Options() {
			if c.includeOption(o) {
				eligible++
			}
		}

		c.Open()
		if eligible > 0 && c.GetState() == StateOpenNoMatch {
			rt.Fatalf("empty query produced the no-results state")
		}
		rendered := 0
		for _, r := range c.GetResults() {
			if !r.IsGroup {
				rendered++
			}
		}
		if rendered != eligible {
			rt.Fatalf("rendered %d of %d eligible options", rendered, eligible)
		}
	})
}

func TestPropWinnowIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nodes := nodesGen().Draw(rt, "nodes")
		query := rapid.StringMatching(`[a-z]{0,3}`).Draw(rt, "query")
		bus := eventbus.New()
		c := New("prop", Single, config.Default(), bus, host.NewMemoryHost("prop", nodes))

		c.Open()
		c.Search(query)
		first := append([]Result(nil), c.GetResults()...)
		firstHighlight := c.GetHighlighted()
		firstState := c.GetState()

		c.Search(query)
		if c.GetState() != firstState {
			rt.Fatalf("state changed on repeat: %v != %v", c.GetState(), firstState)
		}
		if c.GetHighlighted() != firstHighlight {
			rt.Fatalf("highlight changed on repeat: %d != %d", c.GetHighlighted(), firstHighlight)
		}
		second := c.GetResults()
		if len(first) != len(second) {
			rt.Fatalf("result count changed on repeat: %d != %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				rt.Fatalf("row %d changed on repeat", i)
			}
		}
	})
}

func TestPropCapacityInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		nodes := nodesGen().Draw(rt, "nodes")
		limit := rapid.IntRange(1, 3).Draw(rt, "limit")
		cfg := config.Default()
		cfg.MaxSelectedOptions = limit
		cfg.HideResultsOnSelect = false
		bus := eventbus.New()
		c := New("prop", Multiple, cfg, bus, host.NewMemoryHost("prop", nodes))

		total := len(c.model.Options())
		if total == 0 {
			return
		}
		attempts := rapid.SliceOfN(rapid.IntRange(0, total*2), 1, 20).Draw(rt, "attempts")
		c.Open()
		for _, idx := range attempts {
			c.Select(idx)
			if len(c.GetChoices()) > limit {
				rt.Fatalf("%d choices exceed the limit of %d", len(c.GetChoices()), limit)
			}
		}
	})
}
