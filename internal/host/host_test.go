package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choosy/internal/domain"
	"choosy/internal/eventbus"
)

func treeNodes() []domain.HostNode {
	return []domain.HostNode{
		{Entry: &domain.HostEntry{Text: "Loose", Value: "loose"}},
		{Group: &domain.HostGroup{
			Label: "Fruit",
			Entries: []domain.HostEntry{
				{Text: "Apple", Value: "apple"},
				{Text: "Banana", Value: "banana"},
			},
		}},
		{Entry: &domain.HostEntry{Text: "Tail", Value: "tail"}},
	}
}

func selectedValues(h *MemoryHost) []string {
	var vals []string
	for _, node := range h.ReadNodes() {
		if node.Group != nil {
			for _, e := range node.Group.Entries {
				if e.Selected {
					vals = append(vals, e.Value)
				}
			}
		} else if node.Entry != nil && node.Entry.Selected {
			vals = append(vals, node.Entry.Value)
		}
	}
	return vals
}

func TestSetSelectedAddressesByOrdinal(t *testing.T) {
	h := NewMemoryHost("w", treeNodes())

	// Ordinals count option entries only: loose=0, apple=1, banana=2, tail=3.
	h.SetSelected(2, true)
	assert.Equal(t, []string{"banana"}, selectedValues(h))

	h.SetSelected(3, true)
	assert.Equal(t, []string{"banana", "tail"}, selectedValues(h))

	h.SetSelected(2, false)
	assert.Equal(t, []string{"tail"}, selectedValues(h))
}

func TestSetSelectedOutOfRangeIsNoOp(t *testing.T) {
	h := NewMemoryHost("w", treeNodes())

	h.SetSelected(-1, true)
	h.SetSelected(4, true)
	h.SetSelected(99, true)

	assert.Empty(t, selectedValues(h))
}

func TestReplaceNodesCarriesSelectionByValue(t *testing.T) {
	h := NewMemoryHost("w", treeNodes())
	h.SetSelected(1, true) // apple
	h.SetSelected(3, true) // tail

	h.ReplaceNodes([]domain.HostNode{
		{Group: &domain.HostGroup{
			Label: "Fruit",
			Entries: []domain.HostEntry{
				{Text: "Apple", Value: "apple"},
				{Text: "Cherry", Value: "cherry"},
			},
		}},
	})

	assert.Equal(t, []string{"apple"}, selectedValues(h),
		"surviving value stays selected, vanished values are gone")
}

func TestReplaceNodesPublishesOptionsChanged(t *testing.T) {
	bus := eventbus.New()
	var widgets []string
	bus.Subscribe(eventbus.EventOptionsChanged, func(e eventbus.DomainEvent) {
		widgets = append(widgets, e.(eventbus.OptionsChangedEvent).Widget)
	})

	h := NewMemoryHostWithBus("colors", treeNodes(), bus)
	h.ReplaceNodes(nil)

	require.Len(t, widgets, 1)
	assert.Equal(t, "colors", widgets[0])
}

func TestLoadFileParsesWidgets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.toml")
	content := `
[[widget]]
name = "color"
mode = "single"

[[widget.option]]
text = ""
value = ""

[[widget.option]]
text = "Red"
value = "red"

[[widget]]
name = "toppings"
mode = "multiple"

[[widget.group]]
label = "Vegetables"

[[widget.group.option]]
text = "Mushrooms"
value = "mushrooms"
selected = true

[[widget.group]]
label = "Legacy"
disabled = true

[[widget.group.option]]
text = "Anchovies"
value = "anchovies"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	specs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	color := specs[0]
	assert.Equal(t, "color", color.Name)
	assert.Equal(t, "single", color.Mode)
	require.Len(t, color.Nodes, 2)
	assert.Equal(t, "", color.Nodes[0].Entry.Text, "empty placeholder survives parsing")
	assert.Equal(t, "red", color.Nodes[1].Entry.Value)

	toppings := specs[1]
	assert.Equal(t, "multiple", toppings.Mode)
	require.Len(t, toppings.Nodes, 2)
	veg := toppings.Nodes[0].Group
	require.NotNil(t, veg)
	require.Len(t, veg.Entries, 1)
	assert.True(t, veg.Entries[0].Selected)
	assert.True(t, toppings.Nodes[1].Group.Disabled)
}

func TestLoadFileDefaultsUnknownModeToSingle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.toml")
	content := `
[[widget]]
name = "w"
mode = "tristate"

[[widget.option]]
text = "A"
value = "a"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	specs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "single", specs[0].Mode)
}

func TestLoadFileMissingPathFails(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
