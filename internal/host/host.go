package host

import (
	"choosy/internal/domain"
	"choosy/internal/eventbus"
)

// Host is the underlying native control a widget mirrors. The widget is the
// sole writer of selection state; the host may be read at any time between
// operations.
type Host interface {
	// ReadNodes returns the host's current option tree
	ReadNodes() []domain.HostNode
	// SetSelected writes the selected flag of the entry at the given
	// ordinal among all option entries. Out-of-range ordinals are a no-op.
	SetSelected(hostIndex int, selected bool)
}

// MemoryHost is an in-memory host control
type MemoryHost struct {
	name  string
	nodes []domain.HostNode
	bus   eventbus.EventBus
}

// NewMemoryHost creates a host over the given option tree
func NewMemoryHost(name string, nodes []domain.HostNode) *MemoryHost {
	return &MemoryHost{name: name, nodes: nodes}
}

// NewMemoryHostWithBus creates a host that announces option tree changes
func NewMemoryHostWithBus(name string, nodes []domain.HostNode, bus eventbus.EventBus) *MemoryHost {
	return &MemoryHost{name: name, nodes: nodes, bus: bus}
}

// Name returns the widget name this host backs
func (h *MemoryHost) Name() string {
	return h.name
}

// ReadNodes returns the host's current option tree
func (h *MemoryHost) ReadNodes() []domain.HostNode {
	return h.nodes
}

// SetSelected writes the selected flag at the given host ordinal
func (h *MemoryHost) SetSelected(hostIndex int, selected bool) {
	entry := h.entryAt(hostIndex)
	if entry == nil {
		return
	}
	entry.Selected = selected
}

// ReplaceNodes swaps in a new option tree, carrying selection flags over
// for entries whose value survived, and announces the change
func (h *MemoryHost) ReplaceNodes(nodes []domain.HostNode) {
	selected := make(map[string]bool)
	h.walk(func(entry *domain.HostEntry) {
		if entry.Selected && entry.Value != "" {
			selected[entry.Value] = true
		}
	})

	h.nodes = nodes
	h.walk(func(entry *domain.HostEntry) {
		if selected[entry.Value] {
			entry.Selected = true
		}
	})

	if h.bus != nil {
		h.bus.Publish(eventbus.OptionsChangedEvent{Widget: h.name})
	}
}

// entryAt resolves a host ordinal to its entry, nil if out of range
func (h *MemoryHost) entryAt(hostIndex int) *domain.HostEntry {
	if hostIndex < 0 {
		return nil
	}
	ordinal := 0
	var found *domain.HostEntry
	h.walk(func(entry *domain.HostEntry) {
		if ordinal == hostIndex {
			found = entry
		}
		ordinal++
	})
	return found
}

func (h *MemoryHost) walk(fn func(*domain.HostEntry)) {
	for i := range h.nodes {
		node := &h.nodes[i]
		if node.Group != nil {
			for j := range node.Group.Entries {
				fn(&node.Group.Entries[j])
			}
		} else if node.Entry != nil {
			fn(node.Entry)
		}
	}
}
