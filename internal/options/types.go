package options

import "choosy/internal/domain"

// Item is one record in flattening order: a group header or an option.
// Exactly one of Group/Option is set.
type Item struct {
	Group  *domain.Group
	Option *domain.Option
}

// IsGroup reports whether the item is a group header
func (it *Item) IsGroup() bool {
	return it.Group != nil
}

// Index returns the item's position in flattening order
func (it *Item) Index() int {
	if it.Group != nil {
		return it.Group.Index
	}
	return it.Option.Index
}

// Model holds the flattened result of one parse of the host option tree
type Model struct {
	Items     []*Item
	HostTotal int // count of host option entries, empty ones included
}
