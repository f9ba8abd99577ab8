package options

import "choosy/internal/domain"

// Parse flattens the host's possibly-grouped option tree into a single
// ordered sequence. Groups come out immediately before their children, each
// record numbered by its position in the output. Options additionally carry
// their ordinal among all host option entries (empty ones included), since
// host reads and writes address by that ordinal.
func Parse(nodes []domain.HostNode) *Model {
	m := &Model{}
	index := 0
	hostIndex := 0

	for _, node := range nodes {
		switch {
		case node.Group != nil:
			group := &domain.Group{
				Index:    index,
				Label:    node.Group.Label,
				Disabled: node.Group.Disabled,
			}
			m.Items = append(m.Items, &Item{Group: group})
			index++

			for _, entry := range node.Group.Entries {
				opt := buildOption(entry, index, hostIndex)
				opt.GroupID = group.Index
				if group.Disabled {
					// Disabled groups force-disable every child
					opt.Disabled = true
				}
				m.Items = append(m.Items, &Item{Option: opt})
				index++
				hostIndex++
			}

		case node.Entry != nil:
			opt := buildOption(*node.Entry, index, hostIndex)
			opt.GroupID = -1
			m.Items = append(m.Items, &Item{Option: opt})
			index++
			hostIndex++
		}
	}

	m.HostTotal = hostIndex
	return m
}

func buildOption(entry domain.HostEntry, index, hostIndex int) *domain.Option {
	return &domain.Option{
		Index:     index,
		HostIndex: hostIndex,
		Text:      entry.Text,
		Value:     entry.Value,
		Title:     entry.Title,
		Disabled:  entry.Disabled,
		Selected:  entry.Selected,
		Empty:     entry.Text == "",
		Classes:   entry.Classes,
		RawMarkup: entry.RawMarkup,
	}
}

// OptionAt returns the option record at the given flattening index, or nil
// if the index is out of range or names a group
func (m *Model) OptionAt(index int) *domain.Option {
	if index < 0 || index >= len(m.Items) {
		return nil
	}
	return m.Items[index].Option
}

// GroupAt returns the group record at the given flattening index, or nil
func (m *Model) GroupAt(index int) *domain.Group {
	if index < 0 || index >= len(m.Items) {
		return nil
	}
	return m.Items[index].Group
}

// Options returns all option records in flattening order
func (m *Model) Options() []*domain.Option {
	var opts []*domain.Option
	for _, it := range m.Items {
		if it.Option != nil {
			opts = append(opts, it.Option)
		}
	}
	return opts
}

// SelectedOptions returns the options currently marked selected, in
// flattening order
func (m *Model) SelectedOptions() []*domain.Option {
	var opts []*domain.Option
	for _, it := range m.Items {
		if it.Option != nil && it.Option.Selected && !it.Option.Empty {
			opts = append(opts, it.Option)
		}
	}
	return opts
}
