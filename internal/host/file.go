package host

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"choosy/internal/domain"
)

// WidgetSpec is one widget definition read from an options file
type WidgetSpec struct {
	Name  string
	Mode  string // "single" or "multiple"
	Nodes []domain.HostNode
}

// File layout: a [[widget]] table per widget, ungrouped [[widget.option]]
// entries first, then [[widget.group]] tables with their own options.
type optionsFile struct {
	Widgets []fileWidget `toml:"widget"`
}

type fileWidget struct {
	Name    string       `toml:"name"`
	Mode    string       `toml:"mode"`
	Options []fileOption `toml:"option"`
	Groups  []fileGroup  `toml:"group"`
}

type fileGroup struct {
	Label    string       `toml:"label"`
	Disabled bool         `toml:"disabled"`
	Options  []fileOption `toml:"option"`
}

type fileOption struct {
	Text     string `toml:"text"`
	Value    string `toml:"value"`
	Title    string `toml:"title"`
	Disabled bool   `toml:"disabled"`
	Selected bool   `toml:"selected"`
	Classes  string `toml:"classes"`
}

// LoadFile reads widget definitions from a TOML options file
func LoadFile(path string) ([]WidgetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var file optionsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse options file: %w", err)
	}

	specs := make([]WidgetSpec, 0, len(file.Widgets))
	for _, w := range file.Widgets {
		mode := w.Mode
		if mode != "multiple" {
			mode = "single"
		}
		specs = append(specs, WidgetSpec{
			Name:  w.Name,
			Mode:  mode,
			Nodes: buildNodes(w),
		})
	}
	return specs, nil
}

func buildNodes(w fileWidget) []domain.HostNode {
	var nodes []domain.HostNode
	for _, o := range w.Options {
		entry := toEntry(o)
		nodes = append(nodes, domain.HostNode{Entry: &entry})
	}
	for _, g := range w.Groups {
		group := &domain.HostGroup{
			Label:    g.Label,
			Disabled: g.Disabled,
		}
		for _, o := range g.Options {
			group.Entries = append(group.Entries, toEntry(o))
		}
		nodes = append(nodes, domain.HostNode{Group: group})
	}
	return nodes
}

func toEntry(o fileOption) domain.HostEntry {
	return domain.HostEntry{
		Text:     o.Text,
		Value:    o.Value,
		Title:    o.Title,
		Disabled: o.Disabled,
		Selected: o.Selected,
		Classes:  o.Classes,
	}
}
