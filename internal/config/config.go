package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"choosy/internal/eventbus"
)

// Unbounded marks a limit with no cap
const Unbounded = 0

// Config holds all widget behavior settings
type Config struct {
	AllowSingleDeselect         bool   `toml:"allow_single_deselect"`
	DisableSearch               bool   `toml:"disable_search"`
	DisableSearchThreshold      int    `toml:"disable_search_threshold"`
	EnableSplitWordSearch       bool   `toml:"enable_split_word_search"`
	GroupSearch                 bool   `toml:"group_search"`
	SearchContains              bool   `toml:"search_contains"`
	CaseSensitiveSearch         bool   `toml:"case_sensitive_search"`
	SingleBackstrokeDelete      bool   `toml:"single_backstroke_delete"`
	MaxSelectedOptions          int    `toml:"max_selected_options"`
	MaxShownResults             int    `toml:"max_shown_results"`
	DisplaySelectedOptions      bool   `toml:"display_selected_options"`
	DisplayDisabledOptions      bool   `toml:"display_disabled_options"`
	IncludeGroupLabelInSelected bool   `toml:"include_group_label_in_selected"`
	HideResultsOnSelect         bool   `toml:"hide_results_on_select"`
	PlaceholderTextSingle       string `toml:"placeholder_text_single"`
	PlaceholderTextMultiple     string `toml:"placeholder_text_multiple"`
	NoResultsText               string `toml:"no_results_text"`
}

// Default returns the configuration with its documented defaults
func Default() *Config {
	return &Config{
		EnableSplitWordSearch:   true,
		GroupSearch:             true,
		SingleBackstrokeDelete:  true,
		MaxSelectedOptions:      Unbounded,
		MaxShownResults:         Unbounded,
		DisplaySelectedOptions:  true,
		DisplayDisabledOptions:  true,
		HideResultsOnSelect:     true,
		PlaceholderTextSingle:   "Select an Option",
		PlaceholderTextMultiple: "Select Some Options",
		NoResultsText:           "No results match",
	}
}

// Normalize clamps invalid values in place. Configuration problems are
// never fatal: out-of-range numbers fall back to their unbounded or zero
// form and empty texts fall back to the defaults.
func (c *Config) Normalize() {
	if c.MaxSelectedOptions < 0 {
		c.MaxSelectedOptions = Unbounded
	}
	if c.MaxShownResults < 0 {
		c.MaxShownResults = Unbounded
	}
	if c.DisableSearchThreshold < 0 {
		c.DisableSearchThreshold = 0
	}
	defaults := Default()
	if c.PlaceholderTextSingle == "" {
		c.PlaceholderTextSingle = defaults.PlaceholderTextSingle
	}
	if c.PlaceholderTextMultiple == "" {
		c.PlaceholderTextMultiple = defaults.PlaceholderTextMultiple
	}
	if c.NoResultsText == "" {
		c.NoResultsText = defaults.NoResultsText
	}
}

// Service handles configuration loading and saving
type Service interface {
	LoadFromPath(path string) (*Config, error)
	SaveToPath(cfg *Config, path string) error
}

// service is the concrete implementation
type service struct {
	bus eventbus.EventBus
}

// NewService creates a new config service
func NewService() Service {
	return &service{}
}

// NewServiceWithBus creates a config service with event bus support
func NewServiceWithBus(bus eventbus.EventBus) Service {
	return &service{bus: bus}
}

// LoadFromPath loads configuration from a TOML file. A missing file yields
// the defaults.
func (s *service) LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.notifyLoaded(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep their default values
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	s.notifyLoaded(path)
	return cfg, nil
}

// SaveToPath saves the configuration to a TOML file
func (s *service) SaveToPath(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (s *service) notifyLoaded(path string) {
	if s.bus != nil {
		s.bus.Publish(eventbus.ConfigLoadedEvent{Path: path})
	}
}
