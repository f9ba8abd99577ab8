package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choosy/internal/eventbus"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	svc := NewService()
	cfg, err := svc.LoadFromPath(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err, "a missing config file is not an error")
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choosy.toml")
	content := `
search_contains = true
max_shown_results = 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewService().LoadFromPath(path)
	require.NoError(t, err)

	assert.True(t, cfg.SearchContains, "explicit key should apply")
	assert.Equal(t, 5, cfg.MaxShownResults)
	assert.True(t, cfg.GroupSearch, "absent keys keep their defaults")
	assert.Equal(t, "Select an Option", cfg.PlaceholderTextSingle)
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choosy.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_shown_results = ["), 0644))

	_, err := NewService().LoadFromPath(path)
	assert.Error(t, err)
}

func TestNormalizeClampsBadValues(t *testing.T) {
	cfg := Default()
	cfg.MaxSelectedOptions = -3
	cfg.MaxShownResults = -1
	cfg.DisableSearchThreshold = -7
	cfg.NoResultsText = ""

	cfg.Normalize()

	assert.Equal(t, Unbounded, cfg.MaxSelectedOptions)
	assert.Equal(t, Unbounded, cfg.MaxShownResults)
	assert.Equal(t, 0, cfg.DisableSearchThreshold)
	assert.Equal(t, "No results match", cfg.NoResultsText, "blank text falls back to the default")
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choosy.toml")
	svc := NewService()

	want := Default()
	want.CaseSensitiveSearch = true
	want.MaxSelectedOptions = 4
	want.PlaceholderTextMultiple = "Pick a few"

	require.NoError(t, svc.SaveToPath(want, path))

	got, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPublishesConfigLoaded(t *testing.T) {
	bus := eventbus.New()
	var paths []string
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
			paths = append(paths, ev.Path)
		}
	})

	path := filepath.Join(t.TempDir(), "absent.toml")
	_, err := NewServiceWithBus(bus).LoadFromPath(path)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, path, paths[0])
}
