package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"choosy/internal/config"
	"choosy/internal/domain"
	"choosy/internal/dropdown"
	"choosy/internal/eventbus"
	"choosy/internal/host"
	"choosy/internal/ui"
)

func main() {
	var optionsPath string
	var configPath string
	flag.StringVar(&optionsPath, "options", "", "TOML options file defining the widgets")
	flag.StringVar(&optionsPath, "o", "", "TOML options file defining the widgets (shorthand)")
	flag.StringVar(&configPath, "config", ".choosy.toml", "widget behavior configuration")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("choosy.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New()

	// Load widget behavior configuration
	configSvc := config.NewServiceWithBus(bus)
	cfg, err := configSvc.LoadFromPath(configPath)
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.Default()
	}

	// Load widget definitions
	specs, watched := loadSpecs(optionsPath)

	// Build hosts and widgets
	coord := ui.NewCoordinator()
	var hosts []*host.MemoryHost
	for _, spec := range specs {
		h := host.NewMemoryHostWithBus(spec.Name, spec.Nodes, bus)
		hosts = append(hosts, h)

		mode := dropdown.Single
		if spec.Mode == "multiple" {
			mode = dropdown.Multiple
		}
		widgetCfg := *cfg // each widget owns its copy
		coord.Add(dropdown.New(spec.Name, mode, &widgetCfg, bus, h))
	}

	// Watch the options file so external edits flow back into the widgets
	if watched {
		watcher := host.NewWatcher(optionsPath, hosts)
		if err := watcher.Start(ctx); err != nil {
			log.Printf("Could not watch %s: %v", optionsPath, err)
		}
	}

	// Create UI model and program
	uiModel := ui.NewModel(coord, bus)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Forward bus events into the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventValueChanged, forward)
	bus.Subscribe(eventbus.EventMaxSelected, forward)
	bus.Subscribe(eventbus.EventOptionsChanged, forward)
	bus.Subscribe(eventbus.EventError, forward)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// The watcher may still publish while shutting down, so the event
	// channel is never closed; the forwarding goroutine dies with the
	// process after the context is cancelled.
	cancel()
}

// loadSpecs reads the widget definitions from the options file, falling
// back to a built-in sample set when no file is given. The second return
// reports whether a file is there to watch.
func loadSpecs(path string) ([]host.WidgetSpec, bool) {
	if path == "" {
		return sampleSpecs(), false
	}
	specs, err := host.LoadFile(path)
	if err != nil {
		log.Printf("Error loading options file: %v", err)
		fmt.Fprintf(os.Stderr, "could not load %s: %v\n", path, err)
		return sampleSpecs(), false
	}
	return specs, true
}

func sampleSpecs() []host.WidgetSpec {
	return []host.WidgetSpec{
		{
			Name: "color",
			Mode: "single",
			Nodes: []domain.HostNode{
				{Entry: &domain.HostEntry{Text: "", Value: ""}},
				{Entry: &domain.HostEntry{Text: "Red", Value: "red"}},
				{Entry: &domain.HostEntry{Text: "Green", Value: "green"}},
				{Entry: &domain.HostEntry{Text: "Blue", Value: "blue"}},
			},
		},
		{
			Name: "toppings",
			Mode: "multiple",
			Nodes: []domain.HostNode{
				{Group: &domain.HostGroup{Label: "Vegetables", Entries: []domain.HostEntry{
					{Text: "Mushroom", Value: "mushroom"},
					{Text: "Red Onion", Value: "red-onion"},
					{Text: "Spinach", Value: "spinach"},
				}}},
				{Group: &domain.HostGroup{Label: "Meats", Entries: []domain.HostEntry{
					{Text: "Pepperoni", Value: "pepperoni"},
					{Text: "Ham", Value: "ham"},
				}}},
				{Entry: &domain.HostEntry{Text: "Extra Cheese", Value: "cheese"}},
			},
		},
	}
}
