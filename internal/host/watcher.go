package host

import (
	"context"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads an options file when it changes on disk and pushes the
// fresh option trees into the hosts it feeds. Each affected host announces
// the change on its bus, which is what drives widget rebuilds.
type Watcher struct {
	path  string
	hosts map[string]*MemoryHost
}

// NewWatcher creates a watcher for the given options file
func NewWatcher(path string, hosts []*MemoryHost) *Watcher {
	byName := make(map[string]*MemoryHost, len(hosts))
	for _, h := range hosts {
		byName[h.Name()] = h
	}
	return &Watcher{path: path, hosts: byName}
}

// Start watches the file until the context is cancelled
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := fw.Add(w.path); err != nil {
		fw.Close()
		return err
	}

	go func() {
		defer fw.Close()
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					w.reload()
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Printf("Watcher: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (w *Watcher) reload() {
	specs, err := LoadFile(w.path)
	if err != nil {
		log.Printf("Watcher: reload of %s failed: %v", w.path, err)
		return
	}

	for _, spec := range specs {
		h, ok := w.hosts[spec.Name]
		if !ok {
			continue
		}
		h.ReplaceNodes(spec.Nodes)
	}
	log.Printf("Watcher: reloaded %s (%d widgets)", w.path, len(specs))
}
