package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Catalog is a thread-safe set of reference models loaded from a directory
// of YAML files, one model per file.
type Catalog struct {
	mu     sync.RWMutex
	dir    string
	models map[string]Model
	log    *zap.Logger
}

// New creates an empty Catalog for dir. Call Reload to populate it.
func New(dir string, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{dir: dir, models: map[string]Model{}, log: log}
}

// LoadDir parses every .yaml/.yml file in dir. Any invalid file or duplicate
// id fails the whole load.
func LoadDir(dir string) (map[string]Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: read dir %q: %w", dir, err)
	}
	models := make(map[string]Model)
	for _, e := range entries {
		if e.IsDir() || !isModelFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %q: %w", path, err)
		}
		var m Model
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
		}
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", e.Name(), err)
		}
		if _, dup := models[m.ID]; dup {
			return nil, fmt.Errorf("catalog: %s: duplicate model id %q", e.Name(), m.ID)
		}
		models[m.ID] = m
	}
	return models, nil
}

// Reload re-reads the directory. On error the previous models stay active.
func (c *Catalog) Reload() error {
	models, err := LoadDir(c.dir)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.models = models
	c.mu.Unlock()
	return nil
}

// Get returns the model with the given id.
func (c *Catalog) Get(id string) (Model, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.models[id]
	return m, ok
}

// List returns every model summary ordered by id.
func (c *Catalog) List() []Summary {
	c.mu.RLock()
	out := make([]Summary, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m.Summary())
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of models loaded.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Watch reloads the catalog whenever a model file in the directory is
// written, created, removed or renamed. It runs until ctx is cancelled.
//
// If a reload fails (e.g., invalid YAML), the error is logged and the
// previous catalog remains active.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return err
	}

	c.log.Info("catalog: watching for changes", zap.String("dir", c.dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isModelFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			if err := c.Reload(); err != nil {
				c.log.Error("catalog: reload failed, keeping previous catalog",
					zap.String("file", event.Name), zap.Error(err))
				continue
			}
			c.log.Info("catalog: reloaded", zap.String("file", event.Name), zap.Int("models", c.Count()))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Error("catalog: watcher error", zap.Error(err))
		}
	}
}

func isModelFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
