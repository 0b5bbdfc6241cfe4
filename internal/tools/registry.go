package tools

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name()]; exists {
		panic(fmt.Sprintf("tool %s already registered", t.Name()))
	}
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns every tool ordered by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list()
}

func (r *Registry) list() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name() < tools[j].Name()
	})
	return tools
}

// Resolve selects tools by a comma-separated list of names. An empty
// selector selects all tools.
func (r *Registry) Resolve(selector string) ([]Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(selector) == "" {
		return r.list(), nil
	}

	var selected []Tool
	seen := make(map[string]bool)
	for _, name := range strings.Split(selector, ",") {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		t, ok := r.tools[name]
		if !ok {
			return nil, fmt.Errorf("tool not found: %s", name)
		}
		seen[name] = true
		selected = append(selected, t)
	}
	return selected, nil
}

// Build registers the full tool set against env.
func Build(env *Env) *Registry {
	r := NewRegistry()
	for _, t := range taskTools(env) {
		r.Register(t)
	}
	for _, t := range graphTools(env) {
		r.Register(t)
	}
	for _, t := range linkTools(env) {
		r.Register(t)
	}
	for _, t := range projectTools(env) {
		r.Register(t)
	}
	return r
}
