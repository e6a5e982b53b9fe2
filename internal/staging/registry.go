package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Registry owns one Stage per (browser session, form) and the preview files
// backing them.
type Registry struct {
	Dir      string
	MaxFiles int
	MaxBytes int64

	mu       sync.Mutex
	stages   map[string]*Stage
	previews map[string]File
}

// NewRegistry prepares dir and removes files left there by a previous run;
// stages do not outlive the process that holds them.
func NewRegistry(dir string, maxFiles int, maxBytes int64) (*Registry, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("staging dir: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("staging dir: %w", err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
				return nil, fmt.Errorf("staging dir: %w", err)
			}
		}
	}
	return &Registry{
		Dir:      dir,
		MaxFiles: maxFiles,
		MaxBytes: maxBytes,
		stages:   map[string]*Stage{},
		previews: map[string]File{},
	}, nil
}

func key(sid, form string) string { return sid + "|" + form }

// Stage returns the stage for sid and form, creating it on first use.
func (r *Registry) Stage(sid, form string) *Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(sid, form)
	s, ok := r.stages[k]
	if !ok {
		s = &Stage{reg: r}
		r.stages[k] = s
	}
	return s
}

// Discard releases and forgets the stage for sid and form.
func (r *Registry) Discard(sid, form string) {
	r.mu.Lock()
	s, ok := r.stages[key(sid, form)]
	delete(r.stages, key(sid, form))
	r.mu.Unlock()
	if ok {
		s.Discard()
	}
}

// DiscardSession releases every stage belonging to sid, used on logout and
// when an expired session is swept.
func (r *Registry) DiscardSession(sid string) {
	prefix := sid + "|"
	r.mu.Lock()
	var drop []*Stage
	for k, s := range r.stages {
		if strings.HasPrefix(k, prefix) {
			drop = append(drop, s)
			delete(r.stages, k)
		}
	}
	r.mu.Unlock()
	for _, s := range drop {
		s.Discard()
	}
}

// Preview resolves a preview id to its file. Released previews are gone.
func (r *Registry) Preview(id string) (File, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.previews[id]
	return f, ok
}

// Live is the number of previews currently registered.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.previews)
}

func (r *Registry) register(f File) {
	r.mu.Lock()
	r.previews[f.ID] = f
	r.mu.Unlock()
}

func (r *Registry) release(f File) {
	r.mu.Lock()
	delete(r.previews, f.ID)
	r.mu.Unlock()
	_ = os.Remove(f.Path)
}
