package theme

import (
	"sort"
	"strings"
	"sync"
)

// Root element classes managed by the runtime.
const (
	ClassLight         = "light"
	ClassDark          = "dark"
	ClassReduceMotion  = "reduce-motion"
	ClassNoTransitions = "no-transitions"
)

// Sink is the document root the runtime writes theme classes and attributes to.
// The runtime is its only writer.
type Sink interface {
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// Root is an in-memory Sink.
type Root struct {
	mu      sync.RWMutex
	classes map[string]struct{}
	attrs   map[string]string
	history []string
}

// NewRoot returns an empty root element.
func NewRoot() *Root {
	return &Root{
		classes: make(map[string]struct{}),
		attrs:   make(map[string]string),
	}
}

func (r *Root) AddClass(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = struct{}{}
	r.history = append(r.history, "+"+name)
}

func (r *Root) RemoveClass(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[name]; !ok {
		return
	}
	delete(r.classes, name)
	r.history = append(r.history, "-"+name)
}

func (r *Root) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

func (r *Root) SetAttribute(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[name] = value
}

func (r *Root) RemoveAttribute(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attrs, name)
}

// Attribute returns an attribute value.
func (r *Root) Attribute(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.attrs[name]
	return value, ok
}

// Classes returns the current classes sorted by name.
func (r *Root) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.classes))
	for name := range r.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ClassName renders the class list the way a class attribute would.
func (r *Root) ClassName() string {
	return strings.Join(r.Classes(), " ")
}

// History returns every class mutation in order, "+name" or "-name".
func (r *Root) History() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.history...)
}
