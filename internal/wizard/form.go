package wizard

import (
	"maps"
	"slices"
	"sync"
)

// FormState is the field container shared by every step of one wizard
// session. Steps hold the same *FormState; it is never copied between
// steps. Writes never validate.
type FormState struct {
	mu     sync.RWMutex
	values map[string]Value
}

func NewFormState() *FormState {
	return &FormState{values: make(map[string]Value)}
}

// Set overwrites the value of name.
func (f *FormState) Set(name string, v Value) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = v.clone()
}

// Get returns the value of name, or an empty Value when it was never set.
func (f *FormState) Get(name string) Value {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[name].clone()
}

func (f *FormState) SetText(name, s string) { f.Set(name, Text(s)) }

func (f *FormState) SetList(name string, items []string) { f.Set(name, List(items...)) }

func (f *FormState) SetLinks(name string, links []SocialLink) { f.Set(name, Links(links...)) }

func (f *FormState) SetFlag(name string, b bool) { f.Set(name, Flag(b)) }

func (f *FormState) GetText(name string) string { return f.Get(name).Text() }

func (f *FormState) GetList(name string) []string { return f.Get(name).List() }

func (f *FormState) GetLinks(name string) []SocialLink { return f.Get(name).Links() }

func (f *FormState) GetFlag(name string) bool { return f.Get(name).Flag() }

// Fields returns the names of all set fields in sorted order.
func (f *FormState) Fields() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.values))
}

func (f *FormState) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.values)
}

// Reset clears every field.
func (f *FormState) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.values)
}
