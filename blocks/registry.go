// Package blocks models block types, the style capabilities they declare and
// the style panels that apply to them.
package blocks

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrBlockNameRequired indicates a block type without a name.
	ErrBlockNameRequired = errors.New("blocks: name must be provided")
	// ErrDuplicateBlock indicates a second registration for the same name.
	ErrDuplicateBlock = errors.New("blocks: block type already registered")
)

// BlockType is the static metadata of a block type. Supports holds the
// declared capability flags exactly as written in block.json.
type BlockType struct {
	Name     string         `json:"name"`
	Title    string         `json:"title,omitempty"`
	Category string         `json:"category,omitempty"`
	Supports map[string]any `json:"supports,omitempty"`
}

// Registry exposes block types by name. Implementations must be safe for
// concurrent reads.
type Registry interface {
	BlockType(name string) (BlockType, bool)
}

// RegistryFunc adapts a function to Registry.
type RegistryFunc func(name string) (BlockType, bool)

// BlockType implements Registry.
func (fn RegistryFunc) BlockType(name string) (BlockType, bool) {
	if fn == nil {
		return BlockType{}, false
	}
	return fn(name)
}

// MemoryRegistry is a Registry backed by a map.
type MemoryRegistry struct {
	mu    sync.RWMutex
	types map[string]BlockType
}

// NewMemoryRegistry builds a registry pre-populated with types. Invalid or
// duplicate entries make it return an error.
func NewMemoryRegistry(types ...BlockType) (*MemoryRegistry, error) {
	r := &MemoryRegistry{types: make(map[string]BlockType, len(types))}
	for _, bt := range types {
		if err := r.Register(bt); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register stores bt under its name.
func (r *MemoryRegistry) Register(bt BlockType) error {
	name := strings.TrimSpace(bt.Name)
	if name == "" {
		return ErrBlockNameRequired
	}
	bt.Name = name
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.types == nil {
		r.types = make(map[string]BlockType)
	}
	if _, exists := r.types[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBlock, name)
	}
	r.types[name] = bt
	return nil
}

// BlockType implements Registry.
func (r *MemoryRegistry) BlockType(name string) (BlockType, bool) {
	if r == nil {
		return BlockType{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	bt, ok := r.types[name]
	return bt, ok
}

// Names returns registered block names sorted alphabetically.
func (r *MemoryRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
