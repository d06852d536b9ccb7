package globalstyles

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function is callable from rule expressions.
type Function func(args ...any) (any, error)

// Variadic marks a function that checks its own arguments.
const Variadic = -1

type registeredFunction struct {
	arity int
	fn    Function
}

// FunctionRegistry holds the functions exposed to rule expressions. Names
// are case-insensitive and stored lowercased.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]registeredFunction
}

// NewFunctionRegistry returns an empty registry. StyleFunctions returns one
// preloaded with the built-in helpers.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]registeredFunction)}
}

// Register adds a variadic function. Registering a name twice fails.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	return r.Define(name, Variadic, fn)
}

// Define adds a function taking exactly arity arguments, or any number
// when arity is Variadic. Registering a name twice fails.
func (r *FunctionRegistry) Define(name string, arity int, fn Function) error {
	key, err := functionKey(name, fn)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]registeredFunction)
	}
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("globalstyles: function %q already registered", name)
	}
	r.functions[key] = registeredFunction{arity: arity, fn: fn}
	return nil
}

func (r *FunctionRegistry) replace(name string, fn Function) error {
	key, err := functionKey(name, fn)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]registeredFunction)
	}
	r.functions[key] = registeredFunction{arity: Variadic, fn: fn}
	return nil
}

func functionKey(name string, fn Function) (string, error) {
	if fn == nil {
		return "", fmt.Errorf("globalstyles: function %q is nil", name)
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", fmt.Errorf("globalstyles: function name must not be empty")
	}
	return key, nil
}

// Clone returns an independent copy.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]registeredFunction, len(r.functions))}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call runs the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("globalstyles: function registry is nil")
	}
	r.mu.RLock()
	registered, ok := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("globalstyles: function %q not registered", name)
	}
	if registered.arity != Variadic && len(args) != registered.arity {
		return nil, fmt.Errorf("globalstyles: %s expects %d argument(s), got %d", name, registered.arity, len(args))
	}
	return registered.fn(args...)
}

func (r *FunctionRegistry) bound(name string) func(...any) (any, error) {
	return func(args ...any) (any, error) {
		return r.Call(name, args...)
	}
}

// Names returns the registered names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithFunctionRegistry replaces the functions of the default evaluator,
// built-ins included. Start from StyleFunctions to keep them.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction adds fn to the functions of the default evaluator,
// replacing a built-in of the same name.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = StyleFunctions()
		}
		_ = cfg.functions.replace(name, fn)
	}
}
