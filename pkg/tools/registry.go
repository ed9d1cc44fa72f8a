package tools

import (
	"fmt"
	"sort"

	"github.com/soypete/funcchat/pkg/llm"
)

// Registry is an immutable name→handler lookup table. It is fully populated
// at construction and never mutated afterwards, so concurrent lookups from
// multiple in-flight conversations need no locking.
type Registry struct {
	handlers map[string]Handler
	names    []string
}

// NewRegistry builds a registry from the given handlers. Handler names must
// be unique.
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{
		handlers: make(map[string]Handler, len(handlers)),
		names:    make([]string, 0, len(handlers)),
	}

	for _, h := range handlers {
		name := h.Name()
		if _, exists := r.handlers[name]; exists {
			return nil, fmt.Errorf("handler %q already registered", name)
		}
		r.handlers[name] = h
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	return r, nil
}

// Lookup retrieves a handler by name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, exists := r.handlers[name]
	return h, exists
}

// Names returns the registered handler names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	return len(r.handlers)
}

// Declarations returns one API tool declaration per registered handler,
// in sorted name order. The declarations are advisory metadata sent to the
// endpoint; the marker grammar is the actual invocation mechanism.
func (r *Registry) Declarations() []llm.Tool {
	decls := make([]llm.Tool, 0, len(r.names))
	for _, name := range r.names {
		h := r.handlers[name]
		decls = append(decls, llm.Tool{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        h.Name(),
				Description: h.Description(),
				Parameters:  h.Schema(),
			},
		})
	}
	return decls
}
