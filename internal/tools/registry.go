package tools

import (
	"context"
	"fmt"

	"ib-assistant/internal/types"
)

// Param is one declared capability parameter. Default is nil for required
// parameters; optional parameters carry their default rendered into the
// prompt schema and applied when the model omits them.
type Param struct {
	Name    string
	Type    string
	Default *string
}

// Optional is a convenience for declaring a parameter with a default.
func Optional(name, typ, def string) Param {
	return Param{Name: name, Type: typ, Default: &def}
}

// Required declares a parameter without a default.
func Required(name, typ string) Param {
	return Param{Name: name, Type: typ}
}

// ExecuteFunc runs a capability with the action's parameter map. A non-nil
// error means the invocation itself raised; the dispatcher converts it to a
// failed outcome and continues with the rest of the plan.
type ExecuteFunc func(ctx context.Context, args map[string]any) (types.Outcome, error)

// Capability is a named broker-facing operation with a declarative schema.
// Immutable after registration.
type Capability struct {
	Name    string
	Params  []Param
	Doc     string
	Execute ExecuteFunc
}

// Registry maps capability names to capabilities. Listing preserves
// registration order so prompts are reproducible across runs.
type Registry struct {
	byName map[string]*Capability
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Capability)}
}

// Register adds a capability. Duplicate names are rejected so a wiring
// mistake surfaces at bootstrap instead of silently shadowing a tool.
func (r *Registry) Register(c *Capability) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("tools: capability must have a name")
	}
	if c.Execute == nil {
		return fmt.Errorf("tools: capability %q has no execute func", c.Name)
	}
	if _, exists := r.byName[c.Name]; exists {
		return fmt.Errorf("tools: capability %q already registered", c.Name)
	}
	r.byName[c.Name] = c
	r.order = append(r.order, c.Name)
	return nil
}

// MustRegister registers or panics. Bootstrap-time wiring only.
func (r *Registry) MustRegister(c *Capability) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Get returns the capability with the given name.
func (r *Registry) Get(name string) (*Capability, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// List returns capabilities in registration order.
func (r *Registry) List() []*Capability {
	out := make([]*Capability, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Schemas renders the prompt schema string for every registered capability,
// in registration order.
func (r *Registry) Schemas() []string {
	caps := r.List()
	out := make([]string, 0, len(caps))
	for _, c := range caps {
		out = append(out, Describe(c))
	}
	return out
}
