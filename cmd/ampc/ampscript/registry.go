package ampscript

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps block types to their definitions.
//
// A Registry is built once and never mutated: WithDefinition returns a new
// value. It is therefore safe to share between concurrent compiles.
// The nil *Registry is valid and empty.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry builds a registry from defs.
// Returns ErrTypeAlreadyExists if two definitions share a type.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := r.add(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
// It is meant for static catalogs known to be valid.
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) add(def Definition) error {
	if err := CheckDefinition(def); err != nil {
		return err
	}
	t := def.Meta().Type
	if _, exists := r.defs[t]; exists {
		return fmt.Errorf("%w: %s", ErrTypeAlreadyExists, t)
	}
	r.defs[t] = def
	return nil
}

// WithDefinition returns a copy of r that also holds def.
// r itself is left unchanged.
func (r *Registry) WithDefinition(def Definition) (*Registry, error) {
	out := &Registry{defs: make(map[string]Definition, r.Len()+1)}
	if r != nil {
		for t, d := range r.defs {
			out.defs[t] = d
		}
	}
	if err := out.add(def); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup returns the definition registered for blockType.
func (r *Registry) Lookup(blockType string) (Definition, bool) {
	if r == nil {
		return nil, false
	}
	def, ok := r.defs[blockType]
	return def, ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.defs)
}

// Types returns the registered types in sorted order.
func (r *Registry) Types() []string {
	if r == nil {
		return nil
	}
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// CheckDefinition rejects definitions the compiler could not use:
// a nil definition, an empty type or an empty template.
func CheckDefinition(def Definition) error {
	if def == nil {
		return ErrNilDefinition
	}
	t := def.Meta().Type
	if strings.TrimSpace(t) == "" {
		return ErrEmptyType
	}
	if strings.TrimSpace(def.Template()) == "" {
		return fmt.Errorf("%w: %s", ErrMissingTemplate, t)
	}
	return nil
}

// CheckTemplateTokens verifies that every placeholder in the template is
// declared in the settings schema. Definitions without settings are not
// checked, since their template cannot reference config at all or relies
// on free-form config.
func CheckTemplateTokens(meta Meta, template string) error {
	if len(meta.Settings) == 0 {
		return nil
	}
	for _, tok := range TemplateTokens(template) {
		if _, ok := meta.Settings.Get(tok); !ok {
			return fmt.Errorf("%w: %s references {{%s}}", ErrUnknownToken, meta.Type, tok)
		}
	}
	return nil
}
