package skill

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrDuplicateSkill   = errors.New("skill: duplicate skill name")
	ErrUnknownSkill     = errors.New("skill: unknown skill name in configuration")
	ErrCapabilityDenied = errors.New("skill: capability not on operator allow list")
)

// Registry is a process-wide, read-only-after-build map from skill name to
// Skill instance. Built once at startup from the operator's enabled list,
// validated against a capability allow list the way the teacher's plugin
// manager validates declared dependencies before wiring a plugin in.
type Registry struct {
	skills map[string]Skill
}

// Build constructs a Registry from the full set of known skills, enabling
// only those named in enabled. A skill is rejected if any of its declared
// RequiredCapabilities is not present in allowedCapabilities -- unless
// allowedCapabilities is nil, which permits everything (no operator
// restriction configured).
func Build(known []Skill, enabled []string, allowedCapabilities []string) (*Registry, error) {
	byName := make(map[string]Skill, len(known))
	for _, s := range known {
		if _, dup := byName[s.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSkill, s.Name())
		}
		byName[s.Name()] = s
	}

	var allowed map[string]struct{}
	if allowedCapabilities != nil {
		allowed = make(map[string]struct{}, len(allowedCapabilities))
		for _, c := range allowedCapabilities {
			allowed[c] = struct{}{}
		}
	}

	r := &Registry{skills: make(map[string]Skill, len(enabled))}
	for _, name := range enabled {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
		}
		if allowed != nil {
			for _, capability := range s.RequiredCapabilities() {
				if _, ok := allowed[capability]; !ok {
					return nil, fmt.Errorf("%w: skill %s requires %s", ErrCapabilityDenied, name, capability)
				}
			}
		}
		r.skills[name] = s
	}
	return r, nil
}

// ToolDefinitions returns the adapter-neutral tool definitions for every
// enabled skill, in a one-to-one mapping an LLM provider adapter translates
// into its own schema.
func (r *Registry) ToolDefinitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.skills))
	for _, s := range r.skills {
		defs = append(defs, ToolDefinition{
			Name:        s.Name(),
			Description: s.Description(),
			InputSchema: s.ParametersSchema(),
		})
	}
	return defs
}

// Execute runs the named skill and always returns a usable string: unknown
// names and skill-internal errors are both translated into an
// "error: ..." result rather than propagated, so the agentic loop never
// has to special-case tool failures.
func (r *Registry) Execute(ctx context.Context, ec ExecContext, name string, params map[string]any) string {
	s, ok := r.skills[name]
	if !ok {
		return "error: unknown tool"
	}
	result, err := s.Execute(ctx, ec, params)
	if err != nil {
		return "error: " + err.Error()
	}
	return result
}
