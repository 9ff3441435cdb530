package commands

import (
	"errors"
	"fmt"
	"slices"
)

// Command is a named, parameterized list of instruction steps bound to a key
// in a layer. Commands are validated on construction and immutable afterwards.
type Command struct {
	name        string
	description string
	steps       []Template
	params      []Parameter
	final       bool
}

// Option configures a Command at construction time
type Option func(*options)

type options struct {
	description string
	final       bool
	sync        bool
}

// Final marks the command as ending the interaction after it runs
func Final(final bool) Option {
	return func(o *options) { o.final = final }
}

// Synchronous forces every step to run synchronously
func Synchronous() Option {
	return func(o *options) { o.sync = true }
}

// WithDescription sets a human-readable description
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

// New builds a command. The parameter indices referenced by the steps must be
// exactly {0..len(params)-1}; every violation is reported.
func New(name string, steps []Template, params []Parameter, opts ...Option) (*Command, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("command %q: %w", name, ErrNoSteps)
	}

	var used []int
	for _, step := range steps {
		for _, idx := range step.RequiredIndices() {
			if !slices.Contains(used, idx) {
				used = append(used, idx)
			}
		}
	}
	slices.Sort(used)

	var errs []error
	for _, idx := range used {
		if idx >= len(params) {
			errs = append(errs, &MissingParameterError{Index: idx})
		}
	}
	for idx := range params {
		if !slices.Contains(used, idx) {
			errs = append(errs, &UnusedParameterError{Index: idx})
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("command %q: %w", name, errors.Join(errs...))
	}

	cmd := &Command{
		name:        name,
		description: o.description,
		steps:       slices.Clone(steps),
		params:      slices.Clone(params),
		final:       o.final,
	}
	if o.sync {
		for i := range cmd.steps {
			cmd.steps[i] = cmd.steps[i].WithSynchronous(true)
		}
	}
	return cmd, nil
}

// Name returns the command name
func (c *Command) Name() string { return c.name }

// Description returns the command description
func (c *Command) Description() string { return c.description }

// IsFinal reports whether running the command ends the interaction
func (c *Command) IsFinal() bool { return c.final }

// Steps returns a copy of the instruction steps
func (c *Command) Steps() []Template { return slices.Clone(c.steps) }

// Parameters returns a copy of the parameter declarations
func (c *Command) Parameters() []Parameter { return slices.Clone(c.params) }

// RenderInstructions pairs values with declarations by position, re-validates
// each pair and renders every step in order.
func (c *Command) RenderInstructions(values []Value) ([]Instruction, error) {
	if len(values) != len(c.params) {
		return nil, fmt.Errorf("command %q: %w: %d declared, %d given", c.name, ErrParameterCount, len(c.params), len(values))
	}

	substitutions := make([]string, len(values))
	for i, v := range values {
		if err := c.params[i].Validate(v); err != nil {
			return nil, &MismatchError{Index: i, Parameter: c.params[i].Name, Reason: err.Error()}
		}
		substitutions[i] = v.String()
	}

	instructions := make([]Instruction, 0, len(c.steps))
	for _, step := range c.steps {
		inst, err := step.Render(substitutions)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", c.name, err)
		}
		instructions = append(instructions, inst)
	}
	return instructions, nil
}
