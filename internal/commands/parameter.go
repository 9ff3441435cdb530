package commands

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// ParameterKind defines how a parameter value is collected
type ParameterKind int

const (
	KindCharacter ParameterKind = iota // A single key press
	KindText                           // Free text, committed with Return
	KindChoose                         // One of a list of options
)

// String returns the configuration name of the kind
func (k ParameterKind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindText:
		return "text"
	case KindChoose:
		return "choose"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DefaultDelimiter splits generator output into options
const DefaultDelimiter = "\n"

// Generator produces additional options for a choose parameter by running a
// shell command and splitting its output
type Generator struct {
	Command   string
	Delimiter string
}

// Options splits generator output into trimmed, non-empty options
func (g Generator) Options(output string) []string {
	delim := g.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	var options []string
	for _, part := range strings.Split(output, delim) {
		part = strings.TrimSpace(part)
		if part != "" {
			options = append(options, part)
		}
	}
	return options
}

// Parameter declares a value a command needs before it can run
type Parameter struct {
	Name      string
	Kind      ParameterKind
	Options   []string   // Configured options (choose only)
	Generator *Generator // Optional option generator (choose only)
}

// CharacterParam declares a single-character parameter
func CharacterParam(name string) Parameter {
	return Parameter{Name: name, Kind: KindCharacter}
}

// TextParam declares a free-text parameter
func TextParam(name string) Parameter {
	return Parameter{Name: name, Kind: KindText}
}

// ChooseParam declares a parameter whose value is one of options
func ChooseParam(name string, options ...string) Parameter {
	return Parameter{Name: name, Kind: KindChoose, Options: options}
}

// WithGenerator returns a copy of a choose parameter that also offers the
// options produced by running command
func (p Parameter) WithGenerator(command, delimiter string) Parameter {
	p.Generator = &Generator{Command: command, Delimiter: delimiter}
	return p
}

// Value is a parameter value that passed validation against a declaration.
// Values are only produced by Parameter.Assign and Parameter.AssignChoice.
type Value struct {
	kind      ParameterKind
	text      string
	generated bool
}

// String returns the text substituted into instruction templates
func (v Value) String() string {
	return v.text
}

// Kind returns the kind of the declaration the value was assigned to
func (v Value) Kind() ParameterKind {
	return v.kind
}

// Assign validates input against the declaration. Character parameters need
// exactly one character, text parameters accept anything, choose parameters
// need one of the configured options.
func (p Parameter) Assign(input string) (Value, error) {
	return p.AssignChoice(input, nil)
}

// AssignChoice is like Assign but also accepts, for a choose parameter with
// a generator, any of the generated options.
func (p Parameter) AssignChoice(input string, generated []string) (Value, error) {
	v := Value{kind: p.Kind, text: input}
	if p.Kind == KindChoose && !slices.Contains(p.Options, input) {
		if p.Generator == nil || !slices.Contains(generated, input) {
			return Value{}, fmt.Errorf("%q is not one of the options of %s", input, p.Name)
		}
		v.generated = true
	}
	if err := p.check(v); err != nil {
		return Value{}, fmt.Errorf("%s: %w", p.Name, err)
	}
	return v, nil
}

// Validate re-checks a value against the declaration
func (p Parameter) Validate(v Value) error {
	return p.check(v)
}

func (p Parameter) check(v Value) error {
	if v.kind != p.Kind {
		return fmt.Errorf("expected a %s value, got %s", p.Kind, v.kind)
	}

	switch p.Kind {
	case KindCharacter:
		if utf8.RuneCountInString(v.text) != 1 {
			return fmt.Errorf("expected exactly one character, got %q", v.text)
		}
	case KindChoose:
		if slices.Contains(p.Options, v.text) {
			return nil
		}
		if !v.generated || p.Generator == nil {
			return fmt.Errorf("%q is not one of the options", v.text)
		}
	}
	return nil
}

// MergeOptions concatenates configured and generated options, keeping the
// first occurrence of duplicates
func MergeOptions(configured, generated []string) []string {
	merged := make([]string, 0, len(configured)+len(generated))
	seen := make(map[string]bool, len(configured)+len(generated))
	for _, list := range [][]string{configured, generated} {
		for _, opt := range list {
			if seen[opt] {
				continue
			}
			seen[opt] = true
			merged = append(merged, opt)
		}
	}
	return merged
}
