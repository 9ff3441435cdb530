// Package config loads the layer document that defines the dispatcher's
// key tree, and the runtime settings of the hopkey binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/keyboard"
	"github.com/renato0307/hopkey/internal/layers"
	"github.com/renato0307/hopkey/internal/logging"
)

// ErrNoShortcut is reported for a layer or command that got no key from
// mnemonic assignment because every candidate character was taken
var ErrNoShortcut = errors.New("no free shortcut")

// Document is a validated layer tree plus the global key bindings
type Document struct {
	Root     *layers.Layer
	Bindings *keyboard.Bindings
}

// Load reads and parses the layer document at path
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layer document: %w", err)
	}

	var doc *Document
	logging.Time("parse layer document", func() {
		doc, err = Parse(data)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse builds a Document from YAML. Every problem found is reported, each
// prefixed with its location in the tree, e.g. "root/git/commit: ...".
func Parse(data []byte) (*Document, error) {
	var file fileDocument
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("invalid layer document: %w", err)
	}

	b := &builder{}
	bindings := b.bindings(file.Keys)
	if file.Root.Name == "" {
		file.Root.Name = "root"
	}
	if file.Root.Key != "" {
		b.fail(file.Root.Name, errors.New("the root layer cannot have a key"))
	}
	root := b.layer(file.Root, file.Root.Name, bindings)

	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return &Document{Root: root, Bindings: bindings}, nil
}

type builder struct {
	errs []error
}

func (b *builder) fail(path string, err error) {
	b.errs = append(b.errs, fmt.Errorf("%s: %w", path, err))
}

func (b *builder) bindings(spec *keysSpec) *keyboard.Bindings {
	keys := keyboard.Default()
	if spec == nil {
		return keys
	}

	override := func(name string, specs []string, dst *[]keyboard.Key, required bool) {
		if specs == nil {
			return
		}
		if len(specs) == 0 && required {
			b.fail("keys."+name, errors.New("at least one key is required"))
			return
		}
		parsed := make([]keyboard.Key, 0, len(specs))
		for _, s := range specs {
			k, err := parseKey(s)
			if err != nil {
				b.fail("keys."+name, err)
				continue
			}
			parsed = append(parsed, k)
		}
		*dst = parsed
	}

	override("activation", spec.Activation, &keys.Activation, true)
	override("back", spec.Back, &keys.Back, true)
	override("deactivate", spec.Deactivate, &keys.Deactivate, true)
	override("retry", spec.Retry, &keys.Retry, true)
	override("copy", spec.Copy, &keys.Copy, false)
	return keys
}

// layer builds spec and its children. Explicit keys are bound first, in
// declaration order with layers before commands; the rest get mnemonics.
// The back and deactivate keys stay free in every layer.
func (b *builder) layer(spec layerSpec, path string, keys *keyboard.Bindings) *layers.Layer {
	lb := layers.NewBuilder(spec.Name, keys.Reserved()...)

	bind := func(name, key, childPath string, action layers.Action) {
		if key == "" {
			lb.Defer(name, action)
			return
		}
		k, err := parseKey(key)
		if err != nil {
			b.fail(childPath, err)
			return
		}
		if err := lb.Bind(k, action); err != nil {
			var conflict *layers.ConflictError
			if errors.As(err, &conflict) {
				err = fmt.Errorf("key %q is already bound to %q", k.String(), conflict.Existing.Label())
			}
			b.fail(childPath, err)
		}
	}

	for i, sub := range spec.Layers {
		childPath := fmt.Sprintf("%s/layers[%d]", path, i)
		if sub.Name == "" {
			b.fail(childPath, errors.New("layer name is required"))
			continue
		}
		childPath = path + "/" + sub.Name
		bind(sub.Name, sub.Key, childPath, layers.Branch{Layer: b.layer(sub, childPath, keys)})
	}

	for i, cs := range spec.Commands {
		childPath := fmt.Sprintf("%s/commands[%d]", path, i)
		if cs.Name != "" {
			childPath = path + "/" + cs.Name
		}
		cmd, err := b.command(cs, childPath)
		if err != nil {
			b.fail(childPath, err)
			continue
		}
		if cmd == nil {
			continue
		}
		bind(cs.Name, cs.Key, childPath, layers.Execute{Command: cmd})
	}

	l, dropped := lb.Build()
	for _, action := range dropped {
		b.fail(path+"/"+action.Label(), ErrNoShortcut)
	}
	return l
}

// command builds a command. Problems in steps and parameters are recorded
// individually and a nil command is returned.
func (b *builder) command(spec commandSpec, path string) (*commands.Command, error) {
	if spec.Name == "" {
		return nil, errors.New("command name is required")
	}

	failed := false
	steps := make([]commands.Template, 0, len(spec.Steps))
	for i, s := range spec.Steps {
		t, err := commands.ParseTemplate(s.Run)
		if err != nil {
			b.fail(fmt.Sprintf("%s/steps[%d]", path, i), err)
			failed = true
			continue
		}
		steps = append(steps, t.WithSynchronous(s.Sync))
	}

	params := make([]commands.Parameter, 0, len(spec.Parameters))
	for i, ps := range spec.Parameters {
		p, err := parameter(ps)
		if err != nil {
			b.fail(fmt.Sprintf("%s/parameters[%d]", path, i), err)
			failed = true
			continue
		}
		params = append(params, p)
	}
	if failed {
		return nil, nil
	}

	opts := []commands.Option{commands.Final(spec.Final == nil || *spec.Final)}
	if spec.Sync {
		opts = append(opts, commands.Synchronous())
	}
	if spec.Description != "" {
		opts = append(opts, commands.WithDescription(spec.Description))
	}
	return commands.New(spec.Name, steps, params, opts...)
}

var parameterTypes = []string{"character", "text", "choose"}

func parameter(spec parameterSpec) (commands.Parameter, error) {
	if spec.Name == "" {
		return commands.Parameter{}, errors.New("parameter name is required")
	}

	var p commands.Parameter
	switch strings.ToLower(spec.Type) {
	case "character", "char":
		p = commands.CharacterParam(spec.Name)
	case "text":
		p = commands.TextParam(spec.Name)
	case "choose", "choice":
		p = commands.ChooseParam(spec.Name, spec.Options...)
	default:
		return p, fmt.Errorf("unknown parameter type %q%s", spec.Type, suggest(spec.Type, parameterTypes))
	}

	if p.Kind != commands.KindChoose {
		if len(spec.Options) > 0 || spec.Generate != nil {
			return p, fmt.Errorf("%s parameter %q cannot have options", p.Kind, spec.Name)
		}
		return p, nil
	}

	if spec.Generate != nil {
		if spec.Generate.Command == "" {
			return p, fmt.Errorf("parameter %q: generate needs a command", spec.Name)
		}
		p = p.WithGenerator(spec.Generate.Command, spec.Generate.Delimiter)
	}
	if len(p.Options) == 0 && p.Generator == nil {
		return p, fmt.Errorf("choose parameter %q needs options or a generator", spec.Name)
	}
	return p, nil
}

// parseKey parses a key spec and, for unknown names, suggests the closest
// known one
func parseKey(spec string) (keyboard.Key, error) {
	k, err := keyboard.Parse(spec)
	if err == nil {
		return k, nil
	}
	if errors.Is(err, keyboard.ErrUnknownKey) {
		parts := strings.Split(spec, "+")
		name := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
		return k, fmt.Errorf("%w%s", err, suggest(name, keyboard.KeyNames()))
	}
	return k, err
}

// suggest returns a ", did you mean ...?" hint for the best fuzzy match of
// input among candidates, or "" when nothing matches
func suggest(input string, candidates []string) string {
	if input == "" {
		return ""
	}
	matches := fuzzy.Find(strings.ToLower(input), candidates)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(", did you mean %q?", matches[0].Str)
}
