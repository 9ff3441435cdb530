package commands

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// placeholderPattern matches "{...}" spans, shortest first, without nesting
var placeholderPattern = regexp.MustCompile(`\{([^{}]*?)\}`)

// token is either literal text or a reference to a parameter index
type token struct {
	text  string
	index int
	param bool
}

// Template is a parsed instruction pattern such as "git checkout {0}".
// Templates are immutable once parsed.
type Template struct {
	source string
	tokens []token
	sync   bool
}

// Instruction is a fully rendered program ready for the executor
type Instruction struct {
	Program     string
	Synchronous bool
}

// ParseTemplate scans text for "{N}" placeholders. Literal text around the
// placeholders is kept verbatim, whitespace included.
func ParseTemplate(text string) (Template, error) {
	if text == "" {
		return Template{}, ErrEmptyProgram
	}

	var tokens []token
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		body := text[loc[2]:loc[3]]

		idx, err := strconv.ParseUint(body, 10, 31)
		if err != nil {
			return Template{}, &PlaceholderError{Placeholder: text[start:end], Err: ErrInvalidIndex}
		}

		if start > last {
			tokens = append(tokens, token{text: text[last:start]})
		}
		tokens = append(tokens, token{index: int(idx), param: true})
		last = end
	}
	if last < len(text) {
		tokens = append(tokens, token{text: text[last:]})
	}

	return Template{source: text, tokens: tokens}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error
func MustParseTemplate(text string) Template {
	t, err := ParseTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Source returns the text the template was parsed from
func (t Template) Source() string {
	return t.source
}

// Synchronous reports whether the executor waits for this step to finish
func (t Template) Synchronous() bool {
	return t.sync
}

// WithSynchronous returns a copy of the template with the synchronous flag set
func (t Template) WithSynchronous(sync bool) Template {
	t.sync = sync
	return t
}

// RequiredIndices returns the distinct parameter indices the template
// references, in ascending order
func (t Template) RequiredIndices() []int {
	var indices []int
	for _, tok := range t.tokens {
		if tok.param && !slices.Contains(indices, tok.index) {
			indices = append(indices, tok.index)
		}
	}
	slices.Sort(indices)
	return indices
}

// Render substitutes every placeholder with values[index]
func (t Template) Render(values []string) (Instruction, error) {
	var b strings.Builder
	for _, tok := range t.tokens {
		if !tok.param {
			b.WriteString(tok.text)
			continue
		}
		if tok.index >= len(values) {
			return Instruction{}, &MissingParameterError{Index: tok.index}
		}
		b.WriteString(values[tok.index])
	}
	return Instruction{Program: b.String(), Synchronous: t.sync}, nil
}
