package dispatch

import (
	"github.com/renato0307/hopkey/internal/commands"
	"github.com/renato0307/hopkey/internal/keyboard"
)

// Model is what the View is asked to draw: NoneModel, NavigationModel,
// ParameterModel or ErrorModel
type Model interface {
	isModel()
}

// HintKind tells the View what a hint does so it can style it
type HintKind int

const (
	HintLayer      HintKind = iota // Descends into a layer
	HintCommand                    // Runs a command
	HintOption                     // Selects a choose option
	HintBack                       // Goes back / cancels
	HintDeactivate                 // Closes the dispatcher
	HintRetry                      // Retries a failed step
	HintCopy                       // Copies the failure detail
)

// Hint is one available action and the keys that trigger it
type Hint struct {
	Keys  []keyboard.Key
	Label string
	Kind  HintKind
}

// NoneModel hides the dispatcher
type NoneModel struct{}

// NavigationModel lists the actions of the current layer
type NavigationModel struct {
	Stack []string // Layer names from root to current
	Hints []Hint
}

// ParameterModel prompts for a command parameter
type ParameterModel struct {
	Stack     []string
	Command   string
	Parameter string
	Kind      commands.ParameterKind
	Input     string // Text typed so far (text parameters)
	Options   []Hint // Selectable options (choose parameters)
	Hints     []Hint
}

// ErrorModel shows a failure and the recovery actions
type ErrorModel struct {
	Message string
	Notice  string // Feedback for the last action, e.g. "copied to clipboard"
	Hints   []Hint
}

func (NoneModel) isModel() {}
func (NavigationModel) isModel() {}
func (ParameterModel) isModel() {}
func (ErrorModel) isModel() {}
