package config

import (
	"encoding/json"
	"errors"
	"strings"
)

// fileDocument is the on-disk layer document
type fileDocument struct {
	Keys *keysSpec `json:"keys,omitempty"`
	Root layerSpec `json:"root"`
}

// keysSpec overrides the global bindings. An omitted list keeps the
// default; an explicit empty list unbinds the action (copy only).
type keysSpec struct {
	Activation []string `json:"activation,omitempty"`
	Back       []string `json:"back,omitempty"`
	Deactivate []string `json:"deactivate,omitempty"`
	Retry      []string `json:"retry,omitempty"`
	Copy       []string `json:"copy"`
}

type layerSpec struct {
	Name     string        `json:"name"`
	Key      string        `json:"key,omitempty"`
	Layers   []layerSpec   `json:"layers,omitempty"`
	Commands []commandSpec `json:"commands,omitempty"`
}

type commandSpec struct {
	Name        string          `json:"name"`
	Key         string          `json:"key,omitempty"`
	Description string          `json:"description,omitempty"`
	Steps       []stepSpec      `json:"steps"`
	Parameters  []parameterSpec `json:"parameters,omitempty"`
	Final       *bool           `json:"final,omitempty"`
	Sync        bool            `json:"sync,omitempty"`
}

// stepSpec is either a bare string (a background step) or {run, sync}
type stepSpec struct {
	Run  string `json:"run"`
	Sync bool   `json:"sync,omitempty"`
}

func (s *stepSpec) UnmarshalJSON(data []byte) error {
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &s.Run)
	}

	type plain stepSpec
	var p plain
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return errors.New("step must be a string or an object with run and sync")
	}
	*s = stepSpec(p)
	return nil
}

type parameterSpec struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Options  []string      `json:"options,omitempty"`
	Generate *generateSpec `json:"generate,omitempty"`
}

type generateSpec struct {
	Command   string `json:"command"`
	Delimiter string `json:"delimiter,omitempty"`
}
