package testutil

import (
	"sync"

	"github.com/renato0307/hopkey/internal/dispatch"
)

// RecordingView keeps every rendered model
type RecordingView struct {
	mu     sync.Mutex
	models []dispatch.Model
}

var _ dispatch.View = (*RecordingView)(nil)

func (v *RecordingView) Render(m dispatch.Model) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.models = append(v.models, m)
}

// Models returns a copy of everything rendered so far
func (v *RecordingView) Models() []dispatch.Model {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]dispatch.Model(nil), v.models...)
}

// Last returns the most recent model, or nil
func (v *RecordingView) Last() dispatch.Model {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.models) == 0 {
		return nil
	}
	return v.models[len(v.models)-1]
}

// OfType returns the rendered models of type T in order
func OfType[T dispatch.Model](v *RecordingView) []T {
	var out []T
	for _, m := range v.Models() {
		if t, ok := m.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
