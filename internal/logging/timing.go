package logging

import (
	"time"
)

// TimingContext holds timing information for manual Start/End tracking
type TimingContext struct {
	name      string
	startTime time.Time
}

// Time runs fn and logs how long it took at debug level
func Time(name string, fn func()) {
	t := Start(name)
	fn()
	End(t)
}

// Start begins a timing measurement. Must be paired with End.
//
//	t := logging.Start("run step")
//	// ... do work ...
//	logging.End(t)
func Start(name string) TimingContext {
	return TimingContext{name: name, startTime: time.Now()}
}

// End logs the duration since the matching Start
func End(t TimingContext, args ...any) {
	if !IsEnabled() {
		return
	}

	duration := time.Since(t.startTime)
	Get().Debug(t.name, append([]any{"duration", duration.String(), "ms", duration.Milliseconds()}, args...)...)
}
