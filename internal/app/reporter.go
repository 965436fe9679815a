package app

import (
	"crackleaf/internal/unlock"
)

// Ensure UIReporter implements unlock.ProgressReporter
var _ unlock.ProgressReporter = (*UIReporter)(nil)

// UIReporter bridges the unlock worker with the main UI.
// Methods are called from the worker goroutine; callbacks must hand work over
// to the UI goroutine themselves (fyne.Do).
type UIReporter struct {
	// Callbacks for UI updates (set by main)
	OnStatus   func(text string)
	OnProgress func(fraction float32, info string)
	OnUpdate   func()
}

// NewUIReporter creates a new UI reporter with the given callbacks.
func NewUIReporter(
	onStatus func(string),
	onProgress func(float32, string),
	onUpdate func(),
) *UIReporter {
	return &UIReporter{
		OnStatus:   onStatus,
		OnProgress: onProgress,
		OnUpdate:   onUpdate,
	}
}

// SetStatus implements unlock.ProgressReporter.
func (r *UIReporter) SetStatus(text string) {
	if r.OnStatus != nil {
		r.OnStatus(text)
	}
	r.Update()
}

// SetProgress implements unlock.ProgressReporter.
func (r *UIReporter) SetProgress(fraction float32, info string) {
	if r.OnProgress != nil {
		r.OnProgress(fraction, info)
	}
	r.Update()
}

// Update triggers a UI refresh.
func (r *UIReporter) Update() {
	if r.OnUpdate != nil {
		r.OnUpdate()
	}
}
