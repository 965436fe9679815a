package app

import (
	"fyne.io/fyne/v2/data/binding"
)

// BoundSession provides Fyne data bindings for the text the window shows.
// Labels bound to these update without manual widget.SetText() calls.
type BoundSession struct {
	// Line under the mascot ("点击或者拖入文件", "<icon> <name>", "已导入 N 个文件")
	Hint binding.String

	// Summary or error text at the bottom
	Result binding.String

	// Persistent qpdf status or warning
	ToolLabel binding.String

	// Worker progress (0.0 to 1.0), fed by UIReporter
	Progress binding.Float

	// Unlock running
	Busy binding.Bool
}

// NewBoundSession creates a new BoundSession with default values.
// Set notifies through fyne.Do, so the initial hint is bound rather than set;
// this keeps construction valid before a Fyne app exists.
func NewBoundSession() *BoundSession {
	hint := HintEmpty
	return &BoundSession{
		Hint:      binding.BindString(&hint),
		Result:    binding.NewString(),
		ToolLabel: binding.NewString(),
		Progress:  binding.NewFloat(),
		Busy:      binding.NewBool(),
	}
}

// SetProgress updates the progress binding.
func (b *BoundSession) SetProgress(fraction float32, _ string) {
	_ = b.Progress.Set(float64(fraction))
}

// SyncFromSession copies the session's display values into the bindings.
// Bindings only notify listeners when a value actually changes.
func (b *BoundSession) SyncFromSession(s *Session) {
	_ = b.Hint.Set(s.Hint())
	_ = b.Result.Set(s.ResultText())
	_ = b.ToolLabel.Set(s.ToolLabel())
	_ = b.Busy.Set(s.InProgress())
	if !s.InProgress() {
		_ = b.Progress.Set(0)
	}
}
