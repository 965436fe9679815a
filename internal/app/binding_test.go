package app

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestNewBoundSessionWithoutApp(t *testing.T) {
	// No Fyne app is running yet.
	fyne.SetCurrentApp(nil)
	defer test.NewApp()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("NewBoundSession panicked without a running app: %v", r)
		}
	}()

	b := NewBoundSession()
	if hint, err := b.Hint.Get(); err != nil || hint != HintEmpty {
		t.Errorf("Hint = %q, %v; want %q", hint, err, HintEmpty)
	}
	if result, _ := b.Result.Get(); result != "" {
		t.Errorf("Result = %q; want empty", result)
	}
	if busy, _ := b.Busy.Get(); busy {
		t.Error("Busy should start false")
	}
}

func TestSyncFromSession(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	f := newFixture(t, newFakeTool())
	b := NewBoundSession()
	f.s.Add(f.paths("a.pdf", "b.pdf"))
	b.SyncFromSession(f.s)

	if hint, _ := b.Hint.Get(); hint != f.s.Hint() {
		t.Errorf("Hint = %q; want %q", hint, f.s.Hint())
	}
	if busy, _ := b.Busy.Get(); busy {
		t.Error("Busy should be false while idle")
	}
}
