package ui

import (
	"testing"

	"crackleaf/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

func TestMascotSide(t *testing.T) {
	tests := []struct {
		width float32
		want  float32
	}{
		{390, 195},
		{100, 60},
		{1000, 240},
	}
	for _, tt := range tests {
		if got := MascotSide(tt.width); got != tt.want {
			t.Errorf("MascotSide(%v) = %v; want %v", tt.width, got, tt.want)
		}
	}
}

// TestMascot tests the clickable mascot widget.
func TestMascot(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	first := fyne.NewStaticResource("a.png", []byte{1})
	second := fyne.NewStaticResource("b.png", []byte{2})

	t.Run("Tap", func(t *testing.T) {
		taps := 0
		m := NewMascot(first, 100, func() { taps++ })
		test.Tap(m)
		if taps != 1 {
			t.Errorf("Expected 1 tap, got %d", taps)
		}
	})

	t.Run("NilTap", func(t *testing.T) {
		m := NewMascot(first, 100, nil)
		m.Tapped(&fyne.PointEvent{})
	})

	t.Run("Hover", func(t *testing.T) {
		m := NewMascot(first, 100, nil)
		if m.Hovered() {
			t.Error("Expected not hovered initially")
		}
		m.MouseIn(nil)
		if !m.Hovered() {
			t.Error("Expected hovered after MouseIn")
		}
		m.MouseOut()
		if m.Hovered() {
			t.Error("Expected not hovered after MouseOut")
		}
	})

	t.Run("SetResource", func(t *testing.T) {
		m := NewMascot(first, 100, nil)
		_ = test.WidgetRenderer(m)
		m.SetResource(second)
		if m.Resource() != second {
			t.Error("Expected resource to change")
		}
	})

	t.Run("MinSize", func(t *testing.T) {
		m := NewMascot(first, 120, nil)
		if got := m.MinSize(); got.Width != 120 || got.Height != 120 {
			t.Errorf("MinSize() = %v; want 120x120", got)
		}
	})
}

func TestNameLabelDoubleTap(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	opened := 0
	l := NewNameLabel("a.pdf", func() { opened++ })
	test.DoubleTap(l)
	if opened != 1 {
		t.Errorf("Expected 1 open, got %d", opened)
	}
	if l.Text != "a.pdf" {
		t.Errorf("Text = %q", l.Text)
	}
}

func TestFileList(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	var opened []int
	l := NewFileList(func(i int) { opened = append(opened, i) })

	entries := []app.Entry{
		{Path: "/in/a.pdf", Icon: app.IconLocked, Status: app.StatusRestricted},
		{Path: "/in/b.pdf", Icon: app.IconUnlocked, Status: app.StatusUnlocked,
			Result: app.ResultSucceeded, OutputPath: "/out/b_unlocked.pdf"},
	}

	if !l.Update(entries) {
		t.Fatal("first Update should rebuild")
	}
	if l.Rows() != 2 {
		t.Fatalf("Rows() = %d; want 2", l.Rows())
	}
	if l.Update(entries) {
		t.Error("Update with identical entries should not rebuild")
	}

	if btn := findButton(l.Box.Objects[0]); btn != nil {
		t.Error("row without output should have no open button")
	}
	btn := findButton(l.Box.Objects[1])
	if btn == nil {
		t.Fatal("row with output should have an open button")
	}
	if btn.Text != OpenButtonText {
		t.Errorf("button text = %q", btn.Text)
	}
	test.Tap(btn)
	if len(opened) != 1 || opened[0] != 1 {
		t.Errorf("opened = %v; want [1]", opened)
	}

	entries[0].Status = app.StatusFailed
	if !l.Update(entries) {
		t.Error("changed status should rebuild")
	}
	if l.Update(nil); l.Rows() != 0 {
		t.Errorf("Rows() = %d after clearing", l.Rows())
	}
}

func findButton(obj fyne.CanvasObject) *widget.Button {
	switch o := obj.(type) {
	case *widget.Button:
		return o
	case *fyne.Container:
		for _, child := range o.Objects {
			if b := findButton(child); b != nil {
				return b
			}
		}
	}
	return nil
}
