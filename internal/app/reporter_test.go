package app

import (
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

func TestNewUIReporter(t *testing.T) {
	var status string
	var fraction float32
	var info string
	var updates int

	reporter := NewUIReporter(
		func(text string) { status = text },
		func(f float32, i string) { fraction, info = f, i },
		func() { updates++ },
	)

	if reporter == nil {
		t.Fatal("NewUIReporter returned nil")
	}

	reporter.SetStatus("Unlocking a.pdf")
	reporter.SetProgress(0.5, "1/2")

	if status != "Unlocking a.pdf" {
		t.Errorf("OnStatus got %q", status)
	}
	if fraction != 0.5 || info != "1/2" {
		t.Errorf("OnProgress got %v, %q; want 0.5, 1/2", fraction, info)
	}
	if updates != 2 {
		t.Errorf("OnUpdate called %d times; want 2", updates)
	}
}

func TestUIReporterNilCallbacks(t *testing.T) {
	// All callbacks are nil - should not panic
	reporter := NewUIReporter(nil, nil, nil)

	reporter.SetStatus("test")
	reporter.SetProgress(0.5, "info")
	reporter.Update()
}

func TestUIReporterConcurrent(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	reporter := NewUIReporter(nil, func(float32, string) {
		mu.Lock()
		calls++
		mu.Unlock()
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reporter.SetProgress(float32(i)/10, "")
		}(i)
	}
	wg.Wait()

	if calls != 10 {
		t.Errorf("OnProgress called %d times; want 10", calls)
	}
}

func TestRunnerStep(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	tool := newFakeTool()
	f := newFixture(t, tool)
	bound := NewBoundSession()

	refreshes := 0
	r := NewRunner(f.s, bound, func() { refreshes++ })

	if hint, _ := bound.Hint.Get(); hint != HintEmpty {
		t.Errorf("initial hint = %q; want %q", hint, HintEmpty)
	}

	f.s.Add(f.paths("a.pdf"))
	f.s.ClickMascot()

	now := time.Unix(1700000000, 0)
	deadline := time.Now().Add(5 * time.Second)
	for f.s.InProgress() {
		now = now.Add(f.s.Anim().Interval())
		r.Step(now)
		if time.Now().After(deadline) {
			t.Fatal("session did not complete")
		}
		time.Sleep(time.Millisecond)
	}

	if refreshes == 0 {
		t.Error("onRefresh was never called")
	}
	if result, _ := bound.Result.Get(); result != SummaryAllUnlocked {
		t.Errorf("bound result = %q; want %q", result, SummaryAllUnlocked)
	}
	if busy, _ := bound.Busy.Get(); busy {
		t.Error("bound busy flag should be cleared")
	}
	if hint, _ := bound.Hint.Get(); hint != IconUnlocked+" a.pdf" {
		t.Errorf("bound hint = %q", hint)
	}
}

func TestRunnerStepIdle(t *testing.T) {
	test.NewApp()
	defer test.NewApp()

	f := newFixture(t, newFakeTool())
	r := NewRunner(f.s, nil, nil)
	if r.Step(time.Now()) {
		t.Error("idle session should report no change")
	}
	if r.Session() != f.s {
		t.Error("Session() should return the driven session")
	}
}
