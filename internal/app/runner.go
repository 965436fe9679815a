package app

import (
	"context"
	"time"
)

// Runner advances a Session once per UI frame: animation tick, worker pump,
// binding sync, redraw.
type Runner struct {
	session   *Session
	bound     *BoundSession
	onRefresh func()
	hovered   func() bool
}

// NewRunner creates a runner. bound and onRefresh may be nil.
func NewRunner(session *Session, bound *BoundSession, onRefresh func()) *Runner {
	return &Runner{session: session, bound: bound, onRefresh: onRefresh}
}

// SetHoverSource makes every step re-apply the mascot hover rule using the
// pointer state reported by hovered.
func (r *Runner) SetHoverSource(hovered func() bool) {
	r.hovered = hovered
}

// Session returns the driven session.
func (r *Runner) Session() *Session {
	return r.session
}

// Step runs one frame and reports whether anything visible changed.
// It must run on the UI goroutine.
func (r *Runner) Step(now time.Time) bool {
	before := r.session.Anim().Mode()
	if r.hovered != nil {
		r.session.Hover(r.hovered())
	}
	advanced := r.session.Tick(now)
	pumped := r.session.PumpWorker()
	r.Sync()
	changed := advanced || pumped || r.session.Anim().Mode() != before
	if changed && r.onRefresh != nil {
		r.onRefresh()
	}
	return changed
}

// Sync pushes session text into the bindings.
func (r *Runner) Sync() {
	if r.bound != nil {
		r.bound.SyncFromSession(r.session)
	}
}

// Run calls Step every period until ctx is done. post must execute the
// function on the UI goroutine (fyne.Do in the window shell).
func (r *Runner) Run(ctx context.Context, period time.Duration, post func(func())) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			post(func() { r.Step(now) })
		}
	}
}
