// Package app provides the session controller and its bridges to the UI.
//
// This package serves three main purposes:
//
//  1. Session (state.go):
//     The Session owns the imported file list, the unlock flags, the result
//     text and the mascot animation. It is the only mutator of user-visible
//     state and is driven from the UI goroutine.
//
//  2. Progress Reporting (reporter.go):
//     The UIReporter implements unlock.ProgressReporter so the background
//     worker can report progress without touching UI state.
//
//  3. Bindings and frame loop (binding.go, runner.go):
//     BoundSession mirrors Session text into Fyne data bindings, and Runner
//     advances the session once per UI frame.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"crackleaf/internal/anim"
	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/fileops"
	"crackleaf/internal/log"
	"crackleaf/internal/qpdf"
	"crackleaf/internal/unlock"
)

// Version is the application version string.
const Version = "v0.1.0"

// User-visible labels.
const (
	IconLocked   = "🔒"
	IconUnlocked = "🔓"

	StatusRestricted   = "加密受限"
	StatusUnrestricted = "未受限"
	StatusUnknown      = "未知"
	StatusUnlocked     = "解锁成功"
	StatusFailed       = "解锁失败"

	TextProcessing      = "处理中..."
	HintEmpty           = "点击或者拖入文件"
	hintManyFormat      = "已导入 %d 个文件"
	SummaryAllUnlocked  = "解锁成功"
	summaryPartial      = "部分成功: %d/%d"
	SummaryNoneUnlocked = "解锁失败"
)

// Window geometry.
const (
	MaxEntries = 8

	WindowWidth      float32 = 390
	WindowHeightBase float32 = 390
	WindowHeightStep float32 = 70
	WindowHeightMax  float32 = WindowHeightBase * 2.5

	// ListGrowStart is the entry count from which the list grows with the window.
	ListGrowStart = 3
	ListRowHeight float32 = 40
)

// UnlockResult is the tri-state outcome of an entry.
type UnlockResult int

const (
	ResultUnset UnlockResult = iota
	ResultSucceeded
	ResultFailed
)

// Entry is one imported PDF.
type Entry struct {
	Path       string
	Icon       string
	Status     string
	Result     UnlockResult
	OutputPath string // Set only when Result is ResultSucceeded
}

// Name returns the file name shown in the list.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// CanOpen reports whether the row offers the open button.
func (e Entry) CanOpen() bool {
	return e.OutputPath != ""
}

// Tool is the subset of *qpdf.Tool the session needs.
type Tool interface {
	unlock.Decrypter
	Probe(ctx context.Context) qpdf.ToolStatus
	Encryption(ctx context.Context, path string) qpdf.Encryption
}

// ClickAction tells the UI what a mascot click requires from it.
type ClickAction int

const (
	ClickIgnored ClickAction = iota
	ClickPickFiles
	ClickUnlockStarted
)

// Options configures a Session.
type Options struct {
	OutputDir     string        // Overrides the Downloads folder
	FrameInterval time.Duration // Animation tick; zero selects the default
	Reporter      unlock.ProgressReporter
}

// Session holds the state of one application window. It is not safe for
// concurrent use; the UI goroutine owns it and the worker only talks to it
// through the message channel.
type Session struct {
	ctx  context.Context
	tool Tool
	opts Options

	entries         []Entry
	inProgress      bool
	workDone        bool
	readyForSuccess bool
	hadUnlock       bool
	resultText      string
	toolStatus      qpdf.ToolStatus
	promptedForTool bool
	rx              <-chan unlock.Message

	anim *anim.Controller
}

// NewSession probes the tool once and returns an idle session.
func NewSession(ctx context.Context, tool Tool, opts Options) *Session {
	s := &Session{
		ctx:  ctx,
		tool: tool,
		opts: opts,
		anim: anim.New(opts.FrameInterval),
	}
	s.toolStatus = tool.Probe(ctx)
	if !s.toolStatus.OK() {
		log.Warn("qpdf unavailable, unlocking disabled", log.String("reason", s.toolStatus.Message))
	}
	return s
}

// Entries returns a copy of the file list.
func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Session) Len() int                    { return len(s.entries) }
func (s *Session) ResultText() string          { return s.resultText }
func (s *Session) ToolStatus() qpdf.ToolStatus { return s.toolStatus }
func (s *Session) InProgress() bool            { return s.inProgress }
func (s *Session) WorkDone() bool              { return s.workDone }
func (s *Session) ReadyForSuccess() bool       { return s.readyForSuccess }
func (s *Session) HadUnlock() bool             { return s.hadUnlock }
func (s *Session) Anim() *anim.Controller      { return s.anim }

// Add imports paths. After a completed unlock the previous list is replaced.
// Non-PDF paths, duplicates and paths beyond MaxEntries are dropped. Adds are
// ignored while an unlock is in progress. It returns the number of entries
// added.
func (s *Session) Add(paths []string) int {
	if s.inProgress {
		log.Debug("add ignored during unlock", log.Int("paths", len(paths)))
		return 0
	}
	if s.hadUnlock {
		s.entries = nil
		s.resultText = ""
		s.hadUnlock = false
	}

	added := 0
	for _, p := range paths {
		if !fileops.IsPDF(p) {
			log.Debug("add skipped", log.String("path", p), log.Err(cerrors.ErrNotPDF))
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if s.indexOf(p) >= 0 {
			log.Debug("add skipped", log.String("path", p), log.Err(cerrors.ErrDuplicate))
			continue
		}
		if len(s.entries) >= MaxEntries {
			log.Debug("add skipped", log.String("path", p), log.Err(cerrors.ErrListFull))
			continue
		}

		enc := s.tool.Encryption(s.ctx, p)
		s.entries = append(s.entries, newEntry(p, enc))
		log.Info("file added", log.String("path", p), log.String("encryption", enc.String()))
		added++
	}

	if added > 0 {
		s.resultText = ""
	}
	if len(s.entries) > 0 {
		s.anim.StartHappyLoop()
	}
	return added
}

func newEntry(path string, enc qpdf.Encryption) Entry {
	e := Entry{Path: path, Icon: IconLocked}
	switch enc {
	case qpdf.Encrypted:
		e.Status = StatusRestricted
	case qpdf.NotEncrypted:
		e.Icon = IconUnlocked
		e.Status = StatusUnrestricted
	default:
		e.Status = StatusUnknown
	}
	return e
}

func (s *Session) indexOf(path string) int {
	for i, e := range s.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// ClickMascot handles the primary click target. With an empty list the UI
// must open the file picker. Without a usable tool the status message is shown
// instead of unlocking.
func (s *Session) ClickMascot() ClickAction {
	if len(s.entries) == 0 {
		return ClickPickFiles
	}
	if !s.toolStatus.OK() {
		s.resultText = s.toolStatus.Message
		return ClickIgnored
	}
	if err := s.StartUnlock(); err != nil {
		return ClickIgnored
	}
	return ClickUnlockStarted
}

// StartUnlock snapshots the list and starts the background worker.
func (s *Session) StartUnlock() error {
	switch {
	case s.inProgress:
		return cerrors.ErrBusy
	case len(s.entries) == 0:
		return cerrors.ErrNoFiles
	case !s.toolStatus.OK():
		return cerrors.ErrToolUnavailable
	}

	s.inProgress = true
	s.workDone = false
	s.readyForSuccess = false
	s.resultText = TextProcessing
	s.anim.StartPeck()

	jobs := make([]unlock.Job, len(s.entries))
	for i := range s.entries {
		// A repeated run starts every entry from scratch.
		s.entries[i].Result = ResultUnset
		s.entries[i].OutputPath = ""
		jobs[i] = unlock.Job{Index: i, Path: s.entries[i].Path}
	}
	s.rx = unlock.Start(s.ctx, s.tool, unlock.Request{
		Jobs:      jobs,
		OutputDir: s.opts.OutputDir,
		Reporter:  s.opts.Reporter,
	})
	log.Info("unlock requested", log.Int("files", len(jobs)))
	return nil
}

// Hover applies the idle hover rule: with files loaded and no unlock
// running, hovering shows the logo and leaving resumes the happy loop.
func (s *Session) Hover(hovered bool) {
	if s.inProgress || len(s.entries) == 0 {
		return
	}
	if hovered {
		s.anim.SetMode(anim.Logo)
	} else if s.anim.Mode() != anim.HappyLoop {
		s.anim.StartHappyLoop()
	}
}

// PumpWorker drains pending worker messages without blocking. It reports
// whether any message was applied.
func (s *Session) PumpWorker() bool {
	if s.rx == nil {
		return false
	}
	changed := false
	for {
		select {
		case msg, ok := <-s.rx:
			if !ok {
				s.rx = nil
				return changed
			}
			changed = true
			if s.apply(msg) {
				s.rx = nil
				return changed
			}
		default:
			return changed
		}
	}
}

// apply handles one message and reports whether it was Done.
func (s *Session) apply(msg unlock.Message) bool {
	switch m := msg.(type) {
	case unlock.FileResult:
		s.applyResult(m)
	case unlock.Info:
		// Only the first message of a session replaces the processing text.
		if s.resultText == "" || s.resultText == TextProcessing {
			s.resultText = m.Text
		}
	case unlock.Done:
		s.workDone = true
		s.hadUnlock = true
		s.maybeStartSuccess()
		return true
	}
	return false
}

func (s *Session) applyResult(r unlock.FileResult) {
	if r.Index < 0 || r.Index >= len(s.entries) {
		log.Warn("result for unknown entry", log.Int("index", r.Index))
		return
	}
	e := &s.entries[r.Index]
	if !r.Unlocked() {
		e.Result = ResultFailed
		e.OutputPath = ""
		e.Status = StatusFailed
		return
	}

	e.Result = ResultSucceeded
	e.OutputPath = r.OutputPath
	e.Status = StatusUnlocked
	e.Icon = IconUnlocked
	if s.tool.Encryption(s.ctx, r.OutputPath) == qpdf.Encrypted {
		e.Icon = IconLocked
	}
}

// Tick advances the animation and handles its loop transitions. It reports
// whether a frame advanced.
func (s *Session) Tick(now time.Time) bool {
	advanced, ev := s.anim.Tick(now)
	switch ev {
	case anim.PeckDone:
		s.readyForSuccess = true
		s.maybeStartSuccess()
	case anim.SuccessDone:
		s.inProgress = false
		if len(s.entries) > 0 {
			s.anim.StartHappyLoop()
		} else {
			s.anim.SetMode(anim.Logo)
		}
	}
	return advanced
}

// maybeStartSuccess starts the outcome animation once both the worker has
// finished and Peck has played its loops, in whichever order they occur.
func (s *Session) maybeStartSuccess() {
	if !s.workDone || !s.readyForSuccess {
		return
	}
	unlocked, total := s.counts()
	s.resultText = Summary(unlocked, total)
	s.anim.StartSuccess(total > 0 && unlocked == 0)
	log.Info("unlock session complete", log.Int("unlocked", unlocked), log.Int("total", total))
}

func (s *Session) counts() (unlocked, total int) {
	for _, e := range s.entries {
		if e.Result == ResultSucceeded {
			unlocked++
		}
	}
	return unlocked, len(s.entries)
}

// Summary is the result text for unlocked of total files.
func Summary(unlocked, total int) string {
	switch {
	case total > 0 && unlocked == total:
		return SummaryAllUnlocked
	case unlocked > 0:
		return fmt.Sprintf(summaryPartial, unlocked, total)
	default:
		return SummaryNoneUnlocked
	}
}

// Hint is the line under the mascot.
func (s *Session) Hint() string {
	switch len(s.entries) {
	case 0:
		return HintEmpty
	case 1:
		e := s.entries[0]
		return e.Icon + " " + e.Name()
	default:
		return fmt.Sprintf(hintManyFormat, len(s.entries))
	}
}

// ToolLabel is the persistent tool status line, empty when the tool is fine.
func (s *Session) ToolLabel() string {
	return s.toolStatus.Label()
}

// WindowHeight is the window height for the current entry count.
func (s *Session) WindowHeight() float32 {
	return WindowHeightFor(len(s.entries))
}

// WindowHeightFor computes the window height for n entries.
func WindowHeightFor(n int) float32 {
	switch {
	case n <= 2:
		return WindowHeightBase
	case n <= MaxEntries:
		return WindowHeightBase + float32(n-2)*WindowHeightStep
	default:
		return WindowHeightMax
	}
}

// ListHeightFor is the minimum list height for n entries. The list is shown
// from two entries on; below ListGrowStart it fits the rows after the first,
// after that it takes the height the window gained over its base.
func ListHeightFor(n int) float32 {
	switch {
	case n < 2:
		return 0
	case n < ListGrowStart:
		return float32(n-1) * ListRowHeight
	default:
		return WindowHeightFor(n) - WindowHeightBase
	}
}

// NeedsToolPrompt reports true exactly once when the tool is unusable.
func (s *Session) NeedsToolPrompt() bool {
	if s.toolStatus.OK() || s.promptedForTool {
		return false
	}
	s.promptedForTool = true
	return true
}

// OpenEntry opens the unlocked copy of entry i, or its source when no output
// exists.
func (s *Session) OpenEntry(i int) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	e := s.entries[i]
	fileops.OpenPreferred(e.Path, e.OutputPath)
}
