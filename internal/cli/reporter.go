// Package cli provides the headless command-line interface for CrackLeaf.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"crackleaf/internal/unlock"
	"crackleaf/internal/util"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles for result lines.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(util.ColorSuccess)).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(util.ColorFailure)).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(util.ColorWarning))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(util.ColorMuted))
)

// Reporter implements unlock.ProgressReporter for terminal output.
// On a terminal it keeps a progress line that gets overwritten; otherwise it
// only prints result lines.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	status   string
	progress float32
	info     string
	quiet    bool
	live     bool
	lastLine int // Length of last printed line (for clearing)
}

var _ unlock.ProgressReporter = (*Reporter)(nil)

// NewReporter creates a reporter writing to out.
// If quiet is true, only errors are printed.
func NewReporter(out io.Writer, quiet bool) *Reporter {
	return &Reporter{
		out:   out,
		quiet: quiet,
		live:  isTerminal(out),
	}
}

// isTerminal returns true if w is a terminal (not piped/redirected).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetStatus updates the status message.
func (r *Reporter) SetStatus(text string) {
	r.mu.Lock()
	r.status = text
	r.mu.Unlock()
}

// SetProgress updates the progress bar and info text, then redraws.
func (r *Reporter) SetProgress(fraction float32, info string) {
	r.mu.Lock()
	r.progress = fraction
	r.info = info
	r.mu.Unlock()
	r.Update()
}

// Update prints the current progress line when attached to a terminal.
func (r *Reporter) Update() {
	if r.quiet || !r.live {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	barWidth := 30
	filled := min(int(r.progress*float32(barWidth)), barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	// Format: [████████░░░░░░░░░░░░░░░░░░░░░░] 1/4 | Unlocking /path/a.pdf
	line := fmt.Sprintf("\r[%s] %s | %s", bar, r.info, r.status)

	// Clear previous line if it was longer
	if len(line) < r.lastLine {
		line += strings.Repeat(" ", r.lastLine-len(line))
	}
	r.lastLine = len(line)

	fmt.Fprint(r.out, line)
}

// clearLine moves past an active progress line. Callers hold r.mu.
func (r *Reporter) clearLine() {
	if r.lastLine > 0 {
		fmt.Fprint(r.out, "\r"+strings.Repeat(" ", r.lastLine)+"\r")
		r.lastLine = 0
	}
}

// Finish clears the progress line.
func (r *Reporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLine()
}

// PrintError prints an error message.
func (r *Reporter) PrintError(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLine()
	fmt.Fprintln(r.out, failureStyle.Render("Error: "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a non-fatal notice.
func (r *Reporter) PrintWarning(format string, args ...any) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLine()
	fmt.Fprintln(r.out, warningStyle.Render(fmt.Sprintf(format, args...)))
}

// PrintSuccess prints a success message.
func (r *Reporter) PrintSuccess(format string, args ...any) {
	if r.quiet {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLine()
	fmt.Fprintf(r.out, format+"\n", args...)
}

// PrintResult prints one file outcome. Failures are printed even when quiet.
func (r *Reporter) PrintResult(res unlock.FileResult) {
	name := filepath.Base(res.Path)
	if !res.Unlocked() {
		detail := res.Detail
		if detail == "" {
			detail = "unknown error"
		}
		r.mu.Lock()
		r.clearLine()
		fmt.Fprintf(r.out, "%s %s: %s\n", failureStyle.Render("✗"), name, detail)
		r.mu.Unlock()
		return
	}
	if r.quiet {
		return
	}
	size := ""
	if info, err := os.Stat(res.OutputPath); err == nil {
		size = " " + mutedStyle.Render("("+util.Sizeify(info.Size())+")")
	}
	r.mu.Lock()
	r.clearLine()
	fmt.Fprintf(r.out, "%s %s → %s%s\n", successStyle.Render("✓"), name, res.OutputPath, size)
	r.mu.Unlock()
}

// PrintInfo prints a worker information message.
func (r *Reporter) PrintInfo(msg unlock.Info) {
	r.PrintWarning("%s", msg.Text)
}

// PrintSummary prints the final tally.
func (r *Reporter) PrintSummary(unlocked, total int, elapsed time.Duration) {
	if r.quiet {
		return
	}
	style := successStyle
	switch {
	case unlocked == 0:
		style = failureStyle
	case unlocked < total:
		style = warningStyle
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLine()
	fmt.Fprintf(r.out, "%s in %s\n",
		style.Render("Unlocked "+util.Ratio(unlocked, total)+" files"), util.Elapsed(elapsed))
}
