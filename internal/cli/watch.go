package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/log"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

// DefaultSettle is how long a file must stay unchanged before it is unlocked.
const DefaultSettle = 750 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Unlock PDFs as they appear in a directory",
	Long: `Watch a directory and unlock every PDF that is created or rewritten in it.
Unlocked copies (*_unlocked.pdf) are ignored, so the watched directory can
also be the output directory. Stop with Ctrl+C.

Examples:
  crackleaf watch ~/Inbox -o ~/Unlocked
  crackleaf watch ~/Inbox --match "invoice-*.pdf"`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

// Watch flags
var (
	watchOutput string
	watchMatch  string
	watchQuiet  bool
	watchSettle time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output directory (default: Downloads folder)")
	watchCmd.Flags().StringVar(&watchMatch, "match", "", "Glob filter for file names")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Only print failures")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", DefaultSettle, "Quiet period before a new file is unlocked")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return cerrors.NewFileError("stat", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	match, err := compileMatch(watchMatch)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	cfg := settings()
	reporter := NewReporter(cmd.ErrOrStderr(), watchQuiet)
	tool, err := readyTool(ctx, cfg.QPDFPath, reporter)
	if err != nil {
		return err
	}
	outDir := watchOutput
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsWatcher.Close()
	if err := fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	reporter.PrintSuccess("Watching %s (Ctrl+C to stop)", dir)
	w := &dirWatcher{
		match:  match,
		settle: watchSettle,
		handle: func(path string) {
			unlockFiles(ctx, tool, []string{path}, outDir, reporter)
		},
	}
	return w.loop(ctx, fsWatcher.Events, fsWatcher.Errors)
}

// dirWatcher turns raw file events into one handle call per settled PDF.
type dirWatcher struct {
	match  glob.Glob
	settle time.Duration
	handle func(path string)
}

// loop consumes events until ctx is done or the event channel closes.
// A path is handled once it has seen no event for the settle period.
func (w *dirWatcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ready := make(chan string)
	stop := make(chan struct{})
	timers := make(map[string]*time.Timer)
	defer func() {
		close(stop)
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !accepts(event.Name, w.match) {
				continue
			}
			path := event.Name
			if t, ok := timers[path]; ok {
				t.Reset(w.settle)
				continue
			}
			timers[path] = time.AfterFunc(w.settle, func() {
				select {
				case ready <- path:
				case <-stop:
				}
			})

		case path := <-ready:
			if _, ok := timers[path]; !ok {
				// Duplicate fire after a late Reset
				continue
			}
			delete(timers, path)
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				// Removed or replaced before it settled
				continue
			}
			log.Debug("watched file settled", log.String("path", path))
			w.handle(path)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Error("fsnotify watcher error", log.Err(err))
		}
	}
}
