package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/log"
	"crackleaf/internal/unlock"

	"github.com/spf13/cobra"
)

// ErrUnlockFailed is returned when at least one file was not unlocked.
var ErrUnlockFailed = errors.New("some files could not be unlocked")

var unlockCmd = &cobra.Command{
	Use:   "unlock [files or directories...]",
	Short: "Unlock PDF files",
	Long: `Remove owner restrictions from PDF files.

Examples:
  # Unlock one file into the Downloads folder
  crackleaf unlock -i report.pdf

  # Unlock every PDF in a directory into ./out
  crackleaf unlock -i scans/ -o out

  # Only files matching a pattern
  crackleaf unlock -i scans/ --match "2024-*.pdf"`,
	RunE: runUnlock,
}

// Unlock flags
var (
	unlockInputs []string
	unlockOutput string
	unlockMatch  string
	unlockQuiet  bool
)

func init() {
	rootCmd.AddCommand(unlockCmd)

	unlockCmd.Flags().StringArrayVarP(&unlockInputs, "input", "i", nil, "Input PDF file or directory (can be specified multiple times)")
	unlockCmd.Flags().StringVarP(&unlockOutput, "output", "o", "", "Output directory (default: Downloads folder)")
	unlockCmd.Flags().StringVar(&unlockMatch, "match", "", "Glob filter for files found in directories")
	unlockCmd.Flags().BoolVarP(&unlockQuiet, "quiet", "q", false, "Only print failures")
}

func runUnlock(cmd *cobra.Command, args []string) error {
	inputs := append(append([]string{}, unlockInputs...), args...)
	if len(inputs) == 0 {
		return fmt.Errorf("%w (-i)", cerrors.ErrNoFiles)
	}

	paths, err := CollectInputs(inputs, unlockMatch)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: nothing matched", cerrors.ErrNoFiles)
	}

	cfg := settings()
	reporter := NewReporter(cmd.ErrOrStderr(), unlockQuiet)
	tool, err := readyTool(commandContext(cmd), cfg.QPDFPath, reporter)
	if err != nil {
		return err
	}

	outDir := unlockOutput
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	unlocked, total := unlockFiles(commandContext(cmd), tool, paths, outDir, reporter)
	if unlocked < total {
		return fmt.Errorf("%w: %d of %d failed", ErrUnlockFailed, total-unlocked, total)
	}
	return nil
}

// readyTool discovers qpdf and fails unless it can run.
func readyTool(ctx context.Context, override string, reporter *Reporter) (Tool, error) {
	tool := discoverTool(override)
	status := tool.Probe(ctx)
	if err := status.Err(); err != nil {
		return nil, err
	}
	if status.Warning != "" {
		reporter.PrintWarning("%s", status.Warning)
	}
	log.Debug("qpdf ready", log.String("path", status.Path), log.String("version", status.Version))
	return tool, nil
}

// unlockFiles runs the worker over paths and prints every message.
func unlockFiles(ctx context.Context, tool Tool, paths []string, outDir string, reporter *Reporter) (unlocked, total int) {
	jobs := make([]unlock.Job, len(paths))
	for i, p := range paths {
		jobs[i] = unlock.Job{Index: i, Path: p}
	}

	start := time.Now()
	unlock.Run(ctx, tool, unlock.Request{
		Jobs:      jobs,
		OutputDir: outDir,
		Reporter:  reporter,
	}, func(m unlock.Message) {
		switch msg := m.(type) {
		case unlock.FileResult:
			if msg.Unlocked() {
				unlocked++
			}
			reporter.PrintResult(msg)
		case unlock.Info:
			reporter.PrintInfo(msg)
		case unlock.Done:
			reporter.Finish()
		}
	})

	reporter.PrintSummary(unlocked, len(jobs), time.Since(start))
	return unlocked, len(jobs)
}
