// Package unlock runs restriction removal for a batch of PDFs in the background.
//
// A worker processes its jobs strictly in order and reports through a channel:
//
//  1. one FileResult per job, optionally followed by an Info message
//  2. a single Done after the last job
//
// Messages for job i always precede messages for job i+1, and Done is last.
// The worker never touches caller state; errors are converted into messages.
package unlock

import (
	"context"
	"fmt"
	"os"
	"time"

	cerrors "crackleaf/internal/errors"
	"crackleaf/internal/fileops"
	"crackleaf/internal/log"
	"crackleaf/internal/util"
)

// InfoSpawnPrefix starts the informational message sent when qpdf cannot be started.
const InfoSpawnPrefix = "解锁失败: qpdf 执行失败（请把 qpdf 放在程序同目录或加入 PATH）: "

// Decrypter strips restrictions from in and writes the result to out.
// *qpdf.Tool satisfies it.
type Decrypter interface {
	Decrypt(ctx context.Context, in, out string) error
}

// ProgressReporter receives per-job progress. Implementations must be safe to
// call from the worker goroutine.
type ProgressReporter interface {
	SetStatus(text string)
	SetProgress(fraction float32, info string)
}

// Job is one file of the snapshot handed to the worker.
type Job struct {
	Index int    // Position in the caller's list
	Path  string // Source PDF
}

// Request describes one unlock session.
type Request struct {
	Jobs      []Job
	OutputDir string           // Overrides the Downloads folder when set
	Reporter  ProgressReporter // Optional
}

// Message is a worker-to-caller notification: FileResult, Info or Done.
type Message interface {
	message()
}

// FileResult is the outcome for one job.
type FileResult struct {
	Index      int
	Path       string
	Success    bool   // qpdf exited with status zero
	OutputPath string // Set only when the output file exists
	Detail     string // Human-readable failure reason, empty on success
}

// Unlocked reports whether the job produced a usable output file.
func (r FileResult) Unlocked() bool {
	return r.Success && r.OutputPath != ""
}

// Info is a free-form status message for the user.
type Info struct {
	Text string
}

// Done is sent exactly once, after every FileResult.
type Done struct{}

func (FileResult) message() {}
func (Info) message()       {}
func (Done) message()       {}

// Start launches a worker goroutine for req and returns its message channel.
// The channel is buffered for every message the session can produce, so the
// worker never blocks on a slow reader. It is closed after Done.
func Start(ctx context.Context, d Decrypter, req Request) <-chan Message {
	ch := make(chan Message, 2*len(req.Jobs)+1)
	go func() {
		defer close(ch)
		Run(ctx, d, req, func(m Message) { ch <- m })
	}()
	return ch
}

// Run processes req synchronously, delivering messages to send in order.
func Run(ctx context.Context, d Decrypter, req Request, send func(Message)) {
	start := time.Now()
	total := len(req.Jobs)
	log.Info("unlock started", log.Int("files", total))

	unlocked := 0
	for i, job := range req.Jobs {
		if err := ctx.Err(); err != nil {
			log.Warn("unlock interrupted", log.Int("remaining", total-i), log.Err(err))
			break
		}
		if req.Reporter != nil {
			req.Reporter.SetStatus(fmt.Sprintf("Unlocking %s", job.Path))
			req.Reporter.SetProgress(float32(i)/float32(total), util.Ratio(i, total))
		}

		result, info := process(ctx, d, job, req.OutputDir)
		send(result)
		if info != "" {
			send(Info{Text: info})
		}
		if result.Unlocked() {
			unlocked++
		}
	}

	if req.Reporter != nil {
		req.Reporter.SetProgress(1, util.Ratio(total, total))
		req.Reporter.SetStatus("Completed")
	}
	log.Info("unlock finished",
		log.Int("files", total),
		log.Int("unlocked", unlocked),
		log.Duration("elapsed", time.Since(start)))
	send(Done{})
}

// process unlocks one job. The second return value is a non-empty Info text
// when qpdf could not be started.
func process(ctx context.Context, d Decrypter, job Job, outputDir string) (FileResult, string) {
	result := FileResult{Index: job.Index, Path: job.Path}

	dir := fileops.OutputDir(job.Path, outputDir)
	out := fileops.UniqueOutputPath(dir, fileops.Stem(job.Path))

	err := d.Decrypt(ctx, job.Path, out)
	switch {
	case err == nil:
	case cerrors.IsSpawnFailure(err):
		result.Detail = spawnText(err)
		log.Error("qpdf could not be started", log.String("path", job.Path), log.Err(err))
		return result, InfoSpawnPrefix + result.Detail
	default:
		result.Detail = err.Error()
		log.Info("file unlock failed", log.String("path", job.Path), log.Err(err))
		return result, ""
	}

	result.Success = true
	if _, statErr := os.Stat(out); statErr != nil {
		result.Detail = cerrors.NewFileError("stat", out, cerrors.ErrOutputMissing).Error()
		log.Warn("qpdf succeeded without output", log.String("path", job.Path), log.String("output", out))
		return result, ""
	}
	result.OutputPath = out
	log.Info("file unlocked", log.String("path", job.Path), log.String("output", out))
	return result, ""
}

// spawnText extracts the operating system's text from a spawn failure.
func spawnText(err error) string {
	var se *cerrors.SpawnError
	if cerrors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
