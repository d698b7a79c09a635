// Package scanner runs a full keyword scan: enumerate candidates, then read
// each one in order and report every matching line as it is found.
package scanner

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/harrison/srcscan/internal/config"
	"github.com/harrison/srcscan/internal/display"
	"github.com/harrison/srcscan/internal/fileutil"
	"github.com/harrison/srcscan/internal/logger"
	"github.com/harrison/srcscan/internal/search"
)

// Console messages that bracket a scan.
const (
	startMessageFormat = "Getting files from %s ..\n"
	completeMessage    = "-- Scan complete --\n"
)

// Summary describes a finished (or aborted) scan.
type Summary struct {
	RunID      string
	Candidates int
	FilesRead  int
	LinesRead  int
	BytesRead  int64
	Matches    int
	Skipped    []string
	Duration   time.Duration
}

// String renders the summary as a single diagnostic line.
func (s Summary) String() string {
	return fmt.Sprintf("run %s: %d/%d files, %s lines, %s, %d matches, %d skipped in %s",
		s.RunID,
		s.FilesRead,
		s.Candidates,
		humanize.Comma(int64(s.LinesRead)),
		humanize.Bytes(uint64(s.BytesRead)),
		s.Matches,
		len(s.Skipped),
		s.Duration.Round(time.Millisecond),
	)
}

// Scanner executes scans for a validated configuration.
type Scanner struct {
	cfg     *config.ScanConfig
	console io.Writer
	diag    *logger.ConsoleLogger
}

// New creates a Scanner. console receives the start and completion messages
// and the echoed records; diag receives diagnostics and may be nil.
func New(cfg *config.ScanConfig, console io.Writer, diag *logger.ConsoleLogger) *Scanner {
	if diag == nil {
		diag = logger.NewConsoleLogger(nil, cfg.LogLevel)
	}
	if console == nil {
		console = io.Discard
	}
	return &Scanner{cfg: cfg, console: console, diag: diag}
}

// Candidates enumerates the candidate files under the configured root,
// applying the traversal error policy. The result log is never a candidate.
func (s *Scanner) Candidates() (*fileutil.CollectResult, error) {
	opts := fileutil.CollectOptions{
		Extensions: s.cfg.Extensions,
		SkipErrors: s.cfg.SkipErrors(),
		OnSkip: func(err *fileutil.WalkError) {
			if fileutil.IsSymlink(err) {
				s.diag.LogDebug(fmt.Sprintf("skipping symbolic link: %s", err.Path))
				return
			}
			s.diag.LogWarn(fmt.Sprintf("skipping unreadable entry: %v", err))
		},
	}

	if s.cfg.OutputPath != "" {
		if abs, err := filepath.Abs(s.cfg.OutputPath); err == nil {
			opts.Exclude = []string{abs}
		}
	}

	result, err := fileutil.CollectCandidates(s.cfg.Root, opts)
	if err != nil {
		var walkErr *fileutil.WalkError
		if errors.As(err, &walkErr) {
			return nil, newScanError(PhaseTraversal, walkErr.Path, walkErr.Err)
		}
		return nil, newScanError(PhaseTraversal, s.cfg.Root, err)
	}
	return result, nil
}

// Run performs the scan. Every error is fatal and returned as a *ScanError;
// records written before the failure stay in the result log. The returned
// Summary is populated as far as the scan got.
//
// The result log is locked and truncated before anything else happens, so a
// run that fails later never leaves a previous run's records behind.
func (s *Scanner) Run() (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.New().String()}

	s.diag.LogDebug(fmt.Sprintf("run %s: root=%s keyword=%q output=%s extensions=%v",
		summary.RunID, s.cfg.Root, s.cfg.Keyword, s.cfg.OutputPath, s.cfg.Extensions))

	results, err := logger.OpenResultLog(s.cfg.OutputPath, s.console)
	if err != nil {
		return s.finish(summary, start), newScanError(PhaseWrite, s.cfg.OutputPath, err)
	}
	s.diag.LogDebug(fmt.Sprintf("writing results to %s", results.Path()))

	fmt.Fprintf(s.console, startMessageFormat, s.cfg.Root)

	candidates, err := s.Candidates()
	if err != nil {
		results.Close()
		return s.finish(summary, start), err
	}
	summary.Candidates = len(candidates.Files)
	for _, skipped := range candidates.Skipped {
		summary.Skipped = append(summary.Skipped, skipped.Path)
	}
	s.diag.LogDebug(fmt.Sprintf("found %d candidate files", summary.Candidates))
	defer s.warnSkipped(summary.Skipped)

	var writeErr error
	for _, path := range candidates.Files {
		s.diag.LogTrace(fmt.Sprintf("reading %s", path))

		stats, err := search.ScanFile(path, s.cfg.Keyword, func(rec search.Record) error {
			if err := results.Write(rec); err != nil {
				writeErr = err
				return err
			}
			return nil
		})
		summary.LinesRead += stats.Lines
		summary.BytesRead += stats.Bytes
		summary.Matches = results.Written()

		if err != nil {
			results.Close()
			if writeErr != nil {
				return s.finish(summary, start), newScanError(PhaseWrite, s.cfg.OutputPath, writeErr)
			}
			return s.finish(summary, start), newScanError(PhaseRead, path, err)
		}
		summary.FilesRead++
	}

	if err := results.Close(); err != nil {
		return s.finish(summary, start), newScanError(PhaseWrite, s.cfg.OutputPath, err)
	}

	fmt.Fprint(s.console, completeMessage)

	summary = s.finish(summary, start)
	s.diag.LogDebug(summary.String())

	return summary, nil
}

// warnSkipped shows the skipped-entry warning block, whether or not the run
// got to the end.
func (s *Scanner) warnSkipped(paths []string) {
	if len(paths) == 0 {
		return
	}
	display.SkippedEntries(paths).Display(s.diag.WriterFor("warn"), s.diag.ColorEnabled())
}

func (s *Scanner) finish(summary Summary, start time.Time) Summary {
	summary.Duration = time.Since(start)
	return summary
}

// Run is a convenience wrapper for New(cfg, console, diag).Run().
func Run(cfg *config.ScanConfig, console io.Writer, diag *logger.ConsoleLogger) (Summary, error) {
	return New(cfg, console, diag).Run()
}
