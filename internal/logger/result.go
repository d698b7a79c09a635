package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/harrison/srcscan/internal/filelock"
	"github.com/harrison/srcscan/internal/search"
)

// ResultLog writes matching line records to the result log file and echoes
// each one to the console. The file is created (truncated) on open and held
// for the whole run behind an advisory lock on "<path>.lock".
//
// Writes are unbuffered: every record is on disk before Write returns, so a
// later failure never loses earlier records.
type ResultLog struct {
	path    string
	file    *os.File
	console io.Writer
	lock    *filelock.FileLock
	written int
	mu      sync.Mutex
}

// OpenResultLog locks and truncates the result log at path. console receives
// an identical copy of every record line; it may be nil.
//
// The lock is taken before truncation so a second run against the same log
// fails without clobbering the first run's output.
func OpenResultLog(path string, console io.Writer) (*ResultLog, error) {
	lock := filelock.NewFileLock(filelock.PathFor(path))
	if err := lock.Acquire(); err != nil {
		return nil, fmt.Errorf("failed to lock result log: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to create result log: %w", err)
	}

	return &ResultLog{
		path:    path,
		file:    file,
		console: console,
		lock:    lock,
	}, nil
}

// Path returns the result log location.
func (rl *ResultLog) Path() string {
	return rl.path
}

// Written returns the number of records written so far.
func (rl *ResultLog) Written() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.written
}

// Write appends one record to the log, then echoes it to the console.
func (rl *ResultLog) Write(rec search.Record) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.file == nil {
		return fmt.Errorf("result log %s is closed", rl.path)
	}

	line := rec.String() + "\n"
	if _, err := io.WriteString(rl.file, line); err != nil {
		return fmt.Errorf("failed to write result log: %w", err)
	}
	rl.written++

	if rl.console != nil {
		if _, err := io.WriteString(rl.console, line); err != nil {
			return fmt.Errorf("failed to write console output: %w", err)
		}
	}

	return nil
}

// Close closes the log file and releases the lock. The lock file is left in
// place for the next run.
// It is safe to call more than once.
func (rl *ResultLog) Close() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.file == nil {
		return nil
	}

	var firstErr error
	if err := rl.file.Close(); err != nil {
		firstErr = fmt.Errorf("failed to close result log: %w", err)
	}
	rl.file = nil

	if err := rl.lock.Unlock(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
