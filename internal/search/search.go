// Package search finds keyword occurrences in the lines of a text file.
package search

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned when a file contains a line that is not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// Record is one matching line.
type Record struct {
	Path string // Path as displayed, in the root's form
	Line int    // 1-based line number
	Text string // Line content without the line terminator
}

// String formats the record as "<path> (<line>): <text>".
func (r Record) String() string {
	var sb strings.Builder
	sb.Grow(len(r.Path) + len(r.Text) + 16)
	sb.WriteString(r.Path)
	sb.WriteString(" (")
	sb.WriteString(strconv.Itoa(r.Line))
	sb.WriteString("): ")
	sb.WriteString(r.Text)
	return sb.String()
}

// FileStats summarizes a single ScanFile call.
type FileStats struct {
	Lines   int
	Bytes   int64
	Matches int
}

// ScanFile reads path line by line and calls fn for every line that contains
// keyword as a case-sensitive substring, in file order. The error returned by
// fn is returned unchanged and stops the scan.
func ScanFile(path, keyword string, fn func(Record) error) (FileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileStats{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ScanReader(f, path, keyword, fn)
}

// ScanReader is ScanFile over an already opened reader; path is only used to
// label records and errors.
func ScanReader(r io.Reader, path, keyword string, fn func(Record) error) (FileStats, error) {
	var stats FileStats
	reader := bufio.NewReader(r)

	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		// EOF right after a terminator is not another line
		if line == "" && readErr == io.EOF {
			return stats, nil
		}

		stats.Bytes += int64(len(line))
		stats.Lines++

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if !utf8.ValidString(line) {
			return stats, fmt.Errorf("%s line %d: %w", path, stats.Lines, ErrNotText)
		}

		if strings.Contains(line, keyword) {
			stats.Matches++
			if err := fn(Record{Path: path, Line: stats.Lines, Text: line}); err != nil {
				return stats, err
			}
		}

		if readErr == io.EOF {
			return stats, nil
		}
	}
}
