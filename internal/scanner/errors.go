package scanner

import (
	"fmt"
	"strings"
)

// Phase identifies the step of a scan where an error occurred.
type Phase int

const (
	// PhaseTraversal covers directory enumeration errors.
	PhaseTraversal Phase = iota
	// PhaseRead covers opening, reading and decoding candidate files.
	PhaseRead
	// PhaseWrite covers creating and writing the result log.
	PhaseWrite
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	switch p {
	case PhaseTraversal:
		return "traversal"
	case PhaseRead:
		return "read"
	case PhaseWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ScanError is the fatal error that ended a scan.
type ScanError struct {
	Phase Phase  // Step that failed
	Path  string // File or directory involved (optional)
	Err   error  // Underlying error
}

func newScanError(phase Phase, path string, err error) *ScanError {
	return &ScanError{Phase: phase, Path: path, Err: err}
}

// Error implements the error interface for ScanError.
func (e *ScanError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s failed", e.Phase))
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" for %s", e.Path))
	}
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *ScanError) Unwrap() error {
	return e.Err
}
