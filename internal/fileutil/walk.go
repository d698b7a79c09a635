package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrSymlink marks a symbolic link that was not followed.
	ErrSymlink = errors.New("symbolic link not followed")

	// ErrNotDirectory is reported when the root exists but is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")
)

// DefaultExtensions is the extension set used when none is configured.
var DefaultExtensions = []string{".py", ".pl"}

// WalkError is a traversal failure yielded in place of a path.
type WalkError struct {
	Path string
	Err  error
}

// Error implements the error interface for WalkError.
func (e *WalkError) Error() string {
	return fmt.Sprintf("error accessing %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *WalkError) Unwrap() error {
	return e.Err
}

// IsSymlink reports whether err marks a skipped symbolic link.
func IsSymlink(err error) bool {
	return errors.Is(err, ErrSymlink)
}

// Walk lazily yields every regular file under root in a single depth-first
// pass. Paths keep the root's own form (root "." yields "a.py").
//
// Failures are yielded as *WalkError values instead of ending the walk; the
// caller decides whether to continue. An unreadable directory yields its
// error and the walk resumes with its siblings. Symbolic links are never
// followed and are yielded as a WalkError wrapping ErrSymlink. Breaking out
// of the range loop stops the walk.
func Walk(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := os.Stat(root)
		if err != nil {
			yield("", &WalkError{Path: root, Err: err})
			return
		}
		if !info.IsDir() {
			yield("", &WalkError{Path: root, Err: ErrNotDirectory})
			return
		}

		// A trailing separator makes WalkDir resolve a symlinked root
		walkRoot := root
		if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
			walkRoot = root + string(filepath.Separator)
		}

		stopped := false
		walkErr := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield("", &WalkError{Path: path, Err: err}) {
					stopped = true
					return filepath.SkipAll
				}
				// Second call for a directory whose read failed
				return nil
			}

			if path != walkRoot && d.Type()&fs.ModeSymlink != 0 {
				if !yield("", &WalkError{Path: path, Err: ErrSymlink}) {
					stopped = true
					return filepath.SkipAll
				}
				return nil
			}

			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})

		if walkErr != nil && !stopped {
			yield("", &WalkError{Path: root, Err: walkErr})
		}
	}
}

// NormalizeExtensions returns the extensions with a leading dot added where
// missing, dropping empty entries and duplicates. Case is preserved.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

// HasExtension reports whether the final component of path ends with one of
// exts. The match is a literal, case-sensitive suffix match.
func HasExtension(path string, exts []string) bool {
	name := filepath.Base(path)
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Candidates filters Walk down to files matching exts, in traversal order.
// Errors from Walk pass through unchanged.
func Candidates(root string, exts []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for path, err := range Walk(root) {
			if err != nil {
				if !yield("", err) {
					return
				}
				continue
			}
			if !HasExtension(path, exts) {
				continue
			}
			if !yield(path, nil) {
				return
			}
		}
	}
}

// CollectOptions controls how CollectCandidates treats traversal errors.
type CollectOptions struct {
	// Extensions selects candidate files (DefaultExtensions when empty)
	Extensions []string
	// SkipErrors continues past unreadable entries instead of aborting
	SkipErrors bool
	// Exclude lists absolute paths that are never candidates
	Exclude []string
	// OnSkip is called for every entry that was skipped (optional)
	OnSkip func(err *WalkError)
}

// CollectResult holds the candidates gathered by CollectCandidates.
type CollectResult struct {
	// Files contains the candidate paths in traversal order
	Files []string
	// Skipped contains the entries that were reported and passed over
	Skipped []*WalkError
}

// CollectCandidates eagerly gathers the candidates under root. Symbolic links
// are always skipped. Any other traversal error aborts unless SkipErrors is set.
func CollectCandidates(root string, opts CollectOptions) (*CollectResult, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	excluded := make(map[string]bool, len(opts.Exclude))
	for _, p := range opts.Exclude {
		excluded[filepath.Clean(p)] = true
	}

	result := &CollectResult{
		Files:   make([]string, 0),
		Skipped: make([]*WalkError, 0),
	}

	for path, err := range Candidates(root, exts) {
		if err != nil {
			var walkErr *WalkError
			if !errors.As(err, &walkErr) {
				return nil, err
			}
			// Problems with the root itself are never skippable
			fatal := filepath.Clean(walkErr.Path) == filepath.Clean(root) || (!opts.SkipErrors && !IsSymlink(walkErr))
			if fatal {
				return nil, walkErr
			}
			result.Skipped = append(result.Skipped, walkErr)
			if opts.OnSkip != nil {
				opts.OnSkip(walkErr)
			}
			continue
		}

		if len(excluded) > 0 {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
			}
			if excluded[absPath] {
				continue
			}
		}

		result.Files = append(result.Files, path)
	}

	return result, nil
}
