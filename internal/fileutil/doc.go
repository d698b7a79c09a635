// Package fileutil walks directory trees and selects candidate source files.
//
// Traversal is exposed as a lazy iterator so that the consumer, not the
// walker, decides what a failure means:
//
//	for path, err := range fileutil.Candidates(root, []string{".py", ".pl"}) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(path)
//	}
//
// # Traversal rules
//
//   - Single depth-first pass in lexical order, directories are never yielded
//   - Paths keep the root's own form: root "." yields "a.py", not "./a.py"
//   - Symbolic links are never followed; each is yielded as a *WalkError
//     wrapping ErrSymlink
//   - Sockets, devices and pipes are ignored
//   - An unreadable directory yields a *WalkError and the walk continues
//     with its siblings
//
// # Extension matching
//
// HasExtension is a literal, case-sensitive suffix test on the final path
// component. "a.py" matches ".py"; "a.PY" and "a.pyc" do not.
//
// CollectCandidates gathers the whole candidate list up front and applies
// the abort-or-skip policy for traversal errors.
package fileutil
