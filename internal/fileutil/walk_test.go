package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"
)

// writeTree creates the given files (relative to dir) with fixed content.
func writeTree(t *testing.T, dir string, files []string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("test content\n"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("failed to relativize %s: %v", p, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestWalk(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"a.py",
		"b.txt",
		"sub/c.pl",
		"sub/deeper/d.py",
		".hidden/e.py",
	})
	if err := os.MkdirAll(filepath.Join(tmpDir, "empty"), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}

	var got []string
	for path, err := range Walk(tmpDir) {
		if err != nil {
			t.Fatalf("unexpected walk error: %v", err)
		}
		got = append(got, path)
	}

	want := []string{".hidden/e.py", "a.py", "b.txt", "sub/c.pl", "sub/deeper/d.py"}
	if gotRel := relPaths(t, tmpDir, got); !slices.Equal(gotRel, want) {
		t.Errorf("Walk() = %v, want %v", gotRel, want)
	}
}

func TestWalkKeepsRootForm(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.py", "sub/b.py"})
	t.Chdir(tmpDir)

	var got []string
	for path, err := range Walk(".") {
		if err != nil {
			t.Fatalf("unexpected walk error: %v", err)
		}
		got = append(got, path)
	}

	want := []string{"a.py", filepath.Join("sub", "b.py")}
	if !slices.Equal(got, want) {
		t.Errorf("Walk(\".\") = %v, want %v", got, want)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	var errs []error
	for path, err := range Walk(root) {
		if err == nil {
			t.Errorf("unexpected path %s", path)
			continue
		}
		errs = append(errs, err)
	}

	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	var walkErr *WalkError
	if !errors.As(errs[0], &walkErr) {
		t.Fatalf("expected *WalkError, got %T", errs[0])
	}
	if !errors.Is(walkErr, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", walkErr)
	}
}

func TestWalkRootIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.py"})

	for _, err := range Walk(filepath.Join(tmpDir, "a.py")) {
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("expected ErrNotDirectory, got %v", err)
		}
	}
}

func TestWalkSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"real/a.py"})
	if err := os.Symlink(filepath.Join(tmpDir, "real"), filepath.Join(tmpDir, "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmpDir, "real", "a.py"), filepath.Join(tmpDir, "link.py")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var files []string
	var links []string
	for path, err := range Walk(tmpDir) {
		if err != nil {
			var walkErr *WalkError
			if !errors.As(err, &walkErr) || !IsSymlink(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			links = append(links, walkErr.Path)
			continue
		}
		files = append(files, path)
	}

	if got := relPaths(t, tmpDir, files); !slices.Equal(got, []string{"real/a.py"}) {
		t.Errorf("files = %v, want [real/a.py]", got)
	}
	if got := relPaths(t, tmpDir, links); !slices.Equal(got, []string{"link.py", "loop"}) {
		t.Errorf("symlinks = %v, want [link.py loop]", got)
	}
}

func TestWalkSymlinkedRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"real/a.py"})
	link := filepath.Join(tmpDir, "root-link")
	if err := os.Symlink(filepath.Join(tmpDir, "real"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var got []string
	for path, err := range Walk(link) {
		if err != nil {
			t.Fatalf("unexpected walk error: %v", err)
		}
		got = append(got, path)
	}

	want := []string{filepath.Join(link, "a.py")}
	if !slices.Equal(got, want) {
		t.Errorf("Walk(symlinked root) = %v, want %v", got, want)
	}
}

func TestWalkStopsOnBreak(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.py", "b.py", "c.py"})

	count := 0
	for range Walk(tmpDir) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("expected loop to run once, ran %d times", count)
	}
}

func TestHasExtension(t *testing.T) {
	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{"a.py", DefaultExtensions, true},
		{"dir/b.pl", DefaultExtensions, true},
		{"c.PY", DefaultExtensions, false},
		{"d.pyc", DefaultExtensions, false},
		{"e.txt", DefaultExtensions, false},
		{"py", DefaultExtensions, false},
		{".py", DefaultExtensions, true},
		{"x.py/readme", DefaultExtensions, false},
		{"f.js", []string{".js"}, true},
		{"g.py", nil, false},
	}

	for _, tt := range tests {
		if got := HasExtension(tt.path, tt.exts); got != tt.want {
			t.Errorf("HasExtension(%q, %v) = %v, want %v", tt.path, tt.exts, got, tt.want)
		}
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"py", ".pl", " .js ", "", ".", "py", ".PY"})
	want := []string{".py", ".pl", ".js", ".PY"}
	if !slices.Equal(got, want) {
		t.Errorf("NormalizeExtensions() = %v, want %v", got, want)
	}
}

func TestCollectCandidates(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{
		"a.py",
		"b.txt",
		"c.pl",
		"script.py.bak",
		"sub/d.py",
		"sub/e.rb",
		"sub/pkg.py/inner.txt",
	})

	tests := []struct {
		name string
		opts CollectOptions
		want []string
	}{
		{
			name: "default extensions",
			opts: CollectOptions{},
			want: []string{"a.py", "c.pl", "sub/d.py"},
		},
		{
			name: "custom extensions",
			opts: CollectOptions{Extensions: []string{".txt", ".rb"}},
			want: []string{"b.txt", "sub/e.rb", "sub/pkg.py/inner.txt"},
		},
		{
			name: "excluded path",
			opts: CollectOptions{Exclude: []string{filepath.Join(tmpDir, "a.py")}},
			want: []string{"c.pl", "sub/d.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CollectCandidates(tmpDir, tt.opts)
			if err != nil {
				t.Fatalf("CollectCandidates() error = %v", err)
			}
			if got := relPaths(t, tmpDir, result.Files); !slices.Equal(got, tt.want) {
				t.Errorf("CollectCandidates() = %v, want %v", got, tt.want)
			}

			seen := make(map[string]bool)
			for _, f := range result.Files {
				if seen[f] {
					t.Errorf("duplicate candidate %s", f)
				}
				seen[f] = true
				if info, err := os.Stat(f); err != nil || info.IsDir() {
					t.Errorf("candidate %s is not a regular file", f)
				}
			}
		})
	}
}

func TestCollectCandidatesEmptyRoot(t *testing.T) {
	result, err := CollectCandidates(t.TempDir(), CollectOptions{})
	if err != nil {
		t.Fatalf("CollectCandidates() error = %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("expected no candidates, got %v", result.Files)
	}
}

func TestCollectCandidatesSkipsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.py"})
	if err := os.Symlink(filepath.Join(tmpDir, "a.py"), filepath.Join(tmpDir, "b.py")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var reported []string
	result, err := CollectCandidates(tmpDir, CollectOptions{
		OnSkip: func(err *WalkError) { reported = append(reported, err.Path) },
	})
	if err != nil {
		t.Fatalf("CollectCandidates() error = %v", err)
	}

	if got := relPaths(t, tmpDir, result.Files); !slices.Equal(got, []string{"a.py"}) {
		t.Errorf("files = %v, want [a.py]", got)
	}
	if len(result.Skipped) != 1 || len(reported) != 1 {
		t.Fatalf("expected 1 skipped entry, got %d (reported %d)", len(result.Skipped), len(reported))
	}
	if filepath.Base(reported[0]) != "b.py" {
		t.Errorf("reported = %s, want b.py", reported[0])
	}
}

func TestCollectCandidatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	for _, skip := range []bool{false, true} {
		_, err := CollectCandidates(root, CollectOptions{SkipErrors: skip})
		if err == nil {
			t.Errorf("SkipErrors=%v: expected error for missing root", skip)
		}
	}
}

func TestCollectCandidatesUnreadableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	tmpDir := t.TempDir()
	writeTree(t, tmpDir, []string{"a.py", "locked/b.py"})
	locked := filepath.Join(tmpDir, "locked")
	if err := os.Chmod(locked, 0000); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	if _, err := CollectCandidates(tmpDir, CollectOptions{}); err == nil {
		t.Error("expected abort on unreadable directory")
	}

	result, err := CollectCandidates(tmpDir, CollectOptions{SkipErrors: true})
	if err != nil {
		t.Fatalf("CollectCandidates(SkipErrors) error = %v", err)
	}
	if got := relPaths(t, tmpDir, result.Files); !slices.Equal(got, []string{"a.py"}) {
		t.Errorf("files = %v, want [a.py]", got)
	}
	if len(result.Skipped) != 1 {
		t.Errorf("expected 1 skipped entry, got %d", len(result.Skipped))
	}
}
